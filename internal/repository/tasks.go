package repository

import (
	"context"
	"strconv"

	"kara/internal/domain"
	"kara/internal/errors"
)

// StatementSource is anything that can render itself for a dialect, such as a
// parsed admin query.
type StatementSource interface {
	Statement(d Dialect) Statement
}

// TaskRepository is the ProjectTasks access used by the interaction loop.
type TaskRepository struct {
	gw *Gateway
}

// NewTaskRepository wraps a gateway.
func NewTaskRepository(gw *Gateway) *TaskRepository {
	return &TaskRepository{gw: gw}
}

// RunQuery renders q for the connection's dialect and runs it.
func (r *TaskRepository) RunQuery(ctx context.Context, q StatementSource) (*ResultSet, error) {
	return r.gw.Query(ctx, q.Statement(r.gw.Dialect()))
}

// FindTasksByPerson lists a person's tasks, matching the name case-insensitively.
func (r *TaskRepository) FindTasksByPerson(ctx context.Context, name string) ([]domain.TaskSummary, error) {
	stmt := Statement{
		Name: "find tasks by person",
		SQL: `SELECT id, project_name, task_date
FROM ProjectTasks
WHERE LOWER(person_name) = LOWER(?)
ORDER BY id`,
		Args: []any{name},
	}

	found, err := QueryMultiple(ctx, r.gw, stmt, ScanTaskSummary)
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.TaskSummary, 0, len(found))
	for _, t := range found {
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

// UpdateTaskEntry sets the description and hours of one of the person's tasks
// and returns the number of rows changed. A task that is missing or belongs to
// someone else gives a not-found error.
func (r *TaskRepository) UpdateTaskEntry(ctx context.Context, update domain.TaskUpdate) (int64, error) {
	n, err := r.gw.Exec(ctx, UpdateTaskStatement(update))
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errors.NewNotFoundError("task", strconv.FormatInt(update.ID, 10))
	}
	return n, nil
}

// UpdateTaskStatement binds (description, hours, id, person name) in that order.
func UpdateTaskStatement(update domain.TaskUpdate) Statement {
	return Statement{
		Name: "update task entry",
		SQL: `UPDATE ProjectTasks
SET task_description = ?, time_sheet = ?
WHERE id = ? AND LOWER(person_name) = LOWER(?)`,
		Args: []any{update.Description, update.Hours, update.ID, update.PersonName},
	}
}
