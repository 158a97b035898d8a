package cli

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kara/internal/domain"
	"kara/internal/repository"
)

type mockTaskStore struct {
	mock.Mock
}

func (m *mockTaskStore) RunQuery(ctx context.Context, q repository.StatementSource) (*repository.ResultSet, error) {
	args := m.Called(ctx, q)
	result, _ := args.Get(0).(*repository.ResultSet)
	return result, args.Error(1)
}

func (m *mockTaskStore) FindTasksByPerson(ctx context.Context, name string) ([]domain.TaskSummary, error) {
	args := m.Called(ctx, name)
	tasks, _ := args.Get(0).([]domain.TaskSummary)
	return tasks, args.Error(1)
}

func (m *mockTaskStore) UpdateTaskEntry(ctx context.Context, update domain.TaskUpdate) (int64, error) {
	args := m.Called(ctx, update)
	return args.Get(0).(int64), args.Error(1)
}

type mockAdvisor struct {
	mock.Mock
}

func (m *mockAdvisor) Advise(ctx context.Context, instruction string) string {
	return m.Called(ctx, instruction).String(0)
}
