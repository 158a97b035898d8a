// Package query turns what an admin types at the prompt into a statement:
// a menu number selects a canned report, anything else runs as written.
package query

import (
	"fmt"
	"strings"

	"kara/internal/repository"
)

// Kind identifies a canned report.
type Kind int

const (
	ListTasks Kind = iota + 1
	Workload
	UpcomingTasks
)

// MenuEntry is one line of the admin menu.
type MenuEntry struct {
	Key         string
	Description string
}

// Menu lists the choices in the order they are printed.
var Menu = []MenuEntry{
	{Key: "1", Description: "Show all projects"},
	{Key: "2", Description: "View employee workload"},
	{Key: "3", Description: "Check project status"},
	{Key: "4", Description: "Or enter your own custom SQL query"},
}

var kindNames = map[Kind]string{
	ListTasks:     "list tasks",
	Workload:      "employee workload",
	UpcomingTasks: "upcoming tasks",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Query is either Canned or Freeform.
type Query interface {
	Statement(d repository.Dialect) repository.Statement
	isQuery()
}

// Canned is one of the menu reports.
type Canned struct {
	Kind Kind
}

// Freeform is SQL typed by the admin, run verbatim.
type Freeform struct {
	SQL string
}

func (Canned) isQuery()   {}
func (Freeform) isQuery() {}

// Parse maps "1", "2" and "3" to canned reports; any other input is freeform SQL.
func Parse(input string) Query {
	switch strings.TrimSpace(input) {
	case "1":
		return Canned{Kind: ListTasks}
	case "2":
		return Canned{Kind: Workload}
	case "3":
		return Canned{Kind: UpcomingTasks}
	default:
		return Freeform{SQL: strings.TrimSpace(input)}
	}
}

// Statement renders the canned SQL for the dialect.
func (c Canned) Statement(d repository.Dialect) repository.Statement {
	var sql string
	switch c.Kind {
	case ListTasks:
		sql = "SELECT * FROM ProjectTasks ORDER BY task_date DESC"
	case Workload:
		sql = `SELECT person_name, COUNT(*) AS project_count, SUM(time_sheet) AS total_hours
FROM ProjectTasks
GROUP BY person_name
ORDER BY person_name`
	case UpcomingTasks:
		sql = fmt.Sprintf(`SELECT project_name, person_name, task_date, task_description, time_sheet
FROM ProjectTasks
WHERE task_date >= %s
ORDER BY task_date ASC`, d.CurrentDate())
	}
	return repository.Statement{Name: c.Kind.String(), SQL: sql}
}

// Statement passes the admin's SQL through untouched.
func (f Freeform) Statement(repository.Dialect) repository.Statement {
	return repository.Statement{Name: "freeform query", SQL: f.SQL}
}
