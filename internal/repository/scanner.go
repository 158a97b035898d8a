package repository

import (
	"fmt"
	"time"

	"kara/internal/domain"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows is the subset of *sql.Rows the gateway reads from.
type Rows interface {
	Scanner
	Columns() ([]string, error)
	Next() bool
	Err() error
	Close() error
}

// DateLayout is how task dates travel between the database and the prompt.
const DateLayout = "2006-01-02"

// DateString scans a DATE column from any supported driver. MySQL with
// parseTime and modernc sqlite hand back time.Time, pgx may hand back a
// string, and some drivers return raw bytes.
type DateString string

// Scan implements sql.Scanner.
func (d *DateString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = DateString(v.Format(DateLayout))
	case string:
		*d = DateString(trimDate(v))
	case []byte:
		*d = DateString(trimDate(string(v)))
	default:
		return fmt.Errorf("cannot scan %T into a date", src)
	}
	return nil
}

func trimDate(s string) string {
	if len(s) >= len(DateLayout) {
		if _, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return s[:len(DateLayout)]
		}
	}
	return s
}

// ScanTaskSummary scans id, project_name, task_date.
func ScanTaskSummary(scanner Scanner) (*domain.TaskSummary, error) {
	summary := &domain.TaskSummary{}
	var date DateString

	if err := scanner.Scan(&summary.ID, &summary.ProjectName, &date); err != nil {
		return nil, err
	}

	summary.TaskDate = string(date)
	return summary, nil
}

// scanRow reads the current row into fresh values, normalising driver bytes to strings.
func scanRow(rows Rows, width int) ([]any, error) {
	values := make([]any, width)
	ptrs := make([]any, width)
	for i := range values {
		ptrs[i] = &values[i]
	}

	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	for i, v := range values {
		if b, ok := v.([]byte); ok {
			values[i] = string(b)
		}
	}
	return values, nil
}
