package repository

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"
)

type mockConnector struct {
	mock.Mock
}

func (m *mockConnector) BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error) {
	args := m.Called(ctx, opts)
	tx, _ := args.Get(0).(Tx)
	return tx, args.Error(1)
}

func (m *mockConnector) Close() error {
	return m.Called().Error(0)
}

type mockTx struct {
	mock.Mock
}

func (m *mockTx) QueryContext(ctx context.Context, query string, args ...interface{}) (Rows, error) {
	called := m.Called(append([]interface{}{ctx, query}, args...)...)
	rows, _ := called.Get(0).(Rows)
	return rows, called.Error(1)
}

func (m *mockTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	called := m.Called(append([]interface{}{ctx, query}, args...)...)
	res, _ := called.Get(0).(sql.Result)
	return res, called.Error(1)
}

func (m *mockTx) Commit() error {
	return m.Called().Error(0)
}

func (m *mockTx) Rollback() error {
	return m.Called().Error(0)
}

type mockRows struct {
	mock.Mock
}

func (m *mockRows) Columns() ([]string, error) {
	args := m.Called()
	cols, _ := args.Get(0).([]string)
	return cols, args.Error(1)
}

func (m *mockRows) Next() bool {
	return m.Called().Bool(0)
}

func (m *mockRows) Scan(dest ...interface{}) error {
	return m.Called(dest...).Error(0)
}

func (m *mockRows) Err() error {
	return m.Called().Error(0)
}

func (m *mockRows) Close() error {
	return m.Called().Error(0)
}
