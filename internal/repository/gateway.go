// Package repository runs statements against the ProjectTasks database. Every
// call gets its own transaction: commit on success, rollback and a nil result
// on failure.
package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"go.uber.org/zap"

	"kara/internal/errors"
)

// Statement is a named, parameterised SQL statement. Name only appears in logs
// and errors.
type Statement struct {
	Name string
	SQL  string
	Args []any
}

// ResultSet holds every row a query returned, in column order.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows.
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Gateway executes statements through a Connector.
type Gateway struct {
	conn    Connector
	dialect Dialect
	logger  *zap.Logger
	timeout time.Duration
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithQueryTimeout bounds each transaction; zero leaves it unbounded.
func WithQueryTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.timeout = d
	}
}

// NewGateway creates a gateway. A nil logger discards logs.
func NewGateway(conn Connector, dialect Dialect, logger *zap.Logger, opts ...GatewayOption) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Gateway{conn: conn, dialect: dialect, logger: logger}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Dialect returns the SQL flavour of the underlying connection.
func (g *Gateway) Dialect() Dialect {
	return g.dialect
}

// Close closes the underlying connection.
func (g *Gateway) Close() error {
	return g.conn.Close()
}

// Query runs stmt and returns all rows. Statements that produce no columns,
// such as UPDATE, return an empty ResultSet.
func (g *Gateway) Query(ctx context.Context, stmt Statement) (*ResultSet, error) {
	var result *ResultSet

	err := g.withTx(ctx, stmt, func(ctx context.Context, tx Tx) error {
		rows, err := tx.QueryContext(ctx, g.bind(stmt), stmt.Args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			return err
		}

		set := &ResultSet{Columns: columns, Rows: [][]any{}}
		for rows.Next() {
			values, err := scanRow(rows, len(columns))
			if err != nil {
				return err
			}
			set.Rows = append(set.Rows, values)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		result = set
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Exec runs stmt and returns the number of rows it affected.
func (g *Gateway) Exec(ctx context.Context, stmt Statement) (int64, error) {
	var affected int64

	err := g.withTx(ctx, stmt, func(ctx context.Context, tx Tx) error {
		res, err := tx.ExecContext(ctx, g.bind(stmt), stmt.Args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, g *Gateway, stmt Statement, scanFunc func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T

	err := g.withTx(ctx, stmt, func(ctx context.Context, tx Tx) error {
		rows, err := tx.QueryContext(ctx, g.bind(stmt), stmt.Args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scanFunc(rows)
			if err != nil {
				return err
			}
			results = append(results, item)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (g *Gateway) bind(stmt Statement) string {
	if len(stmt.Args) == 0 {
		return stmt.SQL
	}
	return g.dialect.Rebind(stmt.SQL)
}

func (g *Gateway) withTx(ctx context.Context, stmt Statement, fn func(context.Context, Tx) error) error {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	tx, err := g.conn.BeginTx(ctx, nil)
	if err != nil {
		g.logFailure(stmt, "begin transaction", err)
		return errors.NewDatabaseError(stmt.Name, err)
	}

	if err := fn(ctx, tx); err != nil {
		g.logFailure(stmt, "execute", err)
		g.rollback(stmt, tx)
		return errors.NewDatabaseError(stmt.Name, err)
	}

	if err := tx.Commit(); err != nil {
		g.logFailure(stmt, "commit", err)
		g.rollback(stmt, tx)
		return errors.NewDatabaseError(stmt.Name, err)
	}

	return nil
}

func (g *Gateway) rollback(stmt Statement, tx Tx) {
	if err := tx.Rollback(); err != nil && !stderrors.Is(err, sql.ErrTxDone) {
		g.logger.Warn("rollback failed", zap.String("statement", stmt.Name), zap.Error(err))
	}
}

func (g *Gateway) logFailure(stmt Statement, phase string, err error) {
	g.logger.Error("database error",
		zap.String("statement", stmt.Name),
		zap.String("phase", phase),
		zap.String("dialect", string(g.dialect)),
		zap.Error(err),
	)
}
