package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bizxr/erp-portal/repositories"
	"go.uber.org/zap"
)

// ErrUnknownStatement is returned when a statement name is not registered
var ErrUnknownStatement = errors.New("unknown statement")

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// QueryExecutor implements repositories.QueryExecutor over registered statements
type QueryExecutor struct {
	db         Querier
	statements map[string]Statement
	logger     *zap.Logger
}

var _ repositories.QueryExecutor = (*QueryExecutor)(nil)

// NewQueryExecutor creates an executor. With no statements given, DefaultStatements are registered.
func NewQueryExecutor(db Querier, logger *zap.Logger, statements ...Statement) *QueryExecutor {
	if len(statements) == 0 {
		statements = DefaultStatements()
	}

	e := &QueryExecutor{
		db:         db,
		statements: make(map[string]Statement, len(statements)),
		logger:     logger,
	}
	for _, stmt := range statements {
		e.statements[stmt.Name] = stmt
	}
	return e
}

// Statement returns a registered statement by name
func (e *QueryExecutor) Statement(name string) (Statement, bool) {
	stmt, ok := e.statements[name]
	return stmt, ok
}

// SelectOne returns the first row, or nil when there is none
func (e *QueryExecutor) SelectOne(ctx context.Context, statement string, params map[string]any) (map[string]any, error) {
	rows, err := e.query(ctx, statement, params, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// SelectList returns all rows
func (e *QueryExecutor) SelectList(ctx context.Context, statement string, params map[string]any) ([]map[string]any, error) {
	return e.query(ctx, statement, params, 0)
}

// query runs the statement and reads at most limit rows (0 means all)
func (e *QueryExecutor) query(ctx context.Context, name string, params map[string]any, limit int) ([]map[string]any, error) {
	stmt, ok := e.statements[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStatement, name)
	}

	args, err := stmt.Args(params)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := e.db.QueryContext(ctx, stmt.Query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run %s: %w", name, err)
	}
	defer rows.Close()

	result, err := scanRows(rows, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	e.logger.Debug("statement executed",
		zap.String("statement", name),
		zap.Int("rows", len(result)),
		zap.Duration("duration", time.Since(start)))

	return result, nil
}

// scanRows reads rows into maps keyed by column name. Byte slices become strings.
func scanRows(rows *sql.Rows, limit int) ([]map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(columns))
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				row[column] = string(b)
				continue
			}
			row[column] = values[i]
		}
		result = append(result, row)

		if limit > 0 && len(result) >= limit {
			break
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
