package postgres

import (
	"context"
	"fmt"

	"github.com/bizxr/erp-portal/repositories"
	"go.uber.org/zap"
)

// MenuRepository implements repositories.MenuRepository
type MenuRepository struct {
	queries repositories.QueryExecutor
	logger  *zap.Logger
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(queries repositories.QueryExecutor, logger *zap.Logger) *MenuRepository {
	return &MenuRepository{
		queries: queries,
		logger:  logger,
	}
}

// ListMenuRows returns the menu rows granted to the employee, unconverted
func (r *MenuRepository) ListMenuRows(ctx context.Context, epCode string) ([]map[string]any, error) {
	rows, err := r.queries.SelectList(ctx, StatementMenuByEmployee, map[string]any{
		"epCode": epCode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list menu rows: %w", err)
	}
	return rows, nil
}
