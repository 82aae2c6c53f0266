package postgres

import (
	"context"
	"fmt"

	"github.com/bizxr/erp-portal/models"
	"github.com/bizxr/erp-portal/repositories"
	"go.uber.org/zap"
)

// CredentialRepository implements repositories.CredentialRepository
type CredentialRepository struct {
	queries repositories.QueryExecutor
	logger  *zap.Logger
}

// NewCredentialRepository creates a new credential repository
func NewCredentialRepository(queries repositories.QueryExecutor, logger *zap.Logger) *CredentialRepository {
	return &CredentialRepository{
		queries: queries,
		logger:  logger,
	}
}

// VerifyCredentials returns the employee matching the code and password, or nil
func (r *CredentialRepository) VerifyCredentials(ctx context.Context, epCode, passWord string) (*models.UserRecord, error) {
	row, err := r.queries.SelectOne(ctx, StatementLogin, map[string]any{
		"epCode":   epCode,
		"passWord": passWord,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify credentials: %w", err)
	}
	if row == nil {
		r.logger.Debug("no employee matched credentials", zap.String("ep_code", epCode))
		return nil, nil
	}

	return &models.UserRecord{
		EpCode:   stringColumn(row, "epCode"),
		EpName:   stringColumn(row, "epName"),
		TeamCode: stringColumn(row, "teamCode"),
		TeamName: stringColumn(row, "teamName"),
		BusuCode: stringColumn(row, "busuCode"),
		BusuName: stringColumn(row, "busuName"),
	}, nil
}

// stringColumn renders a column as text; NULL becomes ""
func stringColumn(row map[string]any, column string) string {
	switch v := row[column].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
