package repositories

import (
	"context"

	"github.com/bizxr/erp-portal/models"
)

// QueryExecutor runs registered statements by name and returns rows as column maps
type QueryExecutor interface {
	// SelectOne returns the first row, or nil when the statement yields none
	SelectOne(ctx context.Context, statement string, params map[string]any) (map[string]any, error)

	// SelectList returns every row in result order
	SelectList(ctx context.Context, statement string, params map[string]any) ([]map[string]any, error)
}

// CredentialRepository looks up employees by login credentials
type CredentialRepository interface {
	// VerifyCredentials returns the matching employee, or nil when the credentials do not match
	VerifyCredentials(ctx context.Context, epCode, passWord string) (*models.UserRecord, error)
}

// MenuRepository loads menu rows
type MenuRepository interface {
	// ListMenuRows returns the raw menu rows granted to the employee
	ListMenuRows(ctx context.Context, epCode string) ([]map[string]any, error)
}

// Repositories holds all repository instances
type Repositories struct {
	Queries     QueryExecutor
	Credentials CredentialRepository
	Menus       MenuRepository
}
