package postgres

import (
	"context"

	"github.com/bizxr/erp-portal/config"
	"github.com/bizxr/erp-portal/repositories"
	"go.uber.org/zap"
)

// RepositoryFactory creates and manages all repositories
type RepositoryFactory struct {
	db     *DB
	logger *zap.Logger
}

// NewRepositoryFactory opens the database and creates a factory over it
func NewRepositoryFactory(cfg *config.Config, logger *zap.Logger) (*RepositoryFactory, error) {
	db, err := NewDB(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	f := NewRepositoryFactoryWithDB(db, logger)

	if cfg.Database.InitSchema {
		if err := db.InitSchema(context.Background()); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return f, nil
}

// NewRepositoryFactoryWithDB creates a factory over an open database
func NewRepositoryFactoryWithDB(db *DB, logger *zap.Logger) *RepositoryFactory {
	return &RepositoryFactory{db: db, logger: logger}
}

// NewRepositories creates all repository instances
func (f *RepositoryFactory) NewRepositories() *repositories.Repositories {
	queries := NewQueryExecutor(f.db.DB, f.logger)
	return &repositories.Repositories{
		Queries:     queries,
		Credentials: NewCredentialRepository(queries, f.logger),
		Menus:       NewMenuRepository(queries, f.logger),
	}
}

// DB returns the underlying database connection
func (f *RepositoryFactory) DB() *DB {
	return f.db
}

// Close closes the database connection
func (f *RepositoryFactory) Close() error {
	return f.db.Close()
}
