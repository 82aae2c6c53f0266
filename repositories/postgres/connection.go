package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bizxr/erp-portal/config"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
)

// DB wraps the sql.DB connection pool
type DB struct {
	*sql.DB
	logger *zap.Logger
}

// NewDB creates a new database connection pool
func NewDB(cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		zap.String("connection", cfg.LogString()))

	return WrapDB(db, logger), nil
}

// WrapDB wraps an existing pool, e.g. one opened by sqlmock in tests
func WrapDB(db *sql.DB, logger *zap.Logger) *DB {
	return &DB{
		DB:     db,
		logger: logger,
	}
}

// Close closes the database connection pool
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query check failed: %w", err)
	}

	return nil
}

// InitSchema creates the employee and menu tables when they do not exist
func (db *DB) InitSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	db.logger.Info("database schema initialized successfully")
	return nil
}

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS busus (
		busu_code VARCHAR(20) PRIMARY KEY,
		busu_name VARCHAR(100) NOT NULL
	);

	CREATE TABLE IF NOT EXISTS teams (
		team_code VARCHAR(20) PRIMARY KEY,
		team_name VARCHAR(100) NOT NULL,
		busu_code VARCHAR(20) REFERENCES busus(busu_code)
	);

	CREATE TABLE IF NOT EXISTS employees (
		ep_code    VARCHAR(50) PRIMARY KEY,
		ep_name    VARCHAR(100) NOT NULL,
		pass_word  VARCHAR(200) NOT NULL,
		team_code  VARCHAR(20) REFERENCES teams(team_code),
		busu_code  VARCHAR(20) REFERENCES busus(busu_code),
		use_yn     CHAR(1) NOT NULL DEFAULT 'Y',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS menus (
		menu_id    VARCHAR(50) PRIMARY KEY,
		title      VARCHAR(200) NOT NULL,
		path       VARCHAR(300),
		parent_id  VARCHAR(50),
		sort_order INTEGER NOT NULL DEFAULT 0,
		use_yn     CHAR(1) NOT NULL DEFAULT 'Y'
	);

	CREATE TABLE IF NOT EXISTS menu_grants (
		menu_id   VARCHAR(50) NOT NULL REFERENCES menus(menu_id) ON DELETE CASCADE,
		ep_code   VARCHAR(50) REFERENCES employees(ep_code) ON DELETE CASCADE,
		team_code VARCHAR(20) REFERENCES teams(team_code) ON DELETE CASCADE,
		busu_code VARCHAR(20) REFERENCES busus(busu_code) ON DELETE CASCADE,
		CHECK (ep_code IS NOT NULL OR team_code IS NOT NULL OR busu_code IS NOT NULL)
	);

	CREATE INDEX IF NOT EXISTS idx_employees_team_code ON employees(team_code);
	CREATE INDEX IF NOT EXISTS idx_menus_parent_id ON menus(parent_id);
	CREATE INDEX IF NOT EXISTS idx_menu_grants_menu_id ON menu_grants(menu_id);
	CREATE INDEX IF NOT EXISTS idx_menu_grants_ep_code ON menu_grants(ep_code);
	CREATE INDEX IF NOT EXISTS idx_menu_grants_team_code ON menu_grants(team_code);
	CREATE INDEX IF NOT EXISTS idx_menu_grants_busu_code ON menu_grants(busu_code);
`
