package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bizxr/erp-portal/config"
	"github.com/bizxr/erp-portal/handlers"
	"github.com/bizxr/erp-portal/middleware"
	"github.com/bizxr/erp-portal/repositories"
	"github.com/bizxr/erp-portal/repositories/postgres"
	"github.com/bizxr/erp-portal/services/auth"
	"github.com/bizxr/erp-portal/services/menu"
	"github.com/bizxr/erp-portal/token"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	RepoFactory  *postgres.RepositoryFactory
	Repositories *repositories.Repositories

	// Tokens and caches
	Tokens    *token.Codec
	MenuCache *menu.Cache

	// Services
	AuthService *auth.Service
	MenuService *menu.Service

	// HTTP
	AuthMiddleware *middleware.AuthMiddleware
	AccessPolicy   *middleware.AccessPolicy
	AuthHandler    *handlers.AuthHandler
	MenuHandler    *handlers.MenuHandler
	HealthHandler  *handlers.HealthHandler
}

// NewDependencies opens the database and wires up all application dependencies.
// The database is pinged while opening, before any service is built.
func NewDependencies(cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	factory, err := postgres.NewRepositoryFactory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return NewDependenciesWithFactory(cfg, factory, logger), nil
}

// NewDependenciesWithFactory wires all dependencies over an already open repository factory
func NewDependenciesWithFactory(cfg *config.Config, factory *postgres.RepositoryFactory, logger *zap.Logger) *Dependencies {
	deps := &Dependencies{
		Config:      cfg,
		Logger:      logger,
		RepoFactory: factory,
		DB:          factory.DB(),
	}

	deps.initRepositories()
	deps.initTokens(cfg)
	deps.initServices(cfg)
	deps.initHTTP(cfg)

	logger.Info("all dependencies initialized successfully")
	return deps
}

func (d *Dependencies) initRepositories() {
	d.Repositories = d.RepoFactory.NewRepositories()
	d.Logger.Info("repositories initialized")
}

func (d *Dependencies) initTokens(cfg *config.Config) {
	if len(cfg.JWT.Secret) < token.MinSecretLength {
		// Login fails with a token configuration error until the secret is fixed
		d.Logger.Warn("JWT secret is shorter than the minimum; logins will fail",
			zap.Int("min_bytes", token.MinSecretLength),
			zap.Int("actual_bytes", len(cfg.JWT.Secret)))
	}

	d.Tokens = token.NewCodec(token.Config{
		Issuer:             cfg.JWT.Issuer,
		Secret:             cfg.JWT.SecretBytes(),
		AccessTokenMinutes: cfg.JWT.AccessTokenMinutes,
	})
}

func (d *Dependencies) initServices(cfg *config.Config) {
	d.MenuCache = menu.NewCache(cfg.Menu.CacheSize, cfg.Menu.CacheTTL)
	if !d.MenuCache.Enabled() {
		d.Logger.Info("menu cache disabled")
	}

	d.AuthService = auth.NewService(d.Repositories.Credentials, d.Tokens, d.Logger)
	d.MenuService = menu.NewService(d.Repositories.Menus, d.MenuCache, d.Logger)
}

func (d *Dependencies) initHTTP(cfg *config.Config) {
	rules := middleware.DefaultAccessRules()
	if cfg.Menu.AllowAnonymous {
		rules = append([]middleware.AccessRule{
			{Method: http.MethodGet, Pattern: "/api/menu", Access: middleware.PermitAll},
		}, rules...)
		d.Logger.Warn("anonymous menu requests are permitted")
	}

	d.AuthMiddleware = middleware.NewAuthMiddleware(d.Tokens, d.Logger)
	d.AccessPolicy = middleware.NewAccessPolicy(rules, d.Logger)

	d.AuthHandler = handlers.NewAuthHandler(d.AuthService, d.Logger)
	d.MenuHandler = handlers.NewMenuHandler(d.MenuService, d.Logger)
	d.HealthHandler = handlers.NewHealthHandler(d.DB.DB, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.MenuCache.Enabled() {
		stats := d.MenuCache.Stats()
		d.Logger.Info("menu cache released",
			zap.Int("size", stats.Size),
			zap.Uint64("hits", stats.Hits),
			zap.Uint64("misses", stats.Misses))
		d.MenuCache.Clear()
	}

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
