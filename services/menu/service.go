// Package menu builds the navigation tree shown to an authenticated employee.
package menu

import (
	"context"

	"github.com/bizxr/erp-portal/models"
	"github.com/bizxr/erp-portal/services"
	"go.uber.org/zap"
)

// MenuRepository loads the raw menu rows an employee is allowed to see
type MenuRepository interface {
	ListMenuRows(ctx context.Context, epCode string) ([]map[string]any, error)
}

// Service assembles per-employee menu trees
type Service struct {
	repo   MenuRepository
	cache  *Cache
	logger *zap.Logger
}

// NewService creates a new menu service. cache may be nil.
func NewService(repo MenuRepository, cache *Cache, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// UserMenu returns the menu tree for the identity.
// A nil identity or one without an employee code gets an empty tree.
func (s *Service) UserMenu(ctx context.Context, identity *models.Identity) ([]models.MenuNode, error) {
	if identity == nil || identity.IsAnonymous() {
		return []models.MenuNode{}, nil
	}
	epCode := identity.EpCode

	if tree, ok := s.cache.Get(epCode); ok {
		s.logger.Debug("menu cache hit", zap.String("ep_code", epCode))
		return tree, nil
	}

	raw, err := s.repo.ListMenuRows(ctx, epCode)
	if err != nil {
		s.logger.Error("failed to load menu rows",
			zap.String("ep_code", epCode),
			zap.Error(err))
		return nil, services.ErrDatabaseError.Wrap(err)
	}

	tree := BuildTree(ParseRows(raw))
	s.cache.Set(epCode, tree)

	s.logger.Debug("menu tree built",
		zap.String("ep_code", epCode),
		zap.Int("rows", len(raw)),
		zap.Int("roots", len(tree)))

	return tree, nil
}
