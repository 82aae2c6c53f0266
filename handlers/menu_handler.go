package handlers

import (
	"context"
	"net/http"

	"github.com/bizxr/erp-portal/middleware"
	"github.com/bizxr/erp-portal/models"
	"github.com/bizxr/erp-portal/utils"
	"go.uber.org/zap"
)

// MenuService is the menu use case consumed by MenuHandler
type MenuService interface {
	UserMenu(ctx context.Context, identity *models.Identity) ([]models.MenuNode, error)
}

// MenuHandler serves the caller's menu tree
type MenuHandler struct {
	service MenuService
	logger  *zap.Logger
}

// NewMenuHandler creates a new MenuHandler
func NewMenuHandler(service MenuService, logger *zap.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

// HandleMenu handles GET /api/menu.
// Anonymous callers get an empty list here, though the access policy normally stops them first.
func (h *MenuHandler) HandleMenu(w http.ResponseWriter, r *http.Request) {
	var identity *models.Identity
	if id, ok := middleware.IdentityFromContext(r.Context()); ok {
		identity = &id
	}

	tree, err := h.service.UserMenu(r.Context(), identity)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteJSON(w, http.StatusOK, tree); err != nil {
		h.logger.Error("failed to write menu response", zap.Error(err))
	}
}
