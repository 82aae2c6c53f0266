package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bizxr/erp-portal/middleware"
	"github.com/bizxr/erp-portal/services"
	"github.com/bizxr/erp-portal/services/auth"
	"github.com/bizxr/erp-portal/utils"
	"go.uber.org/zap"
)

const maxLoginBodyBytes = 1 << 20

// LoginService is the login use case consumed by AuthHandler
type LoginService interface {
	Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResult, error)
}

// AuthHandler serves login and the current user profile
type AuthHandler struct {
	service LoginService
	logger  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service LoginService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// HandleLogin handles POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLoginBodyBytes)).Decode(&req); err != nil {
		h.logger.Debug("invalid login body",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	result, err := h.service.Login(r.Context(), req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("failed to write login response", zap.Error(err))
	}
}

// HandleMe handles GET /api/auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		HandleServiceError(w, services.ErrUnauthenticated, h.logger)
		return
	}

	if err := utils.WriteJSON(w, http.StatusOK, identity); err != nil {
		h.logger.Error("failed to write profile response", zap.Error(err))
	}
}
