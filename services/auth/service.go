// Package auth implements employee login: credential lookup followed by
// access token issuance.
package auth

import (
	"context"
	"errors"

	"github.com/bizxr/erp-portal/models"
	"github.com/bizxr/erp-portal/services"
	"github.com/bizxr/erp-portal/token"
	"go.uber.org/zap"
)

// CredentialVerifier looks up the employee matching the presented credentials.
// It returns a nil record and no error when nothing matches.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, epCode, passWord string) (*models.UserRecord, error)
}

// TokenIssuer signs access tokens for an identity
type TokenIssuer interface {
	Issue(identity models.Identity) (string, error)
}

// LoginRequest is the login request body
type LoginRequest struct {
	EpCode   string `json:"epCode" validate:"required,max=50"`
	PassWord string `json:"passWord" validate:"required,max=200"`
}

// LoginResult is returned on successful login
type LoginResult struct {
	AccessToken string          `json:"accessToken"`
	UserInfo    models.UserInfo `json:"userInfo"`
}

// Service handles login
type Service struct {
	credentials CredentialVerifier
	tokens      TokenIssuer
	logger      *zap.Logger
}

// NewService creates a new auth service
func NewService(credentials CredentialVerifier, tokens TokenIssuer, logger *zap.Logger) *Service {
	return &Service{
		credentials: credentials,
		tokens:      tokens,
		logger:      logger,
	}
}

// Login verifies the credentials and issues an access token.
//
// Returns services.ErrCredentialNotFound when no employee matches,
// services.ErrTokenConfig when the token cannot be signed with the current
// settings, and services.ErrDatabaseError when the lookup fails.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	record, err := s.credentials.VerifyCredentials(ctx, req.EpCode, req.PassWord)
	if err != nil {
		s.logger.Error("credential lookup failed",
			zap.String("ep_code", req.EpCode),
			zap.Error(err))
		return nil, services.ErrDatabaseError.Wrap(err)
	}
	if record == nil {
		s.logger.Info("login rejected", zap.String("ep_code", req.EpCode))
		return nil, services.ErrCredentialNotFound
	}

	identity := record.Identity(req.EpCode)

	accessToken, err := s.tokens.Issue(identity)
	if err != nil {
		if errors.Is(err, token.ErrConfig) {
			s.logger.Error("token configuration error", zap.Error(err))
			return nil, services.ErrTokenConfig.Wrap(err)
		}
		return nil, services.WrapInternal("failed to issue token", err)
	}

	s.logger.Info("login succeeded", zap.String("ep_code", identity.EpCode))

	return &LoginResult{
		AccessToken: accessToken,
		UserInfo:    identity.UserInfo(),
	}, nil
}
