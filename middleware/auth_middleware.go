package middleware

import (
	"net/http"
	"strings"

	"github.com/bizxr/erp-portal/models"
	"go.uber.org/zap"
)

// TokenVerifier defines the interface for verifying access tokens
type TokenVerifier interface {
	// Verify checks the token and returns the identity it carries
	Verify(token string) (models.Identity, error)
}

// AuthMiddleware resolves the caller identity from the Authorization header
type AuthMiddleware struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(verifier TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// Authenticate attaches the identity carried by a valid bearer token to the
// request context. It never rejects a request: missing or bad tokens leave
// the request anonymous and AccessPolicy decides what happens next.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token := extractBearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Debug("token verification failed",
				zap.String("request_id", GetRequestIDFromContext(ctx)),
				zap.Error(err))
			next.ServeHTTP(w, r.WithContext(clearIdentity(ctx)))
			return
		}

		m.logger.Debug("authentication successful",
			zap.String("request_id", GetRequestIDFromContext(ctx)),
			zap.String("ep_code", identity.EpCode))

		next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
	})
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
