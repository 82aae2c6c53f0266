package middleware

import (
	"context"

	"github.com/bizxr/erp-portal/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"

	// IdentityKey is the context key for the authenticated caller
	IdentityKey contextKey = "identity"
)

// GetRequestIDFromContext retrieves the request ID from context
func GetRequestIDFromContext(ctx context.Context) string {
	if val := ctx.Value(RequestIDKey); val != nil {
		if requestID, ok := val.(string); ok {
			return requestID
		}
	}
	return ""
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithIdentity attaches a copy of the identity to the context
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, &identity)
}

// IdentityFromContext returns the caller identity, or false for anonymous requests
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	if val := ctx.Value(IdentityKey); val != nil {
		if identity, ok := val.(*models.Identity); ok && identity != nil {
			return *identity, true
		}
	}
	return models.Identity{}, false
}

// clearIdentity shadows any identity set further up the context chain
func clearIdentity(ctx context.Context) context.Context {
	if _, ok := IdentityFromContext(ctx); !ok {
		return ctx
	}
	return context.WithValue(ctx, IdentityKey, (*models.Identity)(nil))
}
