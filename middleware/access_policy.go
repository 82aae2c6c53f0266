package middleware

import (
	"net/http"
	"strings"

	"github.com/bizxr/erp-portal/utils"
	"go.uber.org/zap"
)

// UnauthenticatedMessage is returned to anonymous callers of protected routes
const UnauthenticatedMessage = "인증 정보가 없습니다."

// Access is the requirement a rule places on the caller
type Access int

const (
	// Authenticated requires an identity on the request context
	Authenticated Access = iota
	// PermitAll lets anonymous callers through
	PermitAll
)

func (a Access) String() string {
	switch a {
	case PermitAll:
		return "permit_all"
	default:
		return "authenticated"
	}
}

// AccessRule matches requests by method and path.
// An empty Method matches every method. A Pattern ending in "/*" matches the
// prefix and everything under it, otherwise the path must match exactly.
type AccessRule struct {
	Method  string
	Pattern string
	Access  Access
}

func (r AccessRule) matches(method, path string) bool {
	if r.Method != "" && !strings.EqualFold(r.Method, method) {
		return false
	}
	if prefix, ok := strings.CutSuffix(r.Pattern, "/*"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == r.Pattern
}

// DefaultAccessRules is the rule table used by the API router
func DefaultAccessRules() []AccessRule {
	return []AccessRule{
		{Method: http.MethodPost, Pattern: "/api/auth/login", Access: PermitAll},
		{Method: http.MethodGet, Pattern: "/healthz", Access: PermitAll},
		{Method: http.MethodGet, Pattern: "/readyz", Access: PermitAll},
	}
}

// AccessPolicy gates requests on whether the caller is authenticated.
// Rules are evaluated in order and the first match wins; requests that match
// no rule require authentication.
type AccessPolicy struct {
	rules  []AccessRule
	logger *zap.Logger
}

// NewAccessPolicy creates a new AccessPolicy. The rules are copied.
func NewAccessPolicy(rules []AccessRule, logger *zap.Logger) *AccessPolicy {
	return &AccessPolicy{
		rules:  append([]AccessRule(nil), rules...),
		logger: logger,
	}
}

// Decide returns the access requirement for the request
func (p *AccessPolicy) Decide(method, path string) Access {
	for _, rule := range p.rules {
		if rule.matches(method, path) {
			return rule.Access
		}
	}
	return Authenticated
}

// Enforce is a middleware that rejects anonymous requests to protected routes.
// It must run after Authenticate.
func (p *AccessPolicy) Enforce(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p.Decide(r.Method, r.URL.Path) == PermitAll {
			next.ServeHTTP(w, r)
			return
		}

		if _, ok := IdentityFromContext(r.Context()); !ok {
			p.logger.Debug("anonymous request denied",
				zap.String("request_id", GetRequestIDFromContext(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path))
			_ = utils.WriteUnauthorized(w, UnauthenticatedMessage)
			return
		}

		next.ServeHTTP(w, r)
	})
}
