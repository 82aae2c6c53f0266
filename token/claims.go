package token

import (
	"fmt"
	"strings"

	"github.com/bizxr/erp-portal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload carried by an access token
type Claims struct {
	jwt.RegisteredClaims
	EpCode   string `json:"epCode"`
	EpName   string `json:"epName"`
	TeamCode string `json:"teamCode"`
	TeamName string `json:"teamName"`
	BusuCode string `json:"busuCode"`
	BusuName string `json:"busuName"`
}

// newClaims copies the identity into a claim set. Registered claims are filled by the caller.
func newClaims(identity models.Identity) *Claims {
	return &Claims{
		EpCode:   identity.EpCode,
		EpName:   identity.EpName,
		TeamCode: identity.TeamCode,
		TeamName: identity.TeamName,
		BusuCode: identity.BusuCode,
		BusuName: identity.BusuName,
	}
}

// identity rebuilds the caller identity from verified claims
func (c *Claims) identity() (models.Identity, error) {
	if strings.TrimSpace(c.EpCode) == "" {
		return models.Identity{}, fmt.Errorf("%w: epCode", ErrMissingClaim)
	}
	if c.ExpiresAt == nil {
		return models.Identity{}, fmt.Errorf("%w: exp", ErrMissingClaim)
	}

	return models.Identity{
		EpCode:   c.EpCode,
		EpName:   c.EpName,
		TeamCode: c.TeamCode,
		TeamName: c.TeamName,
		BusuCode: c.BusuCode,
		BusuName: c.BusuName,
	}, nil
}
