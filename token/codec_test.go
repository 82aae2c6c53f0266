package token

import (
	"strings"
	"testing"
	"time"

	"github.com/bizxr/erp-portal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	secretA = []byte("0123456789abcdef0123456789abcdef")
	secretB = []byte("fedcba9876543210fedcba9876543210")
)

func testIdentity() models.Identity {
	return models.Identity{
		EpCode:   "E1001",
		EpName:   "홍길동",
		TeamCode: "T10",
		TeamName: "생산팀",
		BusuCode: "B01",
		BusuName: "제조본부",
	}
}

func TestIssueAndVerify(t *testing.T) {
	t.Run("round trip returns the same identity", func(t *testing.T) {
		for _, ttl := range []int{1, 30, 60 * 24} {
			signed, err := Issue(testIdentity(), ttl, secretA)
			require.NoError(t, err)

			identity, err := Verify(signed, secretA)
			require.NoError(t, err)
			assert.Equal(t, testIdentity(), identity)
		}
	})

	t.Run("token has three base64url segments", func(t *testing.T) {
		signed, err := Issue(testIdentity(), 5, secretA)
		require.NoError(t, err)

		parts := strings.Split(signed, ".")
		assert.Len(t, parts, 3)
		for _, p := range parts {
			assert.NotContains(t, p, "=")
			assert.NotContains(t, p, "+")
			assert.NotContains(t, p, "/")
		}
	})

	t.Run("identity with only employee code round trips", func(t *testing.T) {
		signed, err := Issue(models.Identity{EpCode: "E2"}, 5, secretA)
		require.NoError(t, err)

		identity, err := Verify(signed, secretA)
		require.NoError(t, err)
		assert.Equal(t, models.Identity{EpCode: "E2"}, identity)
	})
}

func TestIssueErrors(t *testing.T) {
	tests := []struct {
		name     string
		identity models.Identity
		ttl      int
		secret   []byte
		wantErr  error
	}{
		{
			name:     "short secret",
			identity: testIdentity(),
			ttl:      10,
			secret:   []byte("too-short"),
			wantErr:  ErrSecretTooShort,
		},
		{
			name:     "short secret with empty identity",
			identity: models.Identity{EpName: "x"},
			ttl:      10,
			secret:   secretA[:31],
			wantErr:  ErrSecretTooShort,
		},
		{
			name:     "missing employee code",
			identity: models.Identity{EpName: "no code"},
			ttl:      10,
			secret:   secretA,
			wantErr:  ErrMissingEmployeeCode,
		},
		{
			name:     "zero ttl",
			identity: testIdentity(),
			ttl:      0,
			secret:   secretA,
			wantErr:  ErrInvalidTTL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signed, err := Issue(tt.identity, tt.ttl, tt.secret)
			assert.Empty(t, signed)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrConfig)
			assert.NotErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerifyErrors(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		signed, err := Issue(testIdentity(), 10, secretA)
		require.NoError(t, err)

		_, err = Verify(signed, secretB)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.NotErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("malformed token", func(t *testing.T) {
		for _, raw := range []string{"", "abc", "a.b", "a.b.c", "not a token at all"} {
			_, err := Verify(raw, secretA)
			assert.ErrorIs(t, err, ErrInvalidToken, raw)
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		signed, err := Issue(testIdentity(), 10, secretA)
		require.NoError(t, err)

		other, err := Issue(models.Identity{EpCode: "ADMIN"}, 10, secretA)
		require.NoError(t, err)

		parts := strings.Split(signed, ".")
		otherParts := strings.Split(other, ".")
		forged := parts[0] + "." + otherParts[1] + "." + parts[2]

		_, err = Verify(forged, secretA)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned token rejected", func(t *testing.T) {
		claims := newClaims(testIdentity())
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = Verify(raw, secretA)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing employee code claim", func(t *testing.T) {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretA)
		require.NoError(t, err)

		_, err = Verify(raw, secretA)
		assert.ErrorIs(t, err, ErrMissingClaim)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing expiration claim", func(t *testing.T) {
		claims := newClaims(testIdentity())
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretA)
		require.NoError(t, err)

		_, err = Verify(raw, secretA)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestCodecExpiry(t *testing.T) {
	issuedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clock := issuedAt

	codec := NewCodec(Config{Issuer: "erp-portal", Secret: secretA, AccessTokenMinutes: 30},
		WithClock(func() time.Time { return clock }))

	signed, err := codec.Issue(testIdentity())
	require.NoError(t, err)

	t.Run("valid just before expiry", func(t *testing.T) {
		clock = issuedAt.Add(30*time.Minute - time.Second)
		identity, err := codec.Verify(signed)
		require.NoError(t, err)
		assert.Equal(t, "E1001", identity.EpCode)
	})

	t.Run("invalid at the expiration instant", func(t *testing.T) {
		clock = issuedAt.Add(30 * time.Minute)
		_, err := codec.Verify(signed)
		assert.ErrorIs(t, err, ErrTokenExpired)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("invalid after expiry", func(t *testing.T) {
		clock = issuedAt.Add(2 * time.Hour)
		_, err := codec.Verify(signed)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}

func TestCodecClaims(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	codec := NewCodec(Config{Issuer: "erp-portal", Secret: secretA, AccessTokenMinutes: 60},
		WithClock(func() time.Time { return now }))

	signed, err := codec.Issue(testIdentity())
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(signed, claims)
	require.NoError(t, err)

	assert.Equal(t, "erp-portal", claims.Issuer)
	assert.Equal(t, "E1001", claims.Subject)
	assert.Equal(t, "E1001", claims.EpCode)
	assert.Equal(t, "제조본부", claims.BusuName)
	assert.True(t, now.Equal(claims.IssuedAt.Time))
	assert.True(t, now.Add(time.Hour).Equal(claims.ExpiresAt.Time))
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
	assert.Equal(t, time.Hour, codec.TTL())
}

func TestCodecIssuer(t *testing.T) {
	issuing := NewCodec(Config{Issuer: "other-system", Secret: secretA, AccessTokenMinutes: 5})
	verifying := NewCodec(Config{Issuer: "erp-portal", Secret: secretA, AccessTokenMinutes: 5})

	signed, err := issuing.Issue(testIdentity())
	require.NoError(t, err)

	_, err = verifying.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuing.Verify(signed)
	assert.NoError(t, err)
}

func TestCodecSecretCheckedAtIssue(t *testing.T) {
	codec := NewCodec(Config{Issuer: "erp-portal", Secret: []byte("short"), AccessTokenMinutes: 5})

	_, err := codec.Issue(testIdentity())
	assert.ErrorIs(t, err, ErrSecretTooShort)
}

func TestSigningMethodFor(t *testing.T) {
	assert.Equal(t, jwt.SigningMethodHS256, signingMethodFor(make([]byte, 32)))
	assert.Equal(t, jwt.SigningMethodHS384, signingMethodFor(make([]byte, 48)))
	assert.Equal(t, jwt.SigningMethodHS512, signingMethodFor(make([]byte, 64)))

	long := []byte(strings.Repeat("k", 64))
	signed, err := Issue(testIdentity(), 5, long)
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(signed, &Claims{})
	require.NoError(t, err)
	assert.Equal(t, "HS512", parsed.Method.Alg())

	identity, err := Verify(signed, long)
	require.NoError(t, err)
	assert.Equal(t, testIdentity(), identity)
}
