package middleware

import (
	"context"
	"testing"

	"github.com/bizxr/erp-portal/models"
	"github.com/stretchr/testify/assert"
)

func TestIdentityContext(t *testing.T) {
	t.Run("empty context is anonymous", func(t *testing.T) {
		_, ok := IdentityFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("identity is stored by value", func(t *testing.T) {
		identity := models.Identity{EpCode: "E1", EpName: "a"}
		ctx := WithIdentity(context.Background(), identity)
		identity.EpName = "changed"

		got, ok := IdentityFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "a", got.EpName)
	})

	t.Run("clear shadows parent identity", func(t *testing.T) {
		parent := WithIdentity(context.Background(), models.Identity{EpCode: "E1"})
		child := clearIdentity(parent)

		_, ok := IdentityFromContext(child)
		assert.False(t, ok)

		_, ok = IdentityFromContext(parent)
		assert.True(t, ok)
	})

	t.Run("clear on anonymous context is a no-op", func(t *testing.T) {
		ctx := context.Background()
		assert.Equal(t, ctx, clearIdentity(ctx))
	})
}

func TestRequestIDContext(t *testing.T) {
	assert.Empty(t, GetRequestIDFromContext(context.Background()))

	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", GetRequestIDFromContext(ctx))
}
