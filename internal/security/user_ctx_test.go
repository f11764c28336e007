package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCtxFromToken(t *testing.T) {
	utx, err := UserCtxFromToken(" 123 ")
	require.NoError(t, err)
	assert.Equal(t, int64(123), utx.UserID)

	for _, bad := range []string{"", "  ", "abc", "12a", "99999999999999999999"} {
		_, err := UserCtxFromToken(bad)
		assert.ErrorIs(t, err, ErrInvalidToken, bad)
	}
}

func TestUserCtxContextRoundTrip(t *testing.T) {
	_, ok := UserCtxFrom(context.Background())
	assert.False(t, ok)

	ctx := WithUserCtx(context.Background(), &UserCtx{UserID: 7})
	utx, ok := UserCtxFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(7), utx.UserID)
}
