package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/astro-web3/restaurant-api/internal/infra/password"
)

func TestBcrypt(t *testing.T) {
	t.Parallel()

	h := password.NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	require.NoError(t, h.Verify(hash, "s3cret!"))
	require.ErrorIs(t, h.Verify(hash, "wrong"), password.ErrMismatch)
	require.Error(t, h.Verify("not-a-hash", "s3cret!"))
}
