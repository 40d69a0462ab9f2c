package auth

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func countBcryptCompares(t *testing.T) *atomic.Int32 {
	t.Helper()

	var calls atomic.Int32
	original := compareHashAndPassword
	compareHashAndPassword = func(hashed, password []byte) error {
		calls.Add(1)
		return original(hashed, password)
	}
	t.Cleanup(func() { compareHashAndPassword = original })
	return &calls
}

func TestUnknownUserRunsBcryptWhenStoreHasHashes(t *testing.T) {
	hashed, err := HashPassword("testpassword", bcrypt.MinCost+1)
	require.NoError(t, err)

	store := NewCredentialStore(map[string]string{"testuser": hashed, "plainuser": "plain"})

	cost, err := bcrypt.Cost([]byte(store.dummy))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)

	calls := countBcryptCompares(t)

	_, err = store.Authenticate("nosuchuser", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.EqualValues(t, 1, calls.Load())

	_, err = store.Authenticate("testuser", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.EqualValues(t, 2, calls.Load())
}

func TestUnknownUserStaysPlaintextForPlaintextStore(t *testing.T) {
	store := NewCredentialStore(map[string]string{"testuser": "testpassword"})
	assert.Equal(t, unknownUserPassword, store.dummy)

	calls := countBcryptCompares(t)

	_, err := store.Authenticate("nosuchuser", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.EqualValues(t, 0, calls.Load())
}
