package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/multi-auth-api/internal/auth"
	"github.com/spec-kit/multi-auth-api/internal/domain"
)

func TestStaticTokenVerifier(t *testing.T) {
	t.Parallel()

	v := auth.NewStaticTokenVerifier("test-static-api-token")

	principal, err := v.Verify("test-static-api-token")
	require.NoError(t, err)
	assert.Equal(t, domain.AuthSchemeStaticToken, principal.Scheme)
	assert.False(t, principal.HasIdentity())

	for _, presented := range []string{
		"",
		"wrong-token",
		"test-static-api-toke",
		"test-static-api-token ",
		" test-static-api-token",
		"Test-static-api-token",
		"test-static-api-tokenX",
		"Bearer test-static-api-token",
	} {
		_, err := v.Verify(presented)
		assert.ErrorIs(t, err, auth.ErrInvalidAPIToken, "presented %q", presented)
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	}
}

func TestStaticTokenVerifierUnconfigured(t *testing.T) {
	t.Parallel()

	v := auth.NewStaticTokenVerifier("")
	_, err := v.Verify("")
	assert.ErrorIs(t, err, auth.ErrInvalidAPIToken)
}
