package auth

import (
	"github.com/spec-kit/multi-auth-api/internal/domain"
)

// CredentialStore is a read-only username to password mapping consulted at login.
type CredentialStore struct {
	users map[string]string
	dummy string
}

// NewCredentialStore copies users so later changes to the source map are not observed.
func NewCredentialStore(users map[string]string) *CredentialStore {
	copied := make(map[string]string, len(users))
	for username, password := range users {
		copied[username] = password
	}
	return &CredentialStore{users: copied, dummy: unknownUserDummy(copied)}
}

// Len returns the number of known users.
func (s *CredentialStore) Len() int {
	return len(s.users)
}

// Authenticate returns the identity for a matching username/password pair.
// Unknown users and wrong passwords fail with the same error.
func (s *CredentialStore) Authenticate(username, password string) (domain.Identity, error) {
	stored, ok := s.users[username]
	if !ok {
		ComparePassword(s.dummy, password)
		return "", ErrInvalidCredentials
	}
	if !ComparePassword(stored, password) {
		return "", ErrInvalidCredentials
	}
	return domain.Identity(username), nil
}
