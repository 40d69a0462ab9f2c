package auth

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is the root of every authentication failure.
var ErrUnauthenticated = errors.New("auth: unauthenticated")

var (
	ErrTokenInvalid       = fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	ErrTokenExpired       = fmt.Errorf("%w: token expired", ErrUnauthenticated)
	ErrMissingSubject     = fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	ErrInvalidAPIToken    = fmt.Errorf("%w: invalid api token", ErrUnauthenticated)
	ErrInvalidCredentials = fmt.Errorf("%w: incorrect username or password", ErrUnauthenticated)
)
