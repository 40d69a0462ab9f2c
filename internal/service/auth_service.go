package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/multi-auth-api/internal/auth"
	"github.com/spec-kit/multi-auth-api/internal/config"
	"github.com/spec-kit/multi-auth-api/internal/domain"
	"github.com/spec-kit/multi-auth-api/internal/events"
)

// AuthService coordinates the login flow.
type AuthService struct {
	credentials *auth.CredentialStore
	tokenMgr    *auth.TokenManager
	events      events.Dispatcher
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Credentials  *auth.CredentialStore
	TokenManager *auth.TokenManager
	Events       events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	dispatcher := deps.Events
	if dispatcher == nil {
		dispatcher = events.NewNoopDispatcher()
	}
	return &AuthService{
		credentials: deps.Credentials,
		tokenMgr:    deps.TokenManager,
		events:      dispatcher,
	}
}

// NewAuthServiceFromConfig wires the credential store and token manager from cfg.
// Errors here are startup errors.
func NewAuthServiceFromConfig(cfg config.AuthConfig, dispatcher events.Dispatcher, opts ...auth.Option) (*AuthService, error) {
	tokens, err := auth.NewTokenManager(cfg.SecretKey, cfg.Algorithm, cfg.AccessTokenTTL(), opts...)
	if err != nil {
		return nil, err
	}
	if len(cfg.UserLogin) == 0 {
		return nil, errors.New("service: no users configured")
	}
	return NewAuthService(AuthDependencies{
		Credentials:  auth.NewCredentialStore(cfg.UserLogin),
		TokenManager: tokens,
		Events:       dispatcher,
	}), nil
}

// Login authenticates username/password and issues a token with the default lifetime.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.TokenGrant, error) {
	return s.LoginWithLifetime(ctx, username, password, 0)
}

// LoginWithLifetime is Login with an explicit token lifetime; zero uses the default.
func (s *AuthService) LoginWithLifetime(ctx context.Context, username, password string, lifetime time.Duration) (domain.TokenGrant, error) {
	identity, err := s.credentials.Authenticate(username, password)
	if err != nil {
		s.events.Publish(ctx, events.Event{
			Type:     events.EventLoginFailed,
			Scheme:   domain.AuthSchemeJWT,
			Username: username,
			Reason:   err.Error(),
		})
		return domain.TokenGrant{}, err
	}

	token, expiresAt, err := s.tokenMgr.Issue(identity, lifetime)
	if err != nil {
		return domain.TokenGrant{}, err
	}

	s.events.Publish(ctx, events.Event{
		Type:     events.EventLoginSucceeded,
		Scheme:   domain.AuthSchemeJWT,
		Username: string(identity),
	})
	return domain.TokenGrant{
		AccessToken: token,
		TokenType:   domain.TokenTypeBearer,
		ExpiresAt:   expiresAt,
	}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
