package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/multi-auth-api/internal/auth"
	"github.com/spec-kit/multi-auth-api/internal/config"
	"github.com/spec-kit/multi-auth-api/internal/domain"
	"github.com/spec-kit/multi-auth-api/internal/events"
	"github.com/spec-kit/multi-auth-api/internal/service"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, e events.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		SecretKey:                "test-secret-key-for-jwt-dont-use-in-prod",
		Algorithm:                "HS256",
		AccessTokenExpireSeconds: 15 * 60,
		SimpleAPIToken:           "test-static-api-token",
		UserLogin:                config.UserLogin{"testuser": "testpassword", "alice": "wonderland"},
	}
}

func TestLoginIssuesTokenForEveryConfiguredUser(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	cfg := testAuthConfig()
	svc, err := service.NewAuthServiceFromConfig(cfg, nil, auth.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	for username, password := range cfg.UserLogin {
		grant, err := svc.Login(context.Background(), username, password)
		require.NoError(t, err)
		assert.Equal(t, domain.TokenTypeBearer, grant.TokenType)
		assert.NotEmpty(t, grant.AccessToken)
		assert.Equal(t, now.Add(15*time.Minute), grant.ExpiresAt)

		identity, err := svc.TokenManager().Verify(grant.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, domain.Identity(username), identity)
	}
}

func TestLoginWithLifetime(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	svc, err := service.NewAuthServiceFromConfig(testAuthConfig(), nil, auth.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	grant, err := svc.LoginWithLifetime(context.Background(), "testuser", "testpassword", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Minute), grant.ExpiresAt)
}

func TestLoginFailuresAreGeneric(t *testing.T) {
	t.Parallel()

	dispatcher := &recordingDispatcher{}
	svc, err := service.NewAuthServiceFromConfig(testAuthConfig(), dispatcher)
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), "testuser", "wrongpassword")
	_, unknownUser := svc.Login(context.Background(), "wronguser", "testpassword")

	assert.ErrorIs(t, wrongPassword, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, auth.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())

	require.Len(t, dispatcher.events, 2)
	for _, e := range dispatcher.events {
		assert.Equal(t, events.EventLoginFailed, e.Type)
		assert.NotContains(t, e.Reason, "wrongpassword")
		assert.NotContains(t, e.Reason, "testpassword")
	}
	assert.Equal(t, "wronguser", dispatcher.events[1].Username)
}

func TestLoginPublishesSuccess(t *testing.T) {
	t.Parallel()

	dispatcher := &recordingDispatcher{}
	svc, err := service.NewAuthServiceFromConfig(testAuthConfig(), dispatcher)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice", "wonderland")
	require.NoError(t, err)

	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, events.EventLoginSucceeded, dispatcher.events[0].Type)
	assert.Equal(t, "alice", dispatcher.events[0].Username)
}

func TestNewAuthServiceFromConfigRejectsBadConfig(t *testing.T) {
	t.Parallel()

	noSecret := testAuthConfig()
	noSecret.SecretKey = ""
	_, err := service.NewAuthServiceFromConfig(noSecret, nil)
	assert.Error(t, err)

	badAlg := testAuthConfig()
	badAlg.Algorithm = "ES256"
	_, err = service.NewAuthServiceFromConfig(badAlg, nil)
	assert.Error(t, err)

	noUsers := testAuthConfig()
	noUsers.UserLogin = nil
	_, err = service.NewAuthServiceFromConfig(noUsers, nil)
	assert.Error(t, err)
}
