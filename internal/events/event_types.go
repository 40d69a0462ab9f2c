package events

import (
	"time"

	"github.com/spec-kit/multi-auth-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded     EventType = "login_succeeded"
	EventLoginFailed        EventType = "login_failed"
	EventCredentialRejected EventType = "credential_rejected"
)

// Event represents an authentication outcome worth auditing. It never
// carries passwords, tokens or the static secret.
type Event struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Scheme    domain.AuthScheme `json:"scheme"`
	Username  string            `json:"username,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
