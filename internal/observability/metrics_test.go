package observability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/multi-auth-api/internal/observability"
)

func TestMetricsSnapshot(t *testing.T) {
	t.Parallel()

	m := observability.NewMetrics()
	m.RecordRequest("/login/token", "POST", 200, 5*time.Millisecond)
	m.RecordRequest("/login/token", "POST", 200, 7*time.Millisecond)
	m.RecordRequest("/login/token", "POST", 401, time.Millisecond)
	m.RecordError("/login/token", "POST", "UNAUTHENTICATED")

	snap := m.Snapshot()
	assert.EqualValues(t, 2, snap.Requests[observability.MetricKey("/login/token", "POST", "200")])
	assert.EqualValues(t, 1, snap.Requests[observability.MetricKey("/login/token", "POST", "401")])
	assert.Equal(t, 12*time.Millisecond, snap.Latency[observability.MetricKey("/login/token", "POST", "200")])
	assert.EqualValues(t, 1, snap.Errors[observability.MetricKey("/login/token", "POST", "UNAUTHENTICATED")])

	m.RecordError("/login/token", "POST", "UNAUTHENTICATED")
	assert.EqualValues(t, 1, snap.Errors[observability.MetricKey("/login/token", "POST", "UNAUTHENTICATED")], "snapshot is a copy")
}

func TestNilMetricsIsSafe(t *testing.T) {
	t.Parallel()

	var m *observability.Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, 0)
		m.RecordError("/", "GET", "X")
		assert.Empty(t, m.Snapshot().Requests)
	})
}
