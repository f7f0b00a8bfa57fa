package invitation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		status    Status
		expiresAt time.Time
		want      bool
	}{
		{"pending before expiry", StatusPending, now.Add(time.Hour), false},
		{"pending past expiry", StatusPending, now.Add(-time.Second), true},
		{"accepted never reads expired", StatusAccepted, now.Add(-time.Hour), false},
		{"rejected never reads expired", StatusRejected, now.Add(-time.Hour), false},
		{"cancelled never reads expired", StatusCancelled, now.Add(-time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Invitation{Status: tt.status, ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, inv.IsExpired(now))
		})
	}
}

func TestCanBeAnswered(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	live := Invitation{Status: StatusPending, ExpiresAt: now.Add(time.Hour)}
	assert.True(t, live.CanBeAnswered(now))

	expired := Invitation{Status: StatusPending, ExpiresAt: now.Add(-time.Second)}
	assert.False(t, expired.CanBeAnswered(now))

	for _, s := range []Status{StatusAccepted, StatusRejected, StatusCancelled} {
		terminal := Invitation{Status: s, ExpiresAt: now.Add(time.Hour)}
		assert.False(t, terminal.CanBeAnswered(now), "terminal status %s must not be answerable", s)
	}
}

func TestCanBeResent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Expired-but-pending is eligible: resend reissues token and expiry.
	expired := Invitation{Status: StatusPending, ExpiresAt: now.Add(-time.Hour)}
	assert.True(t, expired.CanBeResent())

	for _, s := range []Status{StatusAccepted, StatusRejected, StatusCancelled} {
		terminal := Invitation{Status: s}
		assert.False(t, terminal.CanBeResent())
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusAccepted.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}
