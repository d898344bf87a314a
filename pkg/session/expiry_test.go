package session_test

import (
	"testing"
	"time"

	"github.com/jthernandez999/pineapple-pier-sub000/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsExpired(t *testing.T) {
	now := time.Now()

	t.Run("inside the buffer counts as expired", func(t *testing.T) {
		// 60s of life left against a 120s buffer
		expiresAt := now.UnixMilli() + 60_000
		assert.True(t, session.IsExpired(expiresAt, now, 120*time.Second))
	})

	t.Run("outside the buffer is valid", func(t *testing.T) {
		expiresAt := now.UnixMilli() + 300_000
		assert.False(t, session.IsExpired(expiresAt, now, 120*time.Second))
	})

	t.Run("already past expiry", func(t *testing.T) {
		expiresAt := now.UnixMilli() - 1
		assert.True(t, session.IsExpired(expiresAt, now, 120*time.Second))
	})
}

func TestComputeExpiresAt(t *testing.T) {
	now := time.Now()

	expiresAt := session.ComputeExpiresAt(now, 7200, 120*time.Second)

	// 7200s TTL minus the 120s buffer
	assert.Equal(t, now.UnixMilli()+7_080_000, expiresAt)
}

func TestParseExpiresAt(t *testing.T) {
	ms, err := session.ParseExpiresAt("1700000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), ms)

	_, err = session.ParseExpiresAt("not-a-number")
	assert.Error(t, err)

	_, err = session.ParseExpiresAt("")
	assert.Error(t, err)
}
