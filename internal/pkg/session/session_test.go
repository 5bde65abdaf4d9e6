package session

import (
	"testing"
	"time"

	"booking-portal/config"
	"booking-portal/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	m := New(&config.AdminConfig{SessionSecret: "s3cret", SessionTTL: 24 * time.Hour})
	m.now = func() time.Time { return now }

	token, expires, err := m.Issue("admin")
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour), expires)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)

	t.Run("expired", func(t *testing.T) {
		m.now = func() time.Time { return now.Add(25 * time.Hour) }
		defer func() { m.now = func() time.Time { return now } }()

		_, err := m.Verify(token)
		assert.Equal(t, errors.KindAuth, errors.KindOf(err))
	})

	t.Run("other secret", func(t *testing.T) {
		other := New(&config.AdminConfig{SessionSecret: "different", SessionTTL: time.Hour})
		other.now = m.now

		_, err := other.Verify(token)
		assert.Equal(t, errors.KindAuth, errors.KindOf(err))
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := m.Verify("")
		assert.Equal(t, errors.KindAuth, errors.KindOf(err))
	})
}

func TestMissingSecret(t *testing.T) {
	m := New(&config.AdminConfig{SessionTTL: time.Hour})

	_, _, err := m.Issue("admin")
	assert.Equal(t, errors.KindServerError, errors.KindOf(err))
}
