package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepositoryWithoutRedisIsNoop(t *testing.T) {
	repo := NewSessionRepository(nil, nil)
	ctx := context.Background()

	assert.False(t, repo.Enabled())
	require.NoError(t, repo.RevokeToken(ctx, "jti", time.Minute))

	revoked, err := repo.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, revoked)

	count, err := repo.RecordFailedLogin(ctx, "admin@bcsi.edu.ph", time.Minute)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, repo.ResetFailedLogins(ctx, "admin@bcsi.edu.ph"))
	require.NoError(t, repo.PingContext(ctx))
	require.NoError(t, repo.Close())
}
