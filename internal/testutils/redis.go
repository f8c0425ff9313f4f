// Package testutils provides shared test helpers: an in-memory Redis
// client and deterministic dice rollers.
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/oakhaven/emberquest/internal/redis"
)

// CreateTestRedisClient creates an in-memory Redis client for testing.
// The returned cleanup shuts the server down.
func CreateTestRedisClient(t *testing.T) (redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")

	return client, mr.Close
}

// CreateTestRedisServer exposes the miniredis instance itself for tests
// that need to inspect or pre-seed keys.
func CreateTestRedisServer(t *testing.T) (*miniredis.Miniredis, redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")
	t.Cleanup(mr.Close)

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")

	return mr, client
}
