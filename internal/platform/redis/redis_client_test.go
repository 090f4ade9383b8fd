package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyflow_backend/internal/platform/config"
)

func TestNewRedisClient(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		rdb, err := NewRedisClient(config.Config{})
		assert.ErrorIs(t, err, ErrNotConfigured)
		assert.Nil(t, rdb)
	})

	t.Run("reachable server", func(t *testing.T) {
		mr := miniredis.RunT(t)

		rdb, err := NewRedisClient(config.Config{RedisHost: mr.Host(), RedisPort: mr.Port()})
		require.NoError(t, err)
		t.Cleanup(func() { _ = rdb.Close() })
	})

	t.Run("unreachable server", func(t *testing.T) {
		mr := miniredis.RunT(t)
		host, port := mr.Host(), mr.Port()
		mr.Close()

		rdb, err := NewRedisClient(config.Config{RedisHost: host, RedisPort: port})
		assert.Error(t, err)
		assert.Nil(t, rdb)
	})
}
