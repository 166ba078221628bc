package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/supertictactoe-backend/testing/suite"
)

func TestNewRedisStorage(t *testing.T) {
	t.Run("Connects to a running redis", func(t *testing.T) {
		ctx, st := suite.New(t)

		// When: connecting to the suite's redis
		redisStorage, err := NewRedisStorage(ctx, st.Redis.Options().Addr, "", 0)

		// Then: the connection is usable
		require.NoError(t, err)
		require.NoError(t, redisStorage.Connection.Ping(ctx).Err())
		assert.NoError(t, redisStorage.Close())
	})

	t.Run("Error when nothing listens", func(t *testing.T) {
		// When: connecting to a closed port
		redisStorage, err := NewRedisStorage(context.Background(), "127.0.0.1:1", "", 0)

		// Then: an error is returned
		require.Error(t, err)
		assert.Nil(t, redisStorage)
	})
}
