package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/chargen/internal/errors"
	"github.com/KirkDiggler/chargen/internal/redis"
)

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	for _, endpoint := range []string{mr.Addr(), "redis://" + mr.Addr() + "/0"} {
		t.Run(endpoint, func(t *testing.T) {
			client, err := redis.NewClient(endpoint, &redis.Options{PoolSize: 2})
			require.NoError(t, err)
			defer func() { _ = client.Close() }()

			require.NoError(t, redis.Ping(context.Background(), client))
		})
	}
}

func TestNewClientRejectsBadInput(t *testing.T) {
	_, err := redis.NewClient("", nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = redis.NewClient("postgres://nope", nil)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestPingUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := redis.NewClient(mr.Addr(), &redis.Options{MaxRetries: -1})
	require.NoError(t, err)
	mr.Close()

	err = redis.Ping(context.Background(), client)
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnavailable, errors.GetCode(err))
}
