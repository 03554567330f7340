package utils

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartHealthMonitor_ReportsUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartHealthMonitor(ctx, "mongo", client, nil)

	status := GetHealthStatus()
	assert.Equal(t, "mongo", status.Storage)
	assert.Nil(t, status.Mongo)
	require.NotNil(t, status.Redis)
	assert.False(t, *status.Redis)
	assert.False(t, status.Healthy())
}
