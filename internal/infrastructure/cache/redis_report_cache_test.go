package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/cache"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

func startRedis(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("integración con Redis omitida en modo -short")
	}
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("Docker no disponible: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return "redis://" + endpoint + "/0"
}

func TestReportCache_RoundTripAndInvalidate(t *testing.T) {
	url := startRedis(t)
	ctx := context.Background()

	c, err := cache.NewReportCache(ctx, url, time.Minute, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	_, ok, err := c.GetWeeklySales(ctx, "6:0:2026-09-07:UTC")
	require.NoError(t, err)
	assert.False(t, ok, "sin entrada debe ser miss")

	buckets := []dto.WeeklySalesBucketDTO{
		{WeekStart: "2026-10-12", WeekLabel: "12 oct – 18 oct", Total: decimal.RequireFromString("30.00"), Count: 1},
	}
	require.NoError(t, c.SetWeeklySales(ctx, "6:0:2026-09-07:UTC", buckets))
	require.NoError(t, c.SetWeeklySales(ctx, "3:1:2026-09-28:UTC", buckets))

	got, ok, err := c.GetWeeklySales(ctx, "6:0:2026-09-07:UTC")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "12 oct – 18 oct", got[0].WeekLabel)
	assert.True(t, got[0].Total.Equal(decimal.NewFromInt(30)))

	require.NoError(t, c.InvalidateWeeklySales(ctx))
	for _, key := range []string{"6:0:2026-09-07:UTC", "3:1:2026-09-28:UTC"} {
		_, ok, err := c.GetWeeklySales(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, "la invalidación borra todas las variantes (%s)", key)
	}
}

func TestReportCache_CorruptEntryIsMiss(t *testing.T) {
	url := startRedis(t)
	ctx := context.Background()

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(ctx, "reports:weekly_sales:bad", "{no-json", time.Minute).Err())

	c := cache.NewReportCacheWithClient(client, 0, logger.Nop())
	_, ok, err := c.GetWeeklySales(ctx, "bad")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := client.Exists(ctx, "reports:weekly_sales:bad").Result()
	require.NoError(t, err)
	assert.Zero(t, n, "la entrada corrupta se elimina")
}
