// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guide_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voyara/internal/core/guide"
	"github.com/taibuivan/voyara/internal/platform/constants"
	"github.com/taibuivan/voyara/pkg/uuid"
)

// redisClient connects to TEST_REDIS_URL or skips the test.
func redisClient(t *testing.T) *redis.Client {
	t.Helper()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	options, err := redis.ParseURL(url)
	require.NoError(t, err)

	client := redis.NewClient(options)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Ping(context.Background()).Err())
	return client
}

func TestRedisHistoryRepository(t *testing.T) {
	ctx := context.Background()
	client := redisClient(t)
	repository := guide.NewRedisHistoryRepository(client)

	owner := "session:" + uuid.New()
	t.Cleanup(func() { _ = repository.Clear(ctx, owner) })

	entries, err := repository.List(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{}, entries)

	for i := 1; i <= 12; i++ {
		require.NoError(t, repository.Record(ctx, owner, fmt.Sprintf("query %d", i)))
	}
	require.NoError(t, repository.Record(ctx, owner, "query 5"))
	require.NoError(t, repository.Record(ctx, owner, "   "))

	entries, err = repository.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, entries, guide.HistoryLimit)
	assert.Equal(t, "query 5", entries[0])
	assert.Equal(t, "query 12", entries[1])
	assert.Equal(t, 1, countOf(entries, "query 5"))

	ttl, err := client.TTL(ctx, constants.RedisPrefixSearchHistory+owner).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)

	require.NoError(t, repository.Clear(ctx, owner))

	entries, err = repository.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func countOf(values []string, target string) int {
	count := 0
	for _, value := range values {
		if value == target {
			count++
		}
	}
	return count
}
