// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guide

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/voyara/internal/platform/constants"
)

// RedisHistoryRepository stores each owner's search history as a Redis list.
//
// # Layout
//
// Key "guide:search_history:<owner>" holds at most [HistoryLimit] queries,
// most recent at index 0, and expires after [constants.SearchHistoryTTL] of inactivity.
type RedisHistoryRepository struct {
	client redis.UniversalClient
}

// NewRedisHistoryRepository creates a Redis-backed HistoryRepository.
func NewRedisHistoryRepository(client redis.UniversalClient) *RedisHistoryRepository {
	return &RedisHistoryRepository{client: client}
}

func historyKey(owner string) string {
	return constants.RedisPrefixSearchHistory + owner
}

/*
List returns the owner's history.

Parameters:
  - context: context.Context
  - owner: string

Returns:
  - []string: Queries, most recent first (empty when none are stored)
  - error: Connectivity errors
*/
func (repository *RedisHistoryRepository) List(context context.Context, owner string) ([]string, error) {
	entries, err := repository.client.LRange(context, historyKey(owner), 0, HistoryLimit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_search_history_list_failed: %w", err)
	}
	if entries == nil {
		return []string{}, nil
	}
	return entries, nil
}

/*
Record moves query to the head of the owner's list.

Description: LREM, LPUSH, LTRIM and EXPIRE run in one MULTI/EXEC block, so
concurrent requests for the same owner never leave duplicates or an
over-long list behind. Blank queries are ignored.

Parameters:
  - context: context.Context
  - owner: string
  - query: string

Returns:
  - error: Connectivity errors
*/
func (repository *RedisHistoryRepository) Record(context context.Context, owner, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	key := historyKey(owner)

	_, err := repository.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.LRem(context, key, 0, query)
		pipe.LPush(context, key, query)
		pipe.LTrim(context, key, 0, HistoryLimit-1)
		pipe.Expire(context, key, constants.SearchHistoryTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_search_history_record_failed: %w", err)
	}

	return nil
}

// Clear deletes the owner's list.
func (repository *RedisHistoryRepository) Clear(context context.Context, owner string) error {
	if err := repository.client.Del(context, historyKey(owner)).Err(); err != nil {
		return fmt.Errorf("redis_search_history_clear_failed: %w", err)
	}
	return nil
}
