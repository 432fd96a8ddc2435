// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guide

import (
	"context"
	"sync"
)

// MemoryHistoryRepository keeps search histories in process memory.
//
// It is used when no Redis instance is configured; histories are lost on restart.
type MemoryHistoryRepository struct {
	mu        sync.Mutex
	histories map[string]*History
}

// NewMemoryHistoryRepository creates an empty in-memory history store.
func NewMemoryHistoryRepository() *MemoryHistoryRepository {
	return &MemoryHistoryRepository{histories: make(map[string]*History)}
}

// List returns the owner's history, most recent first.
func (repository *MemoryHistoryRepository) List(_ context.Context, owner string) ([]string, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	history, ok := repository.histories[owner]
	if !ok {
		return []string{}, nil
	}
	return history.Entries(), nil
}

// Record moves query to the front of the owner's history.
func (repository *MemoryHistoryRepository) Record(_ context.Context, owner, query string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	history, ok := repository.histories[owner]
	if !ok {
		history = &History{}
		repository.histories[owner] = history
	}
	history.Record(query)
	return nil
}

// Clear forgets the owner's history.
func (repository *MemoryHistoryRepository) Clear(_ context.Context, owner string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	delete(repository.histories, owner)
	return nil
}
