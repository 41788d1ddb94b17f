// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryRevocationStore implements [RevocationStore] inside the process.
// Revocations are lost on restart and are not shared between instances.
type MemoryRevocationStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocationStore creates an empty in-process RevocationStore.
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{expires: make(map[string]time.Time), now: time.Now}
}

func (store *MemoryRevocationStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	current := store.now()
	store.expires[tokenID] = current.Add(ttl)

	// Sweep on write so the map only holds live entries.
	for id, expiresAt := range store.expires {
		if !expiresAt.After(current) {
			delete(store.expires, id)
		}
	}
	return nil
}

func (store *MemoryRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	expiresAt, ok := store.expires[tokenID]
	if !ok {
		return false, nil
	}
	if !expiresAt.After(store.now()) {
		delete(store.expires, tokenID)
		return false, nil
	}
	return true, nil
}
