// Package history persists per-client search history in Redis.
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"leadscout_backend/internal/search/domain"
	"leadscout_backend/platform/logger"
)

// Limit caps the number of retained entries per client.
const Limit = 15

// schemaVersion tags persisted blobs. Anything else found at load time is
// discarded, the same as a parse failure.
const schemaVersion = 1

const keyPrefix = "leadscout:history:"

// envelope is the persisted shape.
type envelope struct {
	Version int                   `json:"version"`
	Entries []domain.HistoryEntry `json:"entries"`
}

// Store is the Redis-backed history store.
type Store struct {
	rdb *redis.Client
	log *logger.Logger
}

// NewStore creates a history store on the given Redis client.
func NewStore(rdb *redis.Client, log *logger.Logger) *Store {
	return &Store{rdb: rdb, log: log}
}

// Record prepends the entry, drops any prior entry with the same
// (city, ordered-categories) key, truncates to the most recent Limit entries
// and persists synchronously.
func (s *Store) Record(ctx context.Context, clientID string, entry domain.HistoryEntry) error {
	entries := s.Load(ctx, clientID)

	key := entry.Query.HistoryKey()
	kept := make([]domain.HistoryEntry, 0, len(entries)+1)
	kept = append(kept, entry)
	for _, existing := range entries {
		if existing.Query.HistoryKey() == key {
			continue
		}
		kept = append(kept, existing)
	}

	if len(kept) > Limit {
		kept = kept[:Limit]
	}

	payload, err := json.Marshal(envelope{Version: schemaVersion, Entries: kept})
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	return s.rdb.Set(ctx, storageKey(clientID), payload, 0).Err()
}

// Load returns the persisted history for the client. A missing key, corrupt
// payload or unknown schema version all yield an empty list; corruption is
// logged and never surfaced.
func (s *Store) Load(ctx context.Context, clientID string) []domain.HistoryEntry {
	payload, err := s.rdb.Get(ctx, storageKey(clientID)).Bytes()
	if err == redis.Nil {
		return []domain.HistoryEntry{}
	}
	if err != nil {
		s.log.StorageCorruption(storageKey(clientID), err)
		return []domain.HistoryEntry{}
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		s.log.StorageCorruption(storageKey(clientID), err)
		return []domain.HistoryEntry{}
	}
	if env.Version != schemaVersion {
		s.log.StorageCorruption(storageKey(clientID), fmt.Errorf("unsupported history version %d", env.Version))
		return []domain.HistoryEntry{}
	}
	if env.Entries == nil {
		return []domain.HistoryEntry{}
	}

	return env.Entries
}

// Clear removes the client's history.
func (s *Store) Clear(ctx context.Context, clientID string) error {
	return s.rdb.Del(ctx, storageKey(clientID)).Err()
}

func storageKey(clientID string) string {
	return keyPrefix + clientID
}
