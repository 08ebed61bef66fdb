// Package profile stores per-client display preferences in Redis.
package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"leadscout_backend/platform/logger"
)

const keyPrefix = "leadscout:profile:"

// schemaVersion tags persisted blobs. Anything else found at load time is
// discarded, the same as a parse failure.
const schemaVersion = 1

// Profile is the client-editable identity attached to exports.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type envelope struct {
	Version int     `json:"version"`
	Profile Profile `json:"profile"`
}

// Store is the Redis-backed profile store.
type Store struct {
	rdb *redis.Client
	log *logger.Logger
}

// NewStore creates a profile store on the given Redis client.
func NewStore(rdb *redis.Client, log *logger.Logger) *Store {
	return &Store{rdb: rdb, log: log}
}

// Save persists the profile synchronously.
func (s *Store) Save(ctx context.Context, clientID string, p Profile) error {
	payload, err := json.Marshal(envelope{Version: schemaVersion, Profile: p})
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.rdb.Set(ctx, storageKey(clientID), payload, 0).Err()
}

// Load returns the stored profile. A missing key, corrupt payload or unknown
// schema version all yield the zero profile; corruption is logged and never
// surfaced.
func (s *Store) Load(ctx context.Context, clientID string) Profile {
	payload, err := s.rdb.Get(ctx, storageKey(clientID)).Bytes()
	if err == redis.Nil {
		return Profile{}
	}
	if err != nil {
		s.log.StorageCorruption(storageKey(clientID), err)
		return Profile{}
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		s.log.StorageCorruption(storageKey(clientID), err)
		return Profile{}
	}
	if env.Version != schemaVersion {
		s.log.StorageCorruption(storageKey(clientID), fmt.Errorf("unsupported profile version %d", env.Version))
		return Profile{}
	}
	return env.Profile
}

func storageKey(clientID string) string {
	return keyPrefix + clientID
}
