// Package cache provides the durable, time-expiring store used to
// share authenticated sessions across process invocations.
//
// The store is a single bbolt file partitioned into one bucket per
// application. bbolt gives atomic per-key get/set under a file lock,
// so independent CLI invocations racing on the same entry cannot
// corrupt it.
package cache

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// DefaultTTL is the expiry applied by Set. GSX sessions are valid for
// roughly 30 minutes of inactivity; 20 leaves headroom.
const DefaultTTL = 20 * time.Minute

// openTimeout bounds the wait for the file lock when another process
// holds the store open.
const openTimeout = 5 * time.Second

type record struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store is a TTL-aware key/value store backed by a local bbolt file.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open opens (creating if needed) the store at path, partitioned
// under the named application bucket.
func Open(path, app string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("cache: opening %s: %w", path, err)
	}

	bucket := []byte(app)
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: creating bucket %s: %w", app, err)
	}

	return &Store{db: db, bucket: bucket}, nil
}

// Get returns the value stored under key. Entries past their expiry
// behave as a miss and are evicted on the spot; there is no
// background sweeper.
func (s *Store) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		raw := b.Get([]byte(key))
		if raw == nil {
			return nil
		}

		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			// Unreadable entries are treated as expired.
			return b.Delete([]byte(key))
		}
		if time.Now().After(rec.ExpiresAt) {
			return b.Delete([]byte(key))
		}

		value, found = rec.Value, true
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("cache: get %s: %w", key, err)
	}
	return value, found, nil
}

// Set stores value under key with the default TTL, resetting any
// previous expiry.
func (s *Store) Set(key, value string) error {
	return s.SetTTL(key, value, DefaultTTL)
}

// SetTTL stores value under key, expiring after ttl.
func (s *Store) SetTTL(key, value string, ttl time.Duration) error {
	rec := record{Value: value, ExpiresAt: time.Now().Add(ttl)}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("cache: encoding %s: %w", key, err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), raw)
	})
	if err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

// Delete removes the entry under key if present.
func (s *Store) Delete(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("cache: delete %s: %w", key, err)
	}
	return nil
}

// Close releases the store and its file lock.
func (s *Store) Close() error {
	return s.db.Close()
}
