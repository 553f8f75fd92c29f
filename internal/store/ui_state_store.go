package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Persisted UI state keys. These mirror what the dashboard keeps between
// sessions: the page, the active column filters, and the search text. Sort
// configuration is deliberately never persisted.
const (
	KeyCurrentPage   = "current_page"
	KeyActiveFilters = "active_filters"
	KeySearchText    = "search_text"
)

var bucketUIState = []byte("ui_state")

// UIStateStore is a small keyed JSON store used the way a browser app uses
// localStorage.
type UIStateStore interface {
	Get(key string, out any) (bool, error)
	Set(key string, value any) error
	Delete(keys ...string) error
	Close() error
}

type bboltStateStore struct {
	db *bolt.DB
}

func NewBboltStateStore(path string) (UIStateStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("state db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketUIState)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &bboltStateStore{db: db}, nil
}

func (s *bboltStateStore) Get(key string, out any) (bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, errors.New("key is required")
	}
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketUIState)
		if bucket == nil {
			return nil
		}
		if value := bucket.Get([]byte(key)); value != nil {
			raw = append([]byte{}, value...)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *bboltStateStore) Set(key string, value any) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("key is required")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketUIState)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), raw)
	})
}

func (s *bboltStateStore) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketUIState)
		if bucket == nil {
			return nil
		}
		for _, key := range keys {
			if err := bucket.Delete([]byte(strings.TrimSpace(key))); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *bboltStateStore) Close() error {
	return s.db.Close()
}

// MemoryStateStore keeps state in-process. Used in tests and when the data
// directory is unavailable.
type MemoryStateStore struct {
	values map[string][]byte
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{values: map[string][]byte{}}
}

func (s *MemoryStateStore) Get(key string, out any) (bool, error) {
	raw, ok := s.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MemoryStateStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.values[key] = raw
	return nil
}

func (s *MemoryStateStore) Delete(keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func (s *MemoryStateStore) Close() error {
	return nil
}
