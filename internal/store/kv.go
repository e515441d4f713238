package store

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// KV is the local key-value area collections snapshot into: one key per
// collection, each holding the full JSON-serialized value.
type KV interface {
	Put(key string, value []byte) error
	Get(key string) ([]byte, error)
}

const stateBucket = "state"

// BoltKV implements KV on top of a single-file bbolt database.
type BoltKV struct {
	db *bbolt.DB
}

// OpenBolt opens (or creates) the snapshot file at path.
func OpenBolt(path string) (*BoltKV, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open snapshot file: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(stateBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure state bucket: %w", err)
	}

	return &BoltKV{db: db}, nil
}

// Put rewrites the value stored under key.
func (b *BoltKV) Put(key string, value []byte) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(stateBucket)).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key, or nil when the key is absent.
func (b *BoltKV) Get(key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		stored := tx.Bucket([]byte(stateBucket)).Get([]byte(key))
		if stored != nil {
			value = make([]byte, len(stored))
			copy(value, stored)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Close releases the underlying database file.
func (b *BoltKV) Close() error {
	return b.db.Close()
}

// MemoryKV implements KV with a plain map for tests and local tooling.
type MemoryKV struct {
	values map[string][]byte
}

// NewMemoryKV returns an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte)}
}

// Put stores the value under key.
func (m *MemoryKV) Put(key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

// Get returns the value stored under key, or nil when absent.
func (m *MemoryKV) Get(key string) ([]byte, error) {
	return m.values[key], nil
}
