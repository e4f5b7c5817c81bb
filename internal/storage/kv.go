package storage

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrClosed      = errors.New("kv engine closed")
)

// KVEngine defines the interface for embedded key-value storage.
//
// Implementations must be safe for concurrent use and must keep data
// across process restarts.
type KVEngine interface {
	// Get retrieves a value by key.
	// Returns ErrKeyNotFound if key doesn't exist.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set stores a key-value pair.
	Set(ctx context.Context, key, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key []byte) error

	// Close gracefully shuts down the engine.
	Close() error
}

// KVConfig configures an embedded KV engine.
type KVConfig struct {
	// Dir is the storage directory.
	Dir string

	// SyncWrites enables fsync after each write.
	// Default: true (token writes are rare and must survive a crash)
	SyncWrites bool

	// ValueLogFileSize is the max value log file size in bytes.
	// Default: 1MB
	ValueLogFileSize int64

	// InMemory keeps all data in memory (tests only).
	InMemory bool
}

// DefaultKVConfig returns the default KV configuration.
func DefaultKVConfig(dir string) KVConfig {
	return KVConfig{
		Dir:              dir,
		SyncWrites:       true,
		ValueLogFileSize: 1 << 20,
	}
}
