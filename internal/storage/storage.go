// Package storage provides the single durable slot the resume document is persisted to.
// Every backend stores one opaque JSON value under the fixed key StorageKey.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// StorageKey is the fixed name of the persisted document slot.
const StorageKey = "resume-storage"

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("no stored state")

// Storage is a single process-wide slot holding the serialized document.
type Storage interface {
	// Load returns the stored bytes, or ErrNotFound if the slot is empty
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the slot contents
	Save(ctx context.Context, data []byte) error
	// Clear empties the slot
	Clear(ctx context.Context) error
	// Close releases any resources held by the backend
	Close() error
}

// Backend names a storage implementation.
type Backend string

// Supported backends.
const (
	BackendFile     Backend = "file"
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
	BackendMemory   Backend = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend     Backend
	DataDir     string
	DatabaseURL string
	RedisAddr   string
	RedisPass   string
}

// Open constructs the backend named in opts.
func Open(ctx context.Context, opts Options) (Storage, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFileStorage(opts.DataDir)
	case BackendPostgres:
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL is required for the postgres backend")
		}
		return ConnectPostgres(ctx, opts.DatabaseURL)
	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("redis address is required for the redis backend")
		}
		return ConnectRedis(ctx, opts.RedisAddr, opts.RedisPass)
	case BackendMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
