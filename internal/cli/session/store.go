package session

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yndnr/libros-go/internal/storage"
)

// TokenKey is the fixed key the token is stored under.
const TokenKey = "token"

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Store holds at most one session token.
//
// Token reports (value, true, nil) when a token is present and
// ("", false, nil) when none is stored. ClearToken on an empty store
// is a no-op.
type Store interface {
	SetToken(ctx context.Context, token string) error
	Token(ctx context.Context) (string, bool, error)
	ClearToken(ctx context.Context) error
	Close() error
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	set   bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SetToken stores the token, replacing any previous one.
func (s *MemoryStore) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = token != ""
	return nil
}

// Token returns the stored token.
func (s *MemoryStore) Token(ctx context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.set, nil
}

// ClearToken removes the stored token.
func (s *MemoryStore) ClearToken(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

// Options configures Open.
type Options struct {
	// Backend is one of BackendFile, BackendBadger, BackendMemory.
	Backend string
	// Path is the token file for the file backend and the database
	// directory for the badger backend.
	Path   string
	Logger *slog.Logger
}

// Open creates the Store selected by opts.Backend.
func Open(opts Options) (Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch strings.ToLower(opts.Backend) {
	case BackendMemory:
		return NewMemoryStore(), nil
	case "", BackendFile:
		if opts.Path == "" {
			return nil, fmt.Errorf("session: file backend requires a path")
		}
		return NewFileStore(opts.Path), nil
	case BackendBadger:
		if opts.Path == "" {
			return nil, fmt.Errorf("session: badger backend requires a path")
		}
		engine, err := storage.NewBadgerEngine(storage.DefaultKVConfig(filepath.Clean(opts.Path)), logger)
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		return NewKVStore(engine), nil
	default:
		return nil, fmt.Errorf("session: unknown backend %q", opts.Backend)
	}
}
