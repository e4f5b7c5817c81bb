package session

import (
	"context"
	"errors"

	"github.com/yndnr/libros-go/internal/storage"
)

// KVStore keeps the token in an embedded KV engine under TokenKey.
type KVStore struct {
	engine storage.KVEngine
}

// NewKVStore wraps engine. The store owns the engine and closes it on Close.
func NewKVStore(engine storage.KVEngine) *KVStore {
	return &KVStore{engine: engine}
}

// SetToken stores the token.
func (s *KVStore) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.ClearToken(ctx)
	}
	return s.engine.Set(ctx, []byte(TokenKey), []byte(token))
}

// Token returns the stored token.
func (s *KVStore) Token(ctx context.Context) (string, bool, error) {
	value, err := s.engine.Get(ctx, []byte(TokenKey))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(value), len(value) > 0, nil
}

// ClearToken deletes the token key.
func (s *KVStore) ClearToken(ctx context.Context) error {
	return s.engine.Delete(ctx, []byte(TokenKey))
}

// Close closes the underlying engine.
func (s *KVStore) Close() error {
	return s.engine.Close()
}
