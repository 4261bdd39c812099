package options

import (
	"context"
	"errors"
	"time"

	"github.com/yanizio/doofinder-wp/internal/vault"
)

// KVReader is the slice of *vault.Client used here.
type KVReader interface {
	GetKV(ctx context.Context, secretPath, key string, ttl time.Duration) (string, error)
}

// VaultStore reads option values from one KV-v2 secret, one field per key.
// Operators provision the secret out of band, so Set is unsupported.
type VaultStore struct {
	kv   KVReader
	path string
	ttl  time.Duration
}

// NewVaultStore reads keys from the secret at path (e.g. "secret/doofinder").
func NewVaultStore(kv KVReader, path string, ttl time.Duration) *VaultStore {
	return &VaultStore{kv: kv, path: path, ttl: ttl}
}

// Get returns the field named key.
func (s *VaultStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.kv.GetKV(ctx, s.path, key, s.ttl)
	if errors.Is(err, vault.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	return val, err
}

// Set always fails with ErrReadOnly.
func (s *VaultStore) Set(context.Context, string, string) error { return ErrReadOnly }
