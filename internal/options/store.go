// Package options reads and writes durable plugin settings.
//
// Settings are flat string key/value pairs, the same shape the plugin has
// always kept in its options table.  Three Stores are provided:
//
//	SQLStore   – MySQL/MariaDB table, read-write.
//	VaultStore – Vault KV-v2 secret, read-only.
//	Cached     – TTL + LRU decorator around any Store.
//
// Callers treat ErrNotFound as "unset".
package options

import (
	"context"
	"errors"
)

// Well-known option keys.
const (
	KeyToken   = "doofinder_for_wp_token"
	KeyAPIHost = "doofinder_for_wp_api_host"
	KeyAPIKey  = "doofinder_for_wp_api_key"
	KeyEnabled = "doofinder_for_wp_enabled"
)

var (
	// ErrNotFound means the key has never been stored.
	ErrNotFound = errors.New("options: key not found")

	// ErrReadOnly is returned by Set on read-only backends.
	ErrReadOnly = errors.New("options: store is read-only")
)

// Store is a durable key/value settings backend.  Implementations must be
// safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
