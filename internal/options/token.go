package options

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// tokenBytes is the amount of entropy in a generated token (32 hex chars).
const tokenBytes = 16

// EnsureToken returns the secret stored under key, generating and storing a
// random one when the key is unset or empty.  created reports whether a new
// token was written.  This is the install-time step; it never rotates an
// existing token.
func EnsureToken(ctx context.Context, s Store, key string) (token string, created bool, err error) {
	token, err = s.Get(ctx, key)
	switch {
	case err == nil && token != "":
		return token, false, nil
	case err != nil && !errors.Is(err, ErrNotFound):
		return "", false, err
	}

	token, err = NewToken()
	if err != nil {
		return "", false, err
	}
	if err := s.Set(ctx, key, token); err != nil {
		return "", false, fmt.Errorf("store token: %w", err)
	}
	return token, true, nil
}

// NewToken returns a random hex token.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
