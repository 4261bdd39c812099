package acl

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/yanizio/doofinder-wp/internal/auth"
	"github.com/yanizio/doofinder-wp/internal/rest"
)

// ErrBadCredentials is returned by Users.Verify for an unknown login or a
// wrong password.  The two cases are not distinguished.
var ErrBadCredentials = errors.New("acl: bad credentials")

// Authorizer answers the REST server's base permission question from the
// role tables.
type Authorizer struct {
	DB *sqlx.DB
}

var _ rest.Authorizer = Authorizer{}

// Allowed reports whether the user in ctx holds capability.  Anonymous
// requests are never allowed.
func (a Authorizer) Allowed(ctx context.Context, capability string) (bool, error) {
	if auth.Anonymous(ctx) {
		return false, nil
	}
	uid, _ := auth.UserID(ctx)
	roles, err := UserRoles(ctx, a.DB, uid)
	if err != nil {
		return false, fmt.Errorf("acl: roles for user %d: %w", uid, err)
	}
	return RoleAllowed(ctx, a.DB, roles, capability)
}

// Users verifies login credentials against the users table.
type Users struct {
	DB *sqlx.DB
}

var _ auth.Verifier = Users{}

// Verify returns the user ID for login when password matches its bcrypt
// hash.
func (u Users) Verify(ctx context.Context, login, password string) (int64, error) {
	const q = `SELECT id, user_pass FROM users WHERE user_login = ? LIMIT 1`

	var row struct {
		ID   int64  `db:"id"`
		Hash string `db:"user_pass"`
	}
	err := u.DB.GetContext(ctx, &row, q, login)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrBadCredentials
	}
	if err != nil {
		return 0, fmt.Errorf("acl: lookup %q: %w", login, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(row.Hash), []byte(password)) != nil {
		return 0, ErrBadCredentials
	}
	return row.ID, nil
}
