// internal/acl/store.go
//
// Small query helpers for capability-based access control.
//
// Context
// -------
// The ACL model lives in the site database next to the options table:
//
//	users            (id PK, user_login, user_pass)
//	role             (id PK, name, enabled)
//	role_capability  (role_id, capability, granted)
//	user_role        (user_id, role_id)
//
// The REST server needs fast answers to two questions:
//  1. Which *role names* does user X have?           → `UserRoles()`
//  2. Does any of those roles grant capability C?    → `RoleAllowed()`
//
// These helpers accept a *sqlx.DB* and perform simple parameterised queries.
// They are thin; callers may wrap the results in their own per-request cache.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
// • Max line length 100 columns.
package acl

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// UserRoles returns the role *names* bound to userID.  Disabled roles are
// filtered out.
func UserRoles(ctx context.Context, db *sqlx.DB, userID int64) ([]string, error) {
	const q = `SELECT r.name
                 FROM user_role ur
                 JOIN role r ON r.id = ur.role_id
                WHERE ur.user_id = ? AND r.enabled = TRUE`

	roles := make([]string, 0, 4)
	if err := db.SelectContext(ctx, &roles, q, userID); err != nil {
		return nil, err
	}
	return roles, nil
}

// RoleAllowed reports whether *any* of the candidate roles grants capability.
// It executes one query using IN (? … ?).
//
// Empty roles slice returns false, nil.
func RoleAllowed(ctx context.Context, db *sqlx.DB, roles []string, capability string) (bool, error) {
	if len(roles) == 0 {
		return false, nil
	}

	q, args, err := sqlx.In(`SELECT 1
            FROM role_capability rc
            JOIN role r ON r.id = rc.role_id
           WHERE r.name IN (?)
             AND rc.capability = ?
             AND rc.granted = TRUE
           LIMIT 1`, roles, capability)
	if err != nil {
		return false, err
	}

	var hit int
	err = db.QueryRowxContext(ctx, db.Rebind(q), args...).Scan(&hit)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
