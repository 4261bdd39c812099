// Package auth carries the authenticated WordPress user through a request.
//
// Basic authenticates the Authorization header and stores the resulting
// user ID with WithUser.  The ACL authorizer reads it back with UserID when
// the REST server asks for a base permission decision.  A request with no
// stored user is anonymous: the authorizer denies it, and only the endpoint
// bypass or a route's own permission callback can admit it.
package auth

import "context"

type userKey struct{}

// WithUser returns ctx carrying userID.
func WithUser(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserID returns the user stored by WithUser.  ok is false for anonymous
// requests.
func UserID(ctx context.Context) (id int64, ok bool) {
	id, ok = ctx.Value(userKey{}).(int64)
	return id, ok
}

// Anonymous reports whether no user is attached to ctx.
func Anonymous(ctx context.Context) bool {
	_, ok := UserID(ctx)
	return !ok
}
