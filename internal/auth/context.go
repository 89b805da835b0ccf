// Package auth carries the authenticated-user context consumed by the
// checkout flow. Authentication itself happens elsewhere; this is an
// explicit input, not a global.
package auth

// UserContext identifies the current shopper.
type UserContext struct {
	UserID        int64
	Authenticated bool
}

// Anonymous is the context used when no user is signed in.
var Anonymous = UserContext{}
