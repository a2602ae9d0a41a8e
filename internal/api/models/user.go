package models

// User is the session-backed view of the authenticated user, populated by
// the auth middleware for every request behind RequireAuth.
type User struct {
	ID       uint
	Username string
	IsAdmin  bool
}
