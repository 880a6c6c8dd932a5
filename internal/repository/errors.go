package repository

import "errors"

// Sentinel errors surfaced by repositories when a database constraint
// maps to a user-facing condition.
var (
	ErrEmailTaken           = errors.New("an account with that email already exists")
	ErrDuplicateJoinRequest = errors.New("a pending request for this reservation already exists")
)
