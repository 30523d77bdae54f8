package usecase

import "errors"

// Sentinel errors returned by the services. Handlers map these onto HTTP
// status codes; anything else is a 500.
var (
	ErrMissingFields  = errors.New("all fields are required")
	ErrEmailTaken     = errors.New("user already exists")
	ErrUserNotFound   = errors.New("user not found")
	ErrBadCredentials = errors.New("invalid password")
	ErrNoIdentity     = errors.New("no authenticated user")
	ErrNoteNotFound   = errors.New("note not found")
	ErrNotOwner       = errors.New("you don't have access to this note")
)
