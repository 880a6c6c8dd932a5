package service

import "errors"

// Sentinel errors shared by the services. Handlers translate these into
// status codes and flash messages.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("you are not allowed to do that")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAdmin           = errors.New("admin access required")
	ErrOwnReservation     = errors.New("this is your own reservation")
	ErrAlreadySettled     = errors.New("this request has already been settled")
)
