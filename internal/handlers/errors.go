package handlers

import (
	"errors"
	"log"
	"net/http"

	"sunescape/internal/service"
	"sunescape/internal/validation"
)

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	http.Error(w, userMsg, status)
}

// statusForError maps service and validation errors to HTTP statuses.
// Anything unrecognised is a 500.
func statusForError(err error) int {
	var ve *validation.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrOwnReservation),
		errors.Is(err, service.ErrAlreadySettled),
		errors.Is(err, service.ErrDuplicateJoinRequest):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// userMessageFor returns a message safe to show for the error. Internal
// errors collapse to a generic line.
func userMessageFor(err error) string {
	if statusForError(err) == http.StatusInternalServerError {
		return "Something went wrong"
	}
	return err.Error()
}
