// Package validation holds form-input checks shared by the handlers.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ValidationError carries a field name and a message fit for display.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks that the address looks plausible.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "Email is required."}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: "Please enter a valid email address."}
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return &ValidationError{Field: "password", Message: "Password must be at least 8 characters."}
	}
	return nil
}

// ValidateDateRange checks both dates parse as YYYY-MM-DD and that the
// end does not precede the start. Same-day stays are allowed.
func ValidateDateRange(start, end string) error {
	if _, err := time.Parse("2006-01-02", start); err != nil {
		return &ValidationError{Field: "start_date", Message: "Please pick a start date."}
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		return &ValidationError{Field: "end_date", Message: "Please pick an end date."}
	}
	if end < start {
		return &ValidationError{Field: "end_date", Message: "End date must be after start date."}
	}
	return nil
}

// ValidateRoomsCount checks the requested room count against the house total.
func ValidateRoomsCount(rooms, totalRooms int) error {
	if rooms < 1 || rooms > totalRooms {
		return &ValidationError{
			Field:   "rooms_count",
			Message: fmt.Sprintf("Rooms must be between 1 and %d.", totalRooms),
		}
	}
	return nil
}

// ValidateRequiredText trims the value and rejects empty input.
func ValidateRequiredText(field, value, label string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: label + " is required."}
	}
	return nil
}

// ValidateTextLength rejects values longer than max runes.
func ValidateTextLength(field, value string, max int, label string) error {
	if len([]rune(value)) > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be %d characters or fewer.", label, max),
		}
	}
	return nil
}
