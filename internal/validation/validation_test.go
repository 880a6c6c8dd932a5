package validation

import (
	"errors"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"anna@example.com", false},
		{"anna.berg@sub.example.co", false},
		{"", true},
		{"not-an-email", true},
		{"missing@tld", true},
		{"spaces in@example.com", true},
	}
	for _, tt := range tests {
		err := ValidateEmail(tt.email)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short"); err == nil {
		t.Error("expected error for short password")
	}
	if err := ValidatePassword("longenough1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateDateRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantErr    string
	}{
		{"valid range", "2026-06-01", "2026-06-05", ""},
		{"same day allowed", "2026-06-01", "2026-06-01", ""},
		{"end before start", "2026-06-05", "2026-06-01", "End date must be after start date."},
		{"missing start", "", "2026-06-01", "Please pick a start date."},
		{"garbage end", "2026-06-01", "tomorrow", "Please pick an end date."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDateRange(tt.start, tt.end)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRoomsCount(t *testing.T) {
	if err := ValidateRoomsCount(3, 5); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := ValidateRoomsCount(0, 5)
	if err == nil || err.Error() != "Rooms must be between 1 and 5." {
		t.Errorf("error = %v, want rooms bound message", err)
	}
	if err := ValidateRoomsCount(6, 5); err == nil {
		t.Error("expected error for rooms above total")
	}

	var ve *ValidationError
	if !errors.As(ValidateRoomsCount(0, 5), &ve) {
		t.Error("expected *ValidationError")
	} else if ve.Field != "rooms_count" {
		t.Errorf("field = %q, want rooms_count", ve.Field)
	}
}

func TestValidateRequiredText(t *testing.T) {
	if err := ValidateRequiredText("body", "  ", "Note"); err == nil {
		t.Error("expected error for blank text")
	}
	if err := ValidateRequiredText("body", "hello", "Note"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateTextLength(t *testing.T) {
	if err := ValidateTextLength("body", "abc", 3, "Note"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateTextLength("body", "abcd", 3, "Note"); err == nil {
		t.Error("expected error for over-length text")
	}
}
