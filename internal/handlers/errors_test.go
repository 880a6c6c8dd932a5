package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"sunescape/internal/service"
	"sunescape/internal/validation"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &validation.ValidationError{Field: "email", Message: "bad"}, http.StatusBadRequest},
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"not admin", service.ErrNotAdmin, http.StatusForbidden},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"own reservation", service.ErrOwnReservation, http.StatusConflict},
		{"already settled", service.ErrAlreadySettled, http.StatusConflict},
		{"duplicate request", service.ErrDuplicateJoinRequest, http.StatusConflict},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForError(tt.err); got != tt.want {
				t.Errorf("statusForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestUserMessageForHidesInternalErrors(t *testing.T) {
	if got := userMessageFor(errors.New("pq: connection refused")); got != "Something went wrong" {
		t.Errorf("internal error leaked: %q", got)
	}
	if got := userMessageFor(service.ErrDuplicateJoinRequest); got != "You already sent a request for this reservation." {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestMonthFromQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/dashboard?year=2026&month=8", nil)
	year, month := monthFromQuery(r)
	if year != 2026 || int(month) != 8 {
		t.Errorf("got %d-%d, want 2026-8", year, month)
	}

	// Out-of-range values fall back to the current month
	r = httptest.NewRequest(http.MethodGet, "/dashboard?year=10&month=13", nil)
	year, month = monthFromQuery(r)
	if year == 10 || int(month) == 13 {
		t.Errorf("out-of-range values accepted: %d-%d", year, month)
	}
}

func TestListKind(t *testing.T) {
	mux := http.NewServeMux()
	var got string
	var ok bool
	mux.HandleFunc("POST /lists/{kind}/items", func(w http.ResponseWriter, r *http.Request) {
		got, ok = listKind(r)
	})

	for _, tt := range []struct {
		kind   string
		wantOK bool
	}{
		{"groceries", true},
		{"todos", true},
		{"chores", false},
	} {
		mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/lists/"+tt.kind+"/items", nil))
		if ok != tt.wantOK {
			t.Errorf("listKind(%q) ok = %v, want %v", tt.kind, ok, tt.wantOK)
		}
		if tt.wantOK && got != tt.kind {
			t.Errorf("listKind(%q) = %q", tt.kind, got)
		}
	}
}
