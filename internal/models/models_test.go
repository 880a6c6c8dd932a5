package models

import (
	"database/sql"
	"testing"
	"time"
)

func TestUserDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{
			name: "first name wins",
			user: User{
				Email:     "anna@example.com",
				FirstName: sql.NullString{String: "Anna", Valid: true},
				FullName:  sql.NullString{String: "Anna Berg", Valid: true},
			},
			want: "Anna",
		},
		{
			name: "falls back to first word of full name",
			user: User{
				Email:    "anna@example.com",
				FullName: sql.NullString{String: "Anna Berg", Valid: true},
			},
			want: "Anna",
		},
		{
			name: "falls back to email local part",
			user: User{Email: "anna.berg@example.com"},
			want: "anna.berg",
		},
		{
			name: "generic fallback",
			user: User{Email: ""},
			want: "Guest",
		},
		{
			name: "whitespace first name is skipped",
			user: User{
				Email:     "anna@example.com",
				FirstName: sql.NullString{String: "   ", Valid: true},
			},
			want: "anna",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionIsExpired(t *testing.T) {
	live := Session{ExpiresAt: time.Now().Add(time.Hour)}
	if live.IsExpired() {
		t.Error("session expiring in an hour reported expired")
	}
	dead := Session{ExpiresAt: time.Now().Add(-time.Minute)}
	if !dead.IsExpired() {
		t.Error("session expired a minute ago reported live")
	}
}

func TestReservationEditableBy(t *testing.T) {
	r := Reservation{ID: 1, UserID: 10}
	owner := &User{ID: 10}
	admin := &User{ID: 20, IsAdmin: true}
	other := &User{ID: 30}

	if !r.EditableBy(owner) {
		t.Error("owner cannot edit own reservation")
	}
	if !r.EditableBy(admin) {
		t.Error("admin cannot edit reservation")
	}
	if r.EditableBy(other) {
		t.Error("unrelated user can edit reservation")
	}
	if r.EditableBy(nil) {
		t.Error("nil user can edit reservation")
	}
}

func TestReservationCoversInclusive(t *testing.T) {
	r := Reservation{StartDate: "2026-06-01", EndDate: "2026-06-03"}
	if !r.Covers("2026-06-01") || !r.Covers("2026-06-03") {
		t.Error("range bounds should be covered")
	}
	if r.Covers("2026-05-31") || r.Covers("2026-06-04") {
		t.Error("days outside range should not be covered")
	}
}

func TestGuestDisplayLabel(t *testing.T) {
	linked := Guest{UserID: sql.NullInt64{Int64: 5, Valid: true}, UserName: "Anna"}
	if got := linked.DisplayLabel(); got != "Anna" {
		t.Errorf("linked guest label = %q, want Anna", got)
	}
	freeText := Guest{Name: sql.NullString{String: "Cousin Olle", Valid: true}}
	if got := freeText.DisplayLabel(); got != "Cousin Olle" {
		t.Errorf("free-text guest label = %q, want Cousin Olle", got)
	}
	empty := Guest{}
	if got := empty.DisplayLabel(); got != "Guest" {
		t.Errorf("empty guest label = %q, want Guest", got)
	}
}

func TestGuestAndNoteRemovableBy(t *testing.T) {
	creator := &User{ID: 1}
	admin := &User{ID: 2, IsAdmin: true}
	other := &User{ID: 3}

	g := Guest{CreatedBy: 1}
	if !g.RemovableBy(creator) || !g.RemovableBy(admin) {
		t.Error("creator and admin should be able to remove guest")
	}
	if g.RemovableBy(other) || g.RemovableBy(nil) {
		t.Error("others should not be able to remove guest")
	}

	n := Note{CreatedBy: 1}
	if !n.RemovableBy(creator) || !n.RemovableBy(admin) {
		t.Error("author and admin should be able to remove note")
	}
	if n.RemovableBy(other) {
		t.Error("others should not be able to remove note")
	}
}

func TestChecklistItemEditableBy(t *testing.T) {
	creator := &User{ID: 1}
	admin := &User{ID: 2, IsAdmin: true}
	other := &User{ID: 3}

	item := ChecklistItem{CreatedBy: 1}
	if !item.EditableBy(creator) || !item.EditableBy(admin) {
		t.Error("creator and admin should be able to edit item")
	}
	if item.EditableBy(other) || item.EditableBy(nil) {
		t.Error("others should not be able to edit item")
	}
}

func TestJoinRequestIsPending(t *testing.T) {
	if !(&JoinRequest{Status: JoinPending}).IsPending() {
		t.Error("pending request not reported pending")
	}
	if (&JoinRequest{Status: JoinApproved}).IsPending() {
		t.Error("approved request reported pending")
	}
}
