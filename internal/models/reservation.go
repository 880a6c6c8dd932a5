package models

import (
	"database/sql"
	"time"
)

// Reservation is a stay at the house: an inclusive date range and the
// number of rooms it holds. Dates are ISO strings (YYYY-MM-DD).
type Reservation struct {
	ID         int64
	UserID     int64
	Name       string
	StartDate  string
	EndDate    string
	RoomsCount int
	// Occasion and GuestsText are free-form labels ("Midsummer",
	// "Sara + kids"); structured guests live in reservation_guests.
	Occasion   string
	GuestsText string
	CreatedAt  time.Time

	// Owner display name, populated on list queries
	OwnerName string
}

// EditableBy reports whether the given user may modify or delete the
// reservation: the owner can, and so can an admin.
func (r *Reservation) EditableBy(u *User) bool {
	if u == nil {
		return false
	}
	return r.UserID == u.ID || u.IsAdmin
}

// Covers reports whether day falls within the reservation's inclusive range.
func (r *Reservation) Covers(day string) bool {
	return r.StartDate <= day && day <= r.EndDate
}

// Guest is a person attached to a reservation. A guest may be linked to a
// household user or be a free-text name; exactly one of the two is set.
type Guest struct {
	ID            int64
	ReservationID int64
	UserID        sql.NullInt64
	Name          sql.NullString
	Count         int
	CreatedBy     int64
	CreatedAt     time.Time

	// Display fields populated on reads
	UserName    string
	CreatorName string
}

// DisplayLabel returns the guest's visible name: the linked user's display
// name when present, otherwise the free-text name.
func (g *Guest) DisplayLabel() string {
	if g.UserID.Valid && g.UserName != "" {
		return g.UserName
	}
	if g.Name.Valid {
		return g.Name.String
	}
	return "Guest"
}

// RemovableBy reports whether the user may remove this guest entry:
// whoever added it, or an admin.
func (g *Guest) RemovableBy(u *User) bool {
	if u == nil {
		return false
	}
	return g.CreatedBy == u.ID || u.IsAdmin
}

// Note is a comment left on a reservation.
type Note struct {
	ID            int64
	ReservationID int64
	Body          string
	CreatedBy     int64
	CreatedAt     time.Time

	AuthorName string
}

// RemovableBy reports whether the user may delete the note: its author
// or an admin.
func (n *Note) RemovableBy(u *User) bool {
	if u == nil {
		return false
	}
	return n.CreatedBy == u.ID || u.IsAdmin
}
