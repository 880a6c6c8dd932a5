package models

import "time"

// Join request statuses
const (
	JoinPending  = "pending"
	JoinApproved = "approved"
	JoinDenied   = "denied"
)

// JoinRequest is a member asking the owner of an existing reservation to
// let them join the stay with some number of rooms.
type JoinRequest struct {
	ID            int64
	ReservationID int64
	UserID        int64
	RoomsNeeded   int
	Message       string
	Status        string
	CreatedAt     time.Time

	// Display fields populated on reads
	RequesterName   string
	RequesterEmail  string
	ReservationName string
	StartDate       string
	EndDate         string
}

// IsPending reports whether the request still awaits a decision.
func (j *JoinRequest) IsPending() bool {
	return j.Status == JoinPending
}
