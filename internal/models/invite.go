package models

import "time"

// Invite response statuses
const (
	InviteAccepted = "accepted"
	InviteDeclined = "declined"
)

// Invite is a broadcast sent alongside a reservation asking the rest of
// the household whether they want to come along. At most one invite
// exists per reservation.
type Invite struct {
	ID            int64
	ReservationID int64
	CreatedBy     int64
	Message       string
	CreatedAt     time.Time
}

// InviteResponse records one member's answer to an invite. The pair
// (InviteID, UserID) is unique; answering again overwrites the old row.
type InviteResponse struct {
	InviteID    int64
	UserID      int64
	Status      string
	RoomsCount  int
	RespondedAt time.Time
}

// InboxInvite is an invite as shown in a member's inbox, enriched with
// the reservation it belongs to and a tally of acceptances so far.
type InboxInvite struct {
	Invite
	ReservationName string
	StartDate       string
	EndDate         string
	RoomsCount      int
	CreatorName     string
	AcceptCount     int
}
