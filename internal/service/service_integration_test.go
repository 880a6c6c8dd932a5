package service

import (
	"errors"
	"path/filepath"
	"testing"

	"sunescape/internal/database"
	"sunescape/internal/models"
	"sunescape/internal/repository"
)

type serviceEnv struct {
	users        *repository.UserRepository
	reservations *repository.ReservationRepository
	inviteRepo   *repository.InviteRepository
	requestRepo  *repository.JoinRequestRepository
	invites      *InviteService
	requests     *JoinRequestService
}

// newServiceEnv wires the services over a migrated SQLite database in a
// temp dir, with email and push delivery disabled
func newServiceEnv(t *testing.T) *serviceEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	users := repository.NewUserRepository(db)
	reservations := repository.NewReservationRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	requestRepo := repository.NewJoinRequestRepository(db)
	settings := repository.NewSettingsRepository(db)

	email, err := NewEmailService("", "", "", "SunEscape", "https://house.example.com")
	if err != nil {
		t.Fatalf("Failed to build disabled email service: %v", err)
	}
	notifier := NewNotifier(users, email, NewPushService("", "", ""))

	return &serviceEnv{
		users:        users,
		reservations: reservations,
		inviteRepo:   inviteRepo,
		requestRepo:  requestRepo,
		invites:      NewInviteService(inviteRepo, reservations, settings, users, notifier),
		requests:     NewJoinRequestService(requestRepo, reservations, settings, users, notifier),
	}
}

func (e *serviceEnv) mustUser(t *testing.T, email, firstName string) *models.User {
	t.Helper()
	u, err := e.users.CreateUser(email, "hash", firstName, "")
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}
	return u
}

func (e *serviceEnv) mustReserve(t *testing.T, userID int64, name, start, end string, rooms int) *models.Reservation {
	t.Helper()
	res := &models.Reservation{
		UserID:     userID,
		Name:       name,
		StartDate:  start,
		EndDate:    end,
		RoomsCount: rooms,
	}
	if err := e.reservations.CreateReservation(res); err != nil {
		t.Fatalf("Failed to create reservation: %v", err)
	}
	return res
}

func TestJoinRequestApproveAddsGuest(t *testing.T) {
	env := newServiceEnv(t)

	owner := env.mustUser(t, "owner@example.com", "Olive")
	requester := env.mustUser(t, "guest@example.com", "Gus")
	res := env.mustReserve(t, owner.ID, "Harvest days", "2026-09-01", "2026-09-04", 3)

	req, err := env.requests.Request(requester, res.ID, 2, "Two of us?")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if err := env.requests.Approve(owner, req.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	settled, err := env.requestRepo.GetJoinRequest(req.ID)
	if err != nil || settled == nil {
		t.Fatalf("GetJoinRequest failed: %v", err)
	}
	if settled.Status != models.JoinApproved {
		t.Errorf("Status = %q, want approved", settled.Status)
	}

	// The requester lands on the guest list with the rooms they asked for
	guests, err := env.reservations.ListGuests(res.ID)
	if err != nil {
		t.Fatalf("ListGuests failed: %v", err)
	}
	if len(guests) != 1 {
		t.Fatalf("Got %d guests after approval, want 1", len(guests))
	}
	if !guests[0].UserID.Valid || guests[0].UserID.Int64 != requester.ID {
		t.Errorf("Guest linked to user %+v, want %d", guests[0].UserID, requester.ID)
	}
	if guests[0].Count != 2 {
		t.Errorf("Guest count = %d, want 2", guests[0].Count)
	}

	// A settled request cannot be decided twice
	if err := env.requests.Approve(owner, req.ID); !errors.Is(err, ErrAlreadySettled) {
		t.Errorf("Second approval: got %v, want ErrAlreadySettled", err)
	}
}

func TestJoinRequestDenyAddsNoGuest(t *testing.T) {
	env := newServiceEnv(t)

	owner := env.mustUser(t, "owner@example.com", "Olive")
	requester := env.mustUser(t, "guest@example.com", "Gus")
	stranger := env.mustUser(t, "stranger@example.com", "Sam")
	res := env.mustReserve(t, owner.ID, "Harvest days", "2026-09-01", "2026-09-04", 3)

	req, err := env.requests.Request(requester, res.ID, 1, "")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	// Only the owner or an admin may settle
	if err := env.requests.Deny(stranger, req.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Stranger deny: got %v, want ErrForbidden", err)
	}

	if err := env.requests.Deny(owner, req.ID); err != nil {
		t.Fatalf("Deny failed: %v", err)
	}

	settled, err := env.requestRepo.GetJoinRequest(req.ID)
	if err != nil || settled == nil {
		t.Fatalf("GetJoinRequest failed: %v", err)
	}
	if settled.Status != models.JoinDenied {
		t.Errorf("Status = %q, want denied", settled.Status)
	}

	guests, err := env.reservations.ListGuests(res.ID)
	if err != nil {
		t.Fatalf("ListGuests failed: %v", err)
	}
	if len(guests) != 0 {
		t.Errorf("Denied request produced %d guests, want none", len(guests))
	}
}

func TestInviteAcceptNamesStayAfterResponder(t *testing.T) {
	env := newServiceEnv(t)

	creator := env.mustUser(t, "creator@example.com", "Cleo")
	responder := env.mustUser(t, "responder@example.com", "Remy")
	original := env.mustReserve(t, creator.ID, "Midsummer week", "2026-06-19", "2026-06-21", 2)

	invite, err := env.inviteRepo.CreateInvite(original.ID, creator.ID, "Come along!")
	if err != nil {
		t.Fatalf("Failed to create invite: %v", err)
	}

	accepted, err := env.invites.Accept(responder, invite.ID, 1)
	if err != nil {
		t.Fatalf("Accept failed: %v", err)
	}

	// The new stay belongs to the responder and carries their name, so
	// it reads apart from the creator's on the reservation list
	if accepted.Name != "Remy" {
		t.Errorf("Accepted stay named %q, want Remy", accepted.Name)
	}
	if accepted.UserID != responder.ID {
		t.Errorf("Accepted stay owned by %d, want %d", accepted.UserID, responder.ID)
	}
	if accepted.StartDate != original.StartDate || accepted.EndDate != original.EndDate {
		t.Errorf("Accepted stay dates %s to %s, want the invite's", accepted.StartDate, accepted.EndDate)
	}

	stored, err := env.reservations.GetReservation(accepted.ID)
	if err != nil || stored == nil {
		t.Fatalf("GetReservation failed: %v", err)
	}
	if stored.Name != "Remy" || stored.RoomsCount != 1 {
		t.Errorf("Stored stay = %+v, want Remy with 1 room", stored)
	}
}
