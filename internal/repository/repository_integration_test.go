package repository

import (
	"errors"
	"path/filepath"
	"testing"

	"sunescape/internal/database"
	"sunescape/internal/models"
)

// openTestDB spins up a migrated SQLite database in a temp dir
func openTestDB(t *testing.T) *database.DB {
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
	return db
}

func mustReserve(t *testing.T, repo *ReservationRepository, userID int64, name, start, end string, rooms int) *models.Reservation {
	t.Helper()
	res := &models.Reservation{
		UserID:     userID,
		Name:       name,
		StartDate:  start,
		EndDate:    end,
		RoomsCount: rooms,
	}
	if err := repo.CreateReservation(res); err != nil {
		t.Fatalf("Failed to create reservation: %v", err)
	}
	return res
}

func TestUserRepositoryLifecycle(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)

	first, err := users.CreateUser("alice@example.com", "hash1", "Alice", "Alice Alvarez")
	if err != nil {
		t.Fatalf("Failed to create first user: %v", err)
	}
	if !first.IsAdmin {
		t.Error("First user should be an admin")
	}

	second, err := users.CreateUser("bob@example.com", "hash2", "Bob", "")
	if err != nil {
		t.Fatalf("Failed to create second user: %v", err)
	}
	if second.IsAdmin {
		t.Error("Second user should not be an admin")
	}

	if _, err := users.CreateUser("alice@example.com", "hash3", "", ""); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Duplicate email: got %v, want ErrEmailTaken", err)
	}

	found, err := users.GetUserByEmail("bob@example.com")
	if err != nil || found == nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if found.ID != second.ID {
		t.Errorf("GetUserByEmail returned user %d, want %d", found.ID, second.ID)
	}

	missing, err := users.GetUserByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail errored on missing user: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for unknown email")
	}
}

func TestReservationOverlapQuery(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	reservations := NewReservationRepository(db)

	owner, err := users.CreateUser("owner@example.com", "hash", "Olive", "")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	mustReserve(t, reservations, owner.ID, "June week", "2026-06-01", "2026-06-05", 2)
	mustReserve(t, reservations, owner.ID, "July hop", "2026-07-10", "2026-07-12", 1)

	// A window touching only the June stay, boundary day included
	overlapping, err := reservations.ListReservationsOverlapping("2026-06-05", "2026-06-20")
	if err != nil {
		t.Fatalf("Overlap query failed: %v", err)
	}
	if len(overlapping) != 1 {
		t.Fatalf("Got %d overlapping reservations, want 1", len(overlapping))
	}
	if overlapping[0].StartDate != "2026-06-01" {
		t.Errorf("Unexpected reservation: %+v", overlapping[0])
	}
	if overlapping[0].OwnerName == "" {
		t.Error("Owner name not joined in")
	}
}

func TestInviteResponsesUpsert(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	reservations := NewReservationRepository(db)
	invites := NewInviteRepository(db)

	creator, _ := users.CreateUser("creator@example.com", "hash", "Cleo", "")
	responder, err := users.CreateUser("responder@example.com", "hash", "Remy", "")
	if err != nil {
		t.Fatalf("Failed to create users: %v", err)
	}

	res := mustReserve(t, reservations, creator.ID, "August weekend", "2026-08-01", "2026-08-03", 2)
	invite, err := invites.CreateInvite(res.ID, creator.ID, "Come along!")
	if err != nil {
		t.Fatalf("Failed to create invite: %v", err)
	}

	// The invite shows in the responder's inbox but not the creator's
	inbox, err := invites.ListInbox(responder.ID)
	if err != nil {
		t.Fatalf("ListInbox failed: %v", err)
	}
	if len(inbox) != 1 || inbox[0].ID != invite.ID {
		t.Fatalf("Responder inbox: got %d invites, want the new one", len(inbox))
	}
	if inbox[0].CreatorName != "Cleo" {
		t.Errorf("CreatorName = %q, want Cleo", inbox[0].CreatorName)
	}
	if inbox[0].ReservationName != "August weekend" || inbox[0].Message != "Come along!" {
		t.Errorf("Inbox invite missing reservation name or message: %+v", inbox[0])
	}
	creatorInbox, _ := invites.ListInbox(creator.ID)
	if len(creatorInbox) != 0 {
		t.Error("Creator should not see their own invite")
	}

	// Decline, then change to accept; the upsert keeps one row
	if err := invites.UpsertResponse(invite.ID, responder.ID, models.InviteDeclined, 0); err != nil {
		t.Fatalf("Decline upsert failed: %v", err)
	}
	if err := invites.UpsertResponse(invite.ID, responder.ID, models.InviteAccepted, 2); err != nil {
		t.Fatalf("Accept upsert failed: %v", err)
	}

	responses, err := invites.ListResponses(invite.ID)
	if err != nil {
		t.Fatalf("ListResponses failed: %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("Got %d responses, want 1", len(responses))
	}
	if responses[0].Status != models.InviteAccepted || responses[0].RoomsCount != 2 {
		t.Errorf("Response = %+v, want accepted with 2 rooms", responses[0])
	}

	// Answered invites leave the inbox
	inbox, _ = invites.ListInbox(responder.ID)
	if len(inbox) != 0 {
		t.Error("Answered invite still in inbox")
	}
}

func TestInviteInboxNewestFirst(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	reservations := NewReservationRepository(db)
	invites := NewInviteRepository(db)

	creator, _ := users.CreateUser("creator@example.com", "hash", "Cleo", "")
	member, err := users.CreateUser("member@example.com", "hash", "Remy", "")
	if err != nil {
		t.Fatalf("Failed to create users: %v", err)
	}

	spring := mustReserve(t, reservations, creator.ID, "Spring stay", "2026-04-01", "2026-04-03", 1)
	autumn := mustReserve(t, reservations, creator.ID, "Autumn stay", "2026-10-01", "2026-10-03", 1)

	first, err := invites.CreateInvite(spring.ID, creator.ID, "")
	if err != nil {
		t.Fatalf("Failed to create first invite: %v", err)
	}
	second, err := invites.CreateInvite(autumn.ID, creator.ID, "")
	if err != nil {
		t.Fatalf("Failed to create second invite: %v", err)
	}

	inbox, err := invites.ListInbox(member.ID)
	if err != nil {
		t.Fatalf("ListInbox failed: %v", err)
	}
	if len(inbox) != 2 {
		t.Fatalf("Got %d invites, want 2", len(inbox))
	}
	// The latest invite leads even though its stay starts later
	if inbox[0].ID != second.ID || inbox[1].ID != first.ID {
		t.Errorf("Inbox order = [%d, %d], want newest invite %d first", inbox[0].ID, inbox[1].ID, second.ID)
	}
}

func TestJoinRequestDuplicateAndSettle(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	reservations := NewReservationRepository(db)
	requests := NewJoinRequestRepository(db)

	owner, _ := users.CreateUser("owner@example.com", "hash", "Olive", "")
	requester, err := users.CreateUser("guest@example.com", "hash", "Gus", "")
	if err != nil {
		t.Fatalf("Failed to create users: %v", err)
	}

	res := mustReserve(t, reservations, owner.ID, "Harvest days", "2026-09-01", "2026-09-04", 3)

	req, err := requests.CreateJoinRequest(res.ID, requester.ID, 1, "Room for one more?")
	if err != nil {
		t.Fatalf("Failed to create join request: %v", err)
	}

	// Only one pending request per member per reservation
	if _, err := requests.CreateJoinRequest(res.ID, requester.ID, 2, ""); !errors.Is(err, ErrDuplicateJoinRequest) {
		t.Errorf("Second pending request: got %v, want ErrDuplicateJoinRequest", err)
	}

	pending, err := requests.ListPendingForOwner(owner.ID)
	if err != nil {
		t.Fatalf("ListPendingForOwner failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != req.ID {
		t.Fatalf("Owner pending list: got %d requests", len(pending))
	}
	if pending[0].RequesterName != "Gus" {
		t.Errorf("RequesterName = %q, want Gus", pending[0].RequesterName)
	}
	if pending[0].Message != "Room for one more?" {
		t.Errorf("Message = %q, want the request text", pending[0].Message)
	}

	// Once settled, a fresh request is allowed again
	if err := requests.UpdateStatus(req.ID, models.JoinDenied); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if _, err := requests.CreateJoinRequest(res.ID, requester.ID, 2, ""); err != nil {
		t.Errorf("Request after settlement should succeed, got %v", err)
	}

	mine, err := requests.ListByUser(requester.ID)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("Requester history: got %d, want 2", len(mine))
	}
}

func TestGuestAndNoteOrdering(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	reservations := NewReservationRepository(db)

	owner, err := users.CreateUser("owner@example.com", "hash", "Olive", "")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	res := mustReserve(t, reservations, owner.ID, "October escape", "2026-10-01", "2026-10-03", 1)

	for _, name := range []string{"Aunt June", "Cousin Pat"} {
		g := &models.Guest{ReservationID: res.ID, Count: 1, CreatedBy: owner.ID}
		g.Name.String = name
		g.Name.Valid = true
		if err := reservations.AddGuest(g); err != nil {
			t.Fatalf("AddGuest failed: %v", err)
		}
	}
	guests, err := reservations.ListGuests(res.ID)
	if err != nil {
		t.Fatalf("ListGuests failed: %v", err)
	}
	if len(guests) != 2 || guests[0].DisplayLabel() != "Aunt June" {
		t.Errorf("Guests out of order: %+v", guests)
	}

	for _, body := range []string{"first note", "second note"} {
		if err := reservations.AddNote(&models.Note{ReservationID: res.ID, Body: body, CreatedBy: owner.ID}); err != nil {
			t.Fatalf("AddNote failed: %v", err)
		}
	}
	notes, err := reservations.ListNotes(res.ID)
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	// Notes come back newest first; same-timestamp rows fall back to id
	if len(notes) != 2 || notes[0].Body != "second note" {
		t.Errorf("Notes out of order: %+v", notes)
	}
}

func TestChecklistLifecycle(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	items := NewChecklistRepository(db)

	user, err := users.CreateUser("cook@example.com", "hash", "Kit", "")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	milk, err := items.AddItem(models.ListGroceries, "Milk", "Kit", user.ID)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := items.AddItem(models.ListGroceries, "Eggs", "", user.ID); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := items.AddItem(models.ListTodos, "Fix the gate", "", user.ID); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	// Lists are separate tables behind one API
	groceries, err := items.ListItems(models.ListGroceries)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(groceries) != 2 {
		t.Fatalf("Got %d groceries, want 2", len(groceries))
	}
	todos, _ := items.ListItems(models.ListTodos)
	if len(todos) != 1 {
		t.Fatalf("Got %d todos, want 1", len(todos))
	}

	if err := items.SetItemCompleted(models.ListGroceries, milk.ID, true); err != nil {
		t.Fatalf("SetItemCompleted failed: %v", err)
	}
	cleared, err := items.ClearDone(models.ListGroceries)
	if err != nil {
		t.Fatalf("ClearDone failed: %v", err)
	}
	if cleared != 1 {
		t.Errorf("ClearDone removed %d items, want 1", cleared)
	}
	groceries, _ = items.ListItems(models.ListGroceries)
	if len(groceries) != 1 || groceries[0].Title != "Eggs" {
		t.Errorf("Unexpected groceries after clear: %+v", groceries)
	}

	if _, err := items.AddItem("chores", "nope", "", user.ID); err == nil {
		t.Error("Unknown list kind accepted")
	}
}

func TestSettingsDefaults(t *testing.T) {
	db := openTestDB(t)
	settings := NewSettingsRepository(db)

	// Migrations seed the row; EnsureDefaults must not overwrite it
	if err := settings.EnsureDefaults(8); err != nil {
		t.Fatalf("EnsureDefaults failed: %v", err)
	}
	got, err := settings.GetSettings()
	if err != nil || got == nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.TotalRooms != 5 {
		t.Errorf("TotalRooms = %d, want the seeded 5", got.TotalRooms)
	}

	users := NewUserRepository(db)
	admin, err := users.CreateUser("admin@example.com", "hash", "Ada", "")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if err := settings.UpdateTotalRooms(7, admin.ID); err != nil {
		t.Fatalf("UpdateTotalRooms failed: %v", err)
	}
	got, _ = settings.GetSettings()
	if got.TotalRooms != 7 {
		t.Errorf("TotalRooms = %d, want 7", got.TotalRooms)
	}
	if !got.UpdatedBy.Valid || got.UpdatedBy.Int64 != admin.ID {
		t.Errorf("UpdatedBy = %+v, want %d", got.UpdatedBy, admin.ID)
	}
}
