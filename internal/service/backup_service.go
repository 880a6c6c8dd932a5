package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"sunescape/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version         string                  `json:"version"`
	ExportedAt      time.Time               `json:"exported_at"`
	TotalRooms      int                     `json:"total_rooms"`
	Users           []UserBackup            `json:"users"`
	Reservations    []ReservationBackup     `json:"reservations"`
	Guests          []GuestBackup           `json:"guests"`
	Notes           []NoteBackup            `json:"notes"`
	Groceries       []ChecklistItemBackup   `json:"groceries"`
	Todos           []ChecklistItemBackup   `json:"todos"`
	Invites         []InviteBackup          `json:"invites"`
	InviteResponses []InviteResponseBackup  `json:"invite_responses"`
	JoinRequests    []JoinRequestBackup     `json:"join_requests"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  *string   `json:"password_hash"`
	FirstName     *string   `json:"first_name"`
	FullName      *string   `json:"full_name"`
	IsAdmin       bool      `json:"is_admin"`
	OAuthProvider *string   `json:"oauth_provider"`
	OAuthSubject  *string   `json:"oauth_subject"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReservationBackup represents a reservation record for backup
type ReservationBackup struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Rooms     int       `json:"rooms"`
	Occasion  string    `json:"occasion"`
	Guests    string    `json:"guests"`
	CreatedAt time.Time `json:"created_at"`
}

// GuestBackup represents a reservation guest record for backup
type GuestBackup struct {
	ID            int64     `json:"id"`
	ReservationID int64     `json:"reservation_id"`
	UserID        *int64    `json:"user_id"`
	Name          *string   `json:"name"`
	Count         int       `json:"count"`
	CreatedBy     int64     `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// NoteBackup represents a reservation note record for backup
type NoteBackup struct {
	ID            int64     `json:"id"`
	ReservationID int64     `json:"reservation_id"`
	Note          string    `json:"note"`
	CreatedBy     int64     `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// ChecklistItemBackup represents a grocery or todo record for backup
type ChecklistItemBackup struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Owner     string    `json:"owner"`
	Completed bool      `json:"completed"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// InviteBackup represents an invite record for backup
type InviteBackup struct {
	ID            int64     `json:"id"`
	ReservationID int64     `json:"reservation_id"`
	CreatedBy     int64     `json:"created_by"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"created_at"`
}

// InviteResponseBackup represents an invite response record for backup
type InviteResponseBackup struct {
	InviteID    int64     `json:"invite_id"`
	UserID      int64     `json:"user_id"`
	Status      string    `json:"status"`
	RoomsCount  int       `json:"rooms_count"`
	RespondedAt time.Time `json:"responded_at"`
}

// JoinRequestBackup represents a join request record for backup
type JoinRequestBackup struct {
	ID            int64     `json:"id"`
	ReservationID int64     `json:"reservation_id"`
	UserID        int64     `json:"user_id"`
	RoomsNeeded   int       `json:"rooms_needed"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.db.QueryRow("SELECT total_rooms FROM settings WHERE id = 1").Scan(&backup.TotalRooms); err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to export settings: %w", err)
	}
	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportReservations(backup); err != nil {
		return fmt.Errorf("failed to export reservations: %w", err)
	}
	if err := s.exportGuestsAndNotes(backup); err != nil {
		return fmt.Errorf("failed to export guests and notes: %w", err)
	}
	if err := s.exportChecklists(backup); err != nil {
		return fmt.Errorf("failed to export checklists: %w", err)
	}
	if err := s.exportInvites(backup); err != nil {
		return fmt.Errorf("failed to export invites: %w", err)
	}
	if err := s.exportJoinRequests(backup); err != nil {
		return fmt.Errorf("failed to export join requests: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d users, %d reservations, %d guests, %d notes, %d invites, %d join requests",
		len(backup.Users), len(backup.Reservations), len(backup.Guests),
		len(backup.Notes), len(backup.Invites), len(backup.JoinRequests))
	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	var backup BackupData
	if err := json.NewDecoder(file).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Import in dependency order
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if backup.TotalRooms > 0 {
		if _, err := s.db.Exec("UPDATE settings SET total_rooms = ? WHERE id = 1", backup.TotalRooms); err != nil {
			return fmt.Errorf("failed to import settings: %w", err)
		}
	}
	if err := s.importReservations(backup.Reservations); err != nil {
		return fmt.Errorf("failed to import reservations: %w", err)
	}
	if err := s.importGuestsAndNotes(backup.Guests, backup.Notes); err != nil {
		return fmt.Errorf("failed to import guests and notes: %w", err)
	}
	if err := s.importChecklists(backup.Groceries, backup.Todos); err != nil {
		return fmt.Errorf("failed to import checklists: %w", err)
	}
	if err := s.importInvites(backup.Invites, backup.InviteResponses); err != nil {
		return fmt.Errorf("failed to import invites: %w", err)
	}
	if err := s.importJoinRequests(backup.JoinRequests); err != nil {
		return fmt.Errorf("failed to import join requests: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, email, password_hash, first_name, full_name, is_admin, oauth_provider, oauth_subject, created_at FROM users ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.FullName, &u.IsAdmin, &u.OAuthProvider, &u.OAuthSubject, &u.CreatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportReservations(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, user_id, name, start_date, end_date, rooms, COALESCE(occasion, ''), COALESCE(guests, ''), created_at FROM reservations ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r ReservationBackup
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.StartDate, &r.EndDate, &r.Rooms, &r.Occasion, &r.Guests, &r.CreatedAt); err != nil {
			return err
		}
		backup.Reservations = append(backup.Reservations, r)
	}
	return rows.Err()
}

func (s *BackupService) exportGuestsAndNotes(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, reservation_id, user_id, name, count, created_by, created_at FROM reservation_guests ORDER BY id")
	if err != nil {
		return err
	}
	for rows.Next() {
		var g GuestBackup
		if err := rows.Scan(&g.ID, &g.ReservationID, &g.UserID, &g.Name, &g.Count, &g.CreatedBy, &g.CreatedAt); err != nil {
			rows.Close()
			return err
		}
		backup.Guests = append(backup.Guests, g)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	rows, err = s.db.Query("SELECT id, reservation_id, note, created_by, created_at FROM reservation_notes ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var n NoteBackup
		if err := rows.Scan(&n.ID, &n.ReservationID, &n.Note, &n.CreatedBy, &n.CreatedAt); err != nil {
			return err
		}
		backup.Notes = append(backup.Notes, n)
	}
	return rows.Err()
}

func (s *BackupService) exportChecklists(backup *BackupData) error {
	for _, table := range []string{"groceries", "todos"} {
		rows, err := s.db.Query(fmt.Sprintf("SELECT id, title, COALESCE(owner, ''), completed, created_by, created_at FROM %s ORDER BY id", table))
		if err != nil {
			return err
		}
		for rows.Next() {
			var item ChecklistItemBackup
			if err := rows.Scan(&item.ID, &item.Title, &item.Owner, &item.Completed, &item.CreatedBy, &item.CreatedAt); err != nil {
				rows.Close()
				return err
			}
			if table == "groceries" {
				backup.Groceries = append(backup.Groceries, item)
			} else {
				backup.Todos = append(backup.Todos, item)
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()
	}
	return nil
}

func (s *BackupService) exportInvites(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, reservation_id, created_by, COALESCE(message, ''), created_at FROM invites ORDER BY id")
	if err != nil {
		return err
	}
	for rows.Next() {
		var inv InviteBackup
		if err := rows.Scan(&inv.ID, &inv.ReservationID, &inv.CreatedBy, &inv.Message, &inv.CreatedAt); err != nil {
			rows.Close()
			return err
		}
		backup.Invites = append(backup.Invites, inv)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	rows, err = s.db.Query("SELECT invite_id, user_id, status, rooms_count, responded_at FROM invite_responses ORDER BY invite_id, user_id")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var resp InviteResponseBackup
		if err := rows.Scan(&resp.InviteID, &resp.UserID, &resp.Status, &resp.RoomsCount, &resp.RespondedAt); err != nil {
			return err
		}
		backup.InviteResponses = append(backup.InviteResponses, resp)
	}
	return rows.Err()
}

func (s *BackupService) exportJoinRequests(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, reservation_id, user_id, rooms_needed, COALESCE(message, ''), status, created_at FROM join_requests ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var j JoinRequestBackup
		if err := rows.Scan(&j.ID, &j.ReservationID, &j.UserID, &j.RoomsNeeded, &j.Message, &j.Status, &j.CreatedAt); err != nil {
			return err
		}
		backup.JoinRequests = append(backup.JoinRequests, j)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	for _, u := range users {
		_, err := s.db.Exec(`
			INSERT INTO users (id, email, password_hash, first_name, full_name, is_admin, oauth_provider, oauth_subject, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, u.ID, u.Email, u.PasswordHash, u.FirstName, u.FullName, u.IsAdmin, u.OAuthProvider, u.OAuthSubject, u.CreatedAt)
		if err != nil {
			return fmt.Errorf("user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importReservations(reservations []ReservationBackup) error {
	for _, r := range reservations {
		_, err := s.db.Exec(`
			INSERT INTO reservations (id, user_id, name, start_date, end_date, rooms, occasion, guests, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, r.ID, r.UserID, r.Name, r.StartDate, r.EndDate, r.Rooms, r.Occasion, r.Guests, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("reservation %d: %w", r.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importGuestsAndNotes(guests []GuestBackup, notes []NoteBackup) error {
	for _, g := range guests {
		_, err := s.db.Exec(`
			INSERT INTO reservation_guests (id, reservation_id, user_id, name, count, created_by, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, g.ID, g.ReservationID, g.UserID, g.Name, g.Count, g.CreatedBy, g.CreatedAt)
		if err != nil {
			return fmt.Errorf("guest %d: %w", g.ID, err)
		}
	}
	for _, n := range notes {
		_, err := s.db.Exec(`
			INSERT INTO reservation_notes (id, reservation_id, note, created_by, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, n.ID, n.ReservationID, n.Note, n.CreatedBy, n.CreatedAt)
		if err != nil {
			return fmt.Errorf("note %d: %w", n.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importChecklists(groceries, todos []ChecklistItemBackup) error {
	insert := func(table string, items []ChecklistItemBackup) error {
		for _, item := range items {
			_, err := s.db.Exec(fmt.Sprintf(`
				INSERT INTO %s (id, title, owner, completed, created_by, created_at)
				VALUES (?, ?, ?, ?, ?, ?)
			`, table), item.ID, item.Title, item.Owner, item.Completed, item.CreatedBy, item.CreatedAt)
			if err != nil {
				return fmt.Errorf("%s item %d: %w", table, item.ID, err)
			}
		}
		return nil
	}
	if err := insert("groceries", groceries); err != nil {
		return err
	}
	return insert("todos", todos)
}

func (s *BackupService) importInvites(invites []InviteBackup, responses []InviteResponseBackup) error {
	for _, inv := range invites {
		_, err := s.db.Exec(`
			INSERT INTO invites (id, reservation_id, created_by, message, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, inv.ID, inv.ReservationID, inv.CreatedBy, inv.Message, inv.CreatedAt)
		if err != nil {
			return fmt.Errorf("invite %d: %w", inv.ID, err)
		}
	}
	for _, resp := range responses {
		_, err := s.db.Exec(`
			INSERT INTO invite_responses (invite_id, user_id, status, rooms_count, responded_at)
			VALUES (?, ?, ?, ?, ?)
		`, resp.InviteID, resp.UserID, resp.Status, resp.RoomsCount, resp.RespondedAt)
		if err != nil {
			return fmt.Errorf("invite response %d/%d: %w", resp.InviteID, resp.UserID, err)
		}
	}
	return nil
}

func (s *BackupService) importJoinRequests(requests []JoinRequestBackup) error {
	for _, j := range requests {
		_, err := s.db.Exec(`
			INSERT INTO join_requests (id, reservation_id, user_id, rooms_needed, message, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, j.ID, j.ReservationID, j.UserID, j.RoomsNeeded, j.Message, j.Status, j.CreatedAt)
		if err != nil {
			return fmt.Errorf("join request %d: %w", j.ID, err)
		}
	}
	return nil
}
