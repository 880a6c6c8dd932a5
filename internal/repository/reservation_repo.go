package repository

import (
	"database/sql"
	"fmt"
	"time"

	"sunescape/internal/database"
	"sunescape/internal/models"
)

// ReservationRepository handles database operations for reservations
// and their attached guests and notes
type ReservationRepository struct {
	db database.DBTX
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db database.DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// CreateReservation inserts a new reservation and fills in its ID
func (r *ReservationRepository) CreateReservation(res *models.Reservation) error {
	query := `
		INSERT INTO reservations (user_id, name, start_date, end_date, rooms, occasion, guests)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, res.UserID, res.Name, res.StartDate, res.EndDate, res.RoomsCount, res.Occasion, res.GuestsText)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	res.ID = id
	res.CreatedAt = time.Now()
	return nil
}

const reservationSelect = `
	SELECT r.id, r.user_id, r.name, r.start_date, r.end_date, r.rooms,
		COALESCE(r.occasion, '') AS occasion, COALESCE(r.guests, '') AS guests, r.created_at,
		COALESCE(u.first_name, COALESCE(u.full_name, u.email)) AS owner_name
	FROM reservations r
	JOIN users u ON u.id = r.user_id
`

func scanReservation(row interface{ Scan(...interface{}) error }) (*models.Reservation, error) {
	res := &models.Reservation{}
	err := row.Scan(&res.ID, &res.UserID, &res.Name, &res.StartDate, &res.EndDate, &res.RoomsCount,
		&res.Occasion, &res.GuestsText, &res.CreatedAt, &res.OwnerName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan reservation: %w", err)
	}
	return res, nil
}

// GetReservation retrieves a reservation by ID
func (r *ReservationRepository) GetReservation(id int64) (*models.Reservation, error) {
	return scanReservation(r.db.QueryRow(reservationSelect+" WHERE r.id = ?", id))
}

// ListReservations returns every reservation ordered by start date
func (r *ReservationRepository) ListReservations() ([]*models.Reservation, error) {
	rows, err := r.db.Query(reservationSelect + " ORDER BY r.start_date, r.id")
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return collectReservations(rows)
}

// ListReservationsOverlapping returns reservations whose inclusive range
// touches any day of [startDate, endDate]
func (r *ReservationRepository) ListReservationsOverlapping(startDate, endDate string) ([]*models.Reservation, error) {
	query := reservationSelect + " WHERE r.start_date <= ? AND r.end_date >= ? ORDER BY r.start_date, r.id"
	rows, err := r.db.Query(query, endDate, startDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping reservations: %w", err)
	}
	return collectReservations(rows)
}

// ListReservationsByUser returns a member's own reservations
func (r *ReservationRepository) ListReservationsByUser(userID int64) ([]*models.Reservation, error) {
	rows, err := r.db.Query(reservationSelect+" WHERE r.user_id = ? ORDER BY r.start_date, r.id", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user reservations: %w", err)
	}
	return collectReservations(rows)
}

func collectReservations(rows *sql.Rows) ([]*models.Reservation, error) {
	defer rows.Close()
	var reservations []*models.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

// UpdateReservation rewrites a reservation's editable fields
func (r *ReservationRepository) UpdateReservation(res *models.Reservation) error {
	query := `
		UPDATE reservations
		SET name = ?, start_date = ?, end_date = ?, rooms = ?, occasion = ?, guests = ?
		WHERE id = ?
	`
	if _, err := r.db.Exec(query, res.Name, res.StartDate, res.EndDate, res.RoomsCount, res.Occasion, res.GuestsText, res.ID); err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	return nil
}

// AddGuest attaches a guest entry to a reservation
func (r *ReservationRepository) AddGuest(g *models.Guest) error {
	query := `
		INSERT INTO reservation_guests (reservation_id, user_id, name, count, created_by)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, g.ReservationID, g.UserID, g.Name, g.Count, g.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to add guest: %w", err)
	}
	g.ID = id
	return nil
}

// GetGuest retrieves a guest entry by ID
func (r *ReservationRepository) GetGuest(id int64) (*models.Guest, error) {
	query := `
		SELECT id, reservation_id, user_id, name, count, created_by, created_at
		FROM reservation_guests WHERE id = ?
	`
	g := &models.Guest{}
	err := r.db.QueryRow(query, id).Scan(&g.ID, &g.ReservationID, &g.UserID, &g.Name, &g.Count, &g.CreatedBy, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}
	return g, nil
}

// ListGuests returns a reservation's guests, oldest first
func (r *ReservationRepository) ListGuests(reservationID int64) ([]*models.Guest, error) {
	query := `
		SELECT g.id, g.reservation_id, g.user_id, g.name, g.count, g.created_by, g.created_at,
			COALESCE(COALESCE(lu.first_name, COALESCE(lu.full_name, lu.email)), '') AS user_name,
			COALESCE(cu.first_name, COALESCE(cu.full_name, cu.email)) AS creator_name
		FROM reservation_guests g
		LEFT JOIN users lu ON lu.id = g.user_id
		JOIN users cu ON cu.id = g.created_by
		WHERE g.reservation_id = ?
		ORDER BY g.created_at ASC, g.id ASC
	`
	rows, err := r.db.Query(query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	defer rows.Close()

	var guests []*models.Guest
	for rows.Next() {
		g := &models.Guest{}
		if err := rows.Scan(&g.ID, &g.ReservationID, &g.UserID, &g.Name, &g.Count, &g.CreatedBy, &g.CreatedAt, &g.UserName, &g.CreatorName); err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

// ListLinkedUserIDs returns the IDs of members already attached to a
// reservation as guests
func (r *ReservationRepository) ListLinkedUserIDs(reservationID int64) ([]int64, error) {
	query := "SELECT user_id FROM reservation_guests WHERE reservation_id = ? AND user_id IS NOT NULL"
	rows, err := r.db.Query(query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list linked guests: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan linked guest: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteGuest removes a guest entry
func (r *ReservationRepository) DeleteGuest(id int64) error {
	if _, err := r.db.Exec("DELETE FROM reservation_guests WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete guest: %w", err)
	}
	return nil
}

// AddNote attaches a note to a reservation
func (r *ReservationRepository) AddNote(n *models.Note) error {
	query := "INSERT INTO reservation_notes (reservation_id, note, created_by) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, n.ReservationID, n.Body, n.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}
	n.ID = id
	return nil
}

// GetNote retrieves a note by ID
func (r *ReservationRepository) GetNote(id int64) (*models.Note, error) {
	query := "SELECT id, reservation_id, note, created_by, created_at FROM reservation_notes WHERE id = ?"
	n := &models.Note{}
	err := r.db.QueryRow(query, id).Scan(&n.ID, &n.ReservationID, &n.Body, &n.CreatedBy, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return n, nil
}

// ListNotes returns a reservation's notes, newest first
func (r *ReservationRepository) ListNotes(reservationID int64) ([]*models.Note, error) {
	query := `
		SELECT n.id, n.reservation_id, n.note, n.created_by, n.created_at,
			COALESCE(u.first_name, COALESCE(u.full_name, u.email)) AS author_name
		FROM reservation_notes n
		JOIN users u ON u.id = n.created_by
		WHERE n.reservation_id = ?
		ORDER BY n.created_at DESC, n.id DESC
	`
	rows, err := r.db.Query(query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		n := &models.Note{}
		if err := rows.Scan(&n.ID, &n.ReservationID, &n.Body, &n.CreatedBy, &n.CreatedAt, &n.AuthorName); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// DeleteNote removes a note
func (r *ReservationRepository) DeleteNote(id int64) error {
	if _, err := r.db.Exec("DELETE FROM reservation_notes WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}
