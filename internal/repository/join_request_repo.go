package repository

import (
	"database/sql"
	"fmt"
	"time"

	"sunescape/internal/database"
	"sunescape/internal/models"
)

// JoinRequestRepository handles database operations for join requests
type JoinRequestRepository struct {
	db database.DBTX
}

// NewJoinRequestRepository creates a new join request repository
func NewJoinRequestRepository(db database.DBTX) *JoinRequestRepository {
	return &JoinRequestRepository{db: db}
}

// CreateJoinRequest files a pending request to join a reservation.
// A second pending request from the same member trips the unique index
// and comes back as ErrDuplicateJoinRequest.
func (r *JoinRequestRepository) CreateJoinRequest(reservationID, userID int64, roomsNeeded int, message string) (*models.JoinRequest, error) {
	query := "INSERT INTO join_requests (reservation_id, user_id, rooms_needed, message) VALUES (?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(query, reservationID, userID, roomsNeeded, message)
	if err != nil {
		if r.db.GetDialect().IsUniqueViolation(err) {
			return nil, ErrDuplicateJoinRequest
		}
		return nil, fmt.Errorf("failed to create join request: %w", err)
	}
	return &models.JoinRequest{
		ID:            id,
		ReservationID: reservationID,
		UserID:        userID,
		RoomsNeeded:   roomsNeeded,
		Message:       message,
		Status:        models.JoinPending,
		CreatedAt:     time.Now(),
	}, nil
}

const joinRequestSelect = `
	SELECT j.id, j.reservation_id, j.user_id, j.rooms_needed,
		COALESCE(j.message, '') AS message, j.status, j.created_at,
		COALESCE(u.first_name, COALESCE(u.full_name, u.email)) AS requester_name,
		u.email AS requester_email,
		res.name, res.start_date, res.end_date
	FROM join_requests j
	JOIN users u ON u.id = j.user_id
	JOIN reservations res ON res.id = j.reservation_id
`

func scanJoinRequest(row interface{ Scan(...interface{}) error }) (*models.JoinRequest, error) {
	j := &models.JoinRequest{}
	err := row.Scan(
		&j.ID, &j.ReservationID, &j.UserID, &j.RoomsNeeded, &j.Message, &j.Status, &j.CreatedAt,
		&j.RequesterName, &j.RequesterEmail, &j.ReservationName, &j.StartDate, &j.EndDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan join request: %w", err)
	}
	return j, nil
}

// GetJoinRequest retrieves a join request by ID
func (r *JoinRequestRepository) GetJoinRequest(id int64) (*models.JoinRequest, error) {
	return scanJoinRequest(r.db.QueryRow(joinRequestSelect+" WHERE j.id = ?", id))
}

// ListPendingForOwner returns the pending requests against reservations
// the given member owns
func (r *JoinRequestRepository) ListPendingForOwner(ownerID int64) ([]*models.JoinRequest, error) {
	query := joinRequestSelect + " WHERE res.user_id = ? AND j.status = 'pending' ORDER BY j.created_at, j.id"
	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending join requests: %w", err)
	}
	return collectJoinRequests(rows)
}

// ListForReservation returns every request against a reservation
func (r *JoinRequestRepository) ListForReservation(reservationID int64) ([]*models.JoinRequest, error) {
	query := joinRequestSelect + " WHERE j.reservation_id = ? ORDER BY j.created_at, j.id"
	rows, err := r.db.Query(query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservation join requests: %w", err)
	}
	return collectJoinRequests(rows)
}

// ListByUser returns the requests a member has filed
func (r *JoinRequestRepository) ListByUser(userID int64) ([]*models.JoinRequest, error) {
	query := joinRequestSelect + " WHERE j.user_id = ? ORDER BY j.created_at DESC, j.id DESC"
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user join requests: %w", err)
	}
	return collectJoinRequests(rows)
}

func collectJoinRequests(rows *sql.Rows) ([]*models.JoinRequest, error) {
	defer rows.Close()
	var requests []*models.JoinRequest
	for rows.Next() {
		j, err := scanJoinRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, j)
	}
	return requests, rows.Err()
}

// UpdateStatus settles a join request
func (r *JoinRequestRepository) UpdateStatus(id int64, status string) error {
	if _, err := r.db.Exec("UPDATE join_requests SET status = ? WHERE id = ?", status, id); err != nil {
		return fmt.Errorf("failed to update join request status: %w", err)
	}
	return nil
}
