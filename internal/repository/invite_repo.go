package repository

import (
	"database/sql"
	"fmt"
	"time"

	"sunescape/internal/database"
	"sunescape/internal/models"
)

// InviteRepository handles database operations for invites and responses
type InviteRepository struct {
	db database.DBTX
}

// NewInviteRepository creates a new invite repository
func NewInviteRepository(db database.DBTX) *InviteRepository {
	return &InviteRepository{db: db}
}

// CreateInvite broadcasts an invite for a reservation. Each reservation
// carries at most one invite.
func (r *InviteRepository) CreateInvite(reservationID, createdBy int64, message string) (*models.Invite, error) {
	query := "INSERT INTO invites (reservation_id, created_by, message) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, reservationID, createdBy, message)
	if err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}
	return &models.Invite{
		ID:            id,
		ReservationID: reservationID,
		CreatedBy:     createdBy,
		Message:       message,
		CreatedAt:     time.Now(),
	}, nil
}

// GetInvite retrieves an invite by ID
func (r *InviteRepository) GetInvite(id int64) (*models.Invite, error) {
	query := "SELECT id, reservation_id, created_by, COALESCE(message, ''), created_at FROM invites WHERE id = ?"
	return r.scanInvite(r.db.QueryRow(query, id))
}

// GetInviteByReservation retrieves the invite attached to a reservation
func (r *InviteRepository) GetInviteByReservation(reservationID int64) (*models.Invite, error) {
	query := "SELECT id, reservation_id, created_by, COALESCE(message, ''), created_at FROM invites WHERE reservation_id = ?"
	return r.scanInvite(r.db.QueryRow(query, reservationID))
}

func (r *InviteRepository) scanInvite(row *sql.Row) (*models.Invite, error) {
	inv := &models.Invite{}
	err := row.Scan(&inv.ID, &inv.ReservationID, &inv.CreatedBy, &inv.Message, &inv.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan invite: %w", err)
	}
	return inv, nil
}

// ListInbox returns the invites a member still has to answer: everything
// they did not send themselves and have not yet responded to, newest
// first, enriched with the reservation's dates and a running
// acceptance tally.
func (r *InviteRepository) ListInbox(userID int64) ([]*models.InboxInvite, error) {
	query := `
		SELECT i.id, i.reservation_id, i.created_by, COALESCE(i.message, ''), i.created_at,
			res.name, res.start_date, res.end_date, res.rooms,
			COALESCE(u.first_name, COALESCE(u.full_name, u.email)) AS creator_name,
			(SELECT COUNT(*) FROM invite_responses ir
				WHERE ir.invite_id = i.id AND ir.status = 'accepted') AS accept_count
		FROM invites i
		JOIN reservations res ON res.id = i.reservation_id
		JOIN users u ON u.id = i.created_by
		WHERE i.created_by != ?
			AND NOT EXISTS (
				SELECT 1 FROM invite_responses ir
				WHERE ir.invite_id = i.id AND ir.user_id = ?
			)
		ORDER BY i.created_at DESC, i.id DESC
	`
	rows, err := r.db.Query(query, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invite inbox: %w", err)
	}
	defer rows.Close()

	var invites []*models.InboxInvite
	for rows.Next() {
		inv := &models.InboxInvite{}
		err := rows.Scan(
			&inv.ID, &inv.ReservationID, &inv.CreatedBy, &inv.Message, &inv.CreatedAt,
			&inv.ReservationName, &inv.StartDate, &inv.EndDate, &inv.RoomsCount,
			&inv.CreatorName, &inv.AcceptCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inbox invite: %w", err)
		}
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

// UpsertResponse records or overwrites a member's answer to an invite
func (r *InviteRepository) UpsertResponse(inviteID, userID int64, status string, roomsCount int) error {
	query := r.db.GetDialect().UpsertInviteResponseQuery()
	if _, err := r.db.Exec(query, inviteID, userID, status, roomsCount); err != nil {
		return fmt.Errorf("failed to record invite response: %w", err)
	}
	return nil
}

// ListResponses returns every answer to an invite, acceptances first
func (r *InviteRepository) ListResponses(inviteID int64) ([]*models.InviteResponse, error) {
	query := `
		SELECT invite_id, user_id, status, rooms_count, responded_at
		FROM invite_responses
		WHERE invite_id = ?
		ORDER BY status ASC, responded_at ASC
	`
	rows, err := r.db.Query(query, inviteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invite responses: %w", err)
	}
	defer rows.Close()

	var responses []*models.InviteResponse
	for rows.Next() {
		resp := &models.InviteResponse{}
		if err := rows.Scan(&resp.InviteID, &resp.UserID, &resp.Status, &resp.RoomsCount, &resp.RespondedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invite response: %w", err)
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}
