package service

import (
	"sunescape/internal/models"
	"sunescape/internal/repository"
	"sunescape/internal/validation"
)

// InviteService handles the invite inbox and accept/decline flows
type InviteService struct {
	invites      *repository.InviteRepository
	reservations *repository.ReservationRepository
	settings     *repository.SettingsRepository
	users        *repository.UserRepository
	notifier     *Notifier
}

// NewInviteService creates a new invite service
func NewInviteService(
	invites *repository.InviteRepository,
	reservations *repository.ReservationRepository,
	settings *repository.SettingsRepository,
	users *repository.UserRepository,
	notifier *Notifier,
) *InviteService {
	return &InviteService{
		invites:      invites,
		reservations: reservations,
		settings:     settings,
		users:        users,
		notifier:     notifier,
	}
}

// Inbox lists the invites a member still has to answer
func (s *InviteService) Inbox(userID int64) ([]*models.InboxInvite, error) {
	return s.invites.ListInbox(userID)
}

// Accept answers an invite by booking rooms of one's own over the same
// dates. The responder gets a fresh reservation under their own name
// and the accept is recorded against the invite.
func (s *InviteService) Accept(user *models.User, inviteID int64, rooms int) (*models.Reservation, error) {
	invite, err := s.invites.GetInvite(inviteID)
	if err != nil {
		return nil, err
	}
	if invite == nil {
		return nil, ErrNotFound
	}
	if invite.CreatedBy == user.ID {
		return nil, ErrOwnReservation
	}

	original, err := s.reservations.GetReservation(invite.ReservationID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, ErrNotFound
	}

	settings, err := s.settings.GetSettings()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, ErrNotFound
	}
	if err := validation.ValidateRoomsCount(rooms, settings.TotalRooms); err != nil {
		return nil, err
	}

	res := &models.Reservation{
		UserID:     user.ID,
		Name:       user.DisplayName(),
		StartDate:  original.StartDate,
		EndDate:    original.EndDate,
		RoomsCount: rooms,
		Occasion:   original.Occasion,
	}
	if err := s.reservations.CreateReservation(res); err != nil {
		return nil, err
	}
	if err := s.invites.UpsertResponse(inviteID, user.ID, models.InviteAccepted, rooms); err != nil {
		return nil, err
	}

	if creator, err := s.users.GetUserByID(invite.CreatedBy); err == nil && creator != nil {
		s.notifier.InviteAccepted(user, creator, original, rooms)
	}
	return res, nil
}

// Decline records a no. Declines carry no rooms and can be changed to an
// accept later; the upsert overwrites.
func (s *InviteService) Decline(user *models.User, inviteID int64) error {
	invite, err := s.invites.GetInvite(inviteID)
	if err != nil {
		return err
	}
	if invite == nil {
		return ErrNotFound
	}
	if invite.CreatedBy == user.ID {
		return ErrOwnReservation
	}
	return s.invites.UpsertResponse(inviteID, user.ID, models.InviteDeclined, 0)
}
