package service

import (
	"errors"

	"sunescape/internal/models"
	"sunescape/internal/repository"
	"sunescape/internal/validation"
)

// ErrDuplicateJoinRequest is re-exported with the message the form shows
var ErrDuplicateJoinRequest = errors.New("You already sent a request for this reservation.")

// JoinRequestService handles asking to join someone else's stay and the
// owner's approve/deny decisions
type JoinRequestService struct {
	requests     *repository.JoinRequestRepository
	reservations *repository.ReservationRepository
	settings     *repository.SettingsRepository
	users        *repository.UserRepository
	notifier     *Notifier
}

// NewJoinRequestService creates a new join request service
func NewJoinRequestService(
	requests *repository.JoinRequestRepository,
	reservations *repository.ReservationRepository,
	settings *repository.SettingsRepository,
	users *repository.UserRepository,
	notifier *Notifier,
) *JoinRequestService {
	return &JoinRequestService{
		requests:     requests,
		reservations: reservations,
		settings:     settings,
		users:        users,
		notifier:     notifier,
	}
}

// Request files a pending request to join a reservation and notifies
// the owner
func (s *JoinRequestService) Request(user *models.User, reservationID int64, roomsNeeded int, message string) (*models.JoinRequest, error) {
	res, err := s.reservations.GetReservation(reservationID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrNotFound
	}
	if res.UserID == user.ID {
		return nil, ErrOwnReservation
	}

	settings, err := s.settings.GetSettings()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, ErrNotFound
	}
	if err := validation.ValidateRoomsCount(roomsNeeded, settings.TotalRooms); err != nil {
		return nil, err
	}

	req, err := s.requests.CreateJoinRequest(reservationID, user.ID, roomsNeeded, message)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateJoinRequest) {
			return nil, ErrDuplicateJoinRequest
		}
		return nil, err
	}
	req.RequesterName = user.DisplayName()
	req.ReservationName = res.Name
	req.StartDate = res.StartDate
	req.EndDate = res.EndDate

	if owner, err := s.users.GetUserByID(res.UserID); err == nil && owner != nil {
		s.notifier.JoinRequested(owner, req)
	}
	return req, nil
}

// ListForReservation returns a reservation's join requests for whoever
// may settle them; everyone else sees none
func (s *JoinRequestService) ListForReservation(viewer *models.User, reservationID int64) ([]*models.JoinRequest, error) {
	res, err := s.reservations.GetReservation(reservationID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrNotFound
	}
	if !res.EditableBy(viewer) {
		return nil, nil
	}
	return s.requests.ListForReservation(reservationID)
}

// PendingForOwner lists open requests against the member's reservations
func (s *JoinRequestService) PendingForOwner(ownerID int64) ([]*models.JoinRequest, error) {
	return s.requests.ListPendingForOwner(ownerID)
}

// Mine lists the requests a member has filed
func (s *JoinRequestService) Mine(userID int64) ([]*models.JoinRequest, error) {
	return s.requests.ListByUser(userID)
}

// Approve settles a request in the requester's favour: the request is
// marked approved and the requester lands on the reservation's guest
// list with the rooms they asked for.
func (s *JoinRequestService) Approve(approver *models.User, requestID int64) error {
	req, res, err := s.loadForDecision(approver, requestID)
	if err != nil {
		return err
	}

	if err := s.requests.UpdateStatus(requestID, models.JoinApproved); err != nil {
		return err
	}
	guest := &models.Guest{
		ReservationID: res.ID,
		Count:         req.RoomsNeeded,
		CreatedBy:     approver.ID,
	}
	guest.UserID.Int64 = req.UserID
	guest.UserID.Valid = true
	if err := s.reservations.AddGuest(guest); err != nil {
		return err
	}

	s.notifyDecision(req, true)
	return nil
}

// Deny settles a request against the requester
func (s *JoinRequestService) Deny(approver *models.User, requestID int64) error {
	req, _, err := s.loadForDecision(approver, requestID)
	if err != nil {
		return err
	}
	if err := s.requests.UpdateStatus(requestID, models.JoinDenied); err != nil {
		return err
	}
	s.notifyDecision(req, false)
	return nil
}

// loadForDecision fetches the request and checks the approver may settle
// it: the reservation's owner or an admin, and only while it is pending
func (s *JoinRequestService) loadForDecision(approver *models.User, requestID int64) (*models.JoinRequest, *models.Reservation, error) {
	req, err := s.requests.GetJoinRequest(requestID)
	if err != nil {
		return nil, nil, err
	}
	if req == nil {
		return nil, nil, ErrNotFound
	}
	if !req.IsPending() {
		return nil, nil, ErrAlreadySettled
	}

	res, err := s.reservations.GetReservation(req.ReservationID)
	if err != nil {
		return nil, nil, err
	}
	if res == nil {
		return nil, nil, ErrNotFound
	}
	if !res.EditableBy(approver) {
		return nil, nil, ErrForbidden
	}
	return req, res, nil
}

func (s *JoinRequestService) notifyDecision(req *models.JoinRequest, approved bool) {
	if requester, err := s.users.GetUserByID(req.UserID); err == nil && requester != nil {
		s.notifier.JoinDecided(requester, req, approved)
	}
}
