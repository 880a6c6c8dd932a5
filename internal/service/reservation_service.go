package service

import (
	"errors"
	"time"

	"sunescape/internal/calendar"
	"sunescape/internal/models"
	"sunescape/internal/repository"
	"sunescape/internal/validation"
)

// ReservationService handles stays, their guests and notes, and the
// availability views built on top of them
type ReservationService struct {
	reservations *repository.ReservationRepository
	invites      *repository.InviteRepository
	settings     *repository.SettingsRepository
	users        *repository.UserRepository
	notifier     *Notifier
}

// NewReservationService creates a new reservation service
func NewReservationService(
	reservations *repository.ReservationRepository,
	invites *repository.InviteRepository,
	settings *repository.SettingsRepository,
	users *repository.UserRepository,
	notifier *Notifier,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		invites:      invites,
		settings:     settings,
		users:        users,
		notifier:     notifier,
	}
}

// TotalRooms returns the configured house capacity
func (s *ReservationService) TotalRooms() (int, error) {
	settings, err := s.settings.GetSettings()
	if err != nil {
		return 0, err
	}
	if settings == nil {
		return 0, ErrNotFound
	}
	return settings.TotalRooms, nil
}

// ReservationInput carries the user-editable fields of a stay
type ReservationInput struct {
	Name      string
	StartDate string
	EndDate   string
	Rooms     int
	Occasion  string
	Guests    string
}

func (s *ReservationService) validateInput(in ReservationInput) error {
	if err := validation.ValidateRequiredText("name", in.Name, "Reservation name"); err != nil {
		return err
	}
	totalRooms, err := s.TotalRooms()
	if err != nil {
		return err
	}
	if err := validation.ValidateDateRange(in.StartDate, in.EndDate); err != nil {
		return err
	}
	return validation.ValidateRoomsCount(in.Rooms, totalRooms)
}

// Create validates and books a new stay. When broadcast is true an
// invite goes out to the rest of the household alongside it, carrying
// the optional message.
func (s *ReservationService) Create(user *models.User, in ReservationInput, broadcast bool, inviteMessage string) (*models.Reservation, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	res := &models.Reservation{
		UserID:     user.ID,
		Name:       in.Name,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		RoomsCount: in.Rooms,
		Occasion:   in.Occasion,
		GuestsText: in.Guests,
	}
	if err := s.reservations.CreateReservation(res); err != nil {
		return nil, err
	}

	if broadcast {
		if _, err := s.invites.CreateInvite(res.ID, user.ID, inviteMessage); err != nil {
			return nil, err
		}
		s.notifier.InviteBroadcast(user, res)
	}
	return res, nil
}

// Update changes a stay's details. Only the owner or an admin may edit.
func (s *ReservationService) Update(user *models.User, id int64, in ReservationInput) error {
	res, err := s.reservations.GetReservation(id)
	if err != nil {
		return err
	}
	if res == nil {
		return ErrNotFound
	}
	if !res.EditableBy(user) {
		return ErrForbidden
	}
	if err := s.validateInput(in); err != nil {
		return err
	}

	res.Name = in.Name
	res.StartDate = in.StartDate
	res.EndDate = in.EndDate
	res.RoomsCount = in.Rooms
	res.Occasion = in.Occasion
	res.GuestsText = in.Guests
	return s.reservations.UpdateReservation(res)
}

// Get returns one reservation
func (s *ReservationService) Get(id int64) (*models.Reservation, error) {
	res, err := s.reservations.GetReservation(id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrNotFound
	}
	return res, nil
}

// List returns every reservation ordered by start date
func (s *ReservationService) List() ([]*models.Reservation, error) {
	return s.reservations.ListReservations()
}

// ReservationDetail bundles everything the reservation page shows
type ReservationDetail struct {
	Reservation *models.Reservation
	Guests      []*models.Guest
	Notes       []*models.Note
	Invite      *models.Invite
	Responses   []*models.InviteResponse
}

// Detail loads a reservation with its guests, notes and invite state
func (s *ReservationService) Detail(id int64) (*ReservationDetail, error) {
	res, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	guests, err := s.reservations.ListGuests(id)
	if err != nil {
		return nil, err
	}
	notes, err := s.reservations.ListNotes(id)
	if err != nil {
		return nil, err
	}
	invite, err := s.invites.GetInviteByReservation(id)
	if err != nil {
		return nil, err
	}
	detail := &ReservationDetail{
		Reservation: res,
		Guests:      guests,
		Notes:       notes,
		Invite:      invite,
	}
	if invite != nil {
		responses, err := s.invites.ListResponses(invite.ID)
		if err != nil {
			return nil, err
		}
		detail.Responses = responses
	}
	return detail, nil
}

// MonthView builds the availability grid for a month
func (s *ReservationService) MonthView(year int, month time.Month) (calendar.Month, error) {
	totalRooms, err := s.TotalRooms()
	if err != nil {
		return calendar.Month{}, err
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// The grid pads into the neighbouring months, so fetch a week extra
	// on both sides
	from := calendar.ToISO(first.AddDate(0, 0, -7))
	to := calendar.ToISO(first.AddDate(0, 1, 7))

	reservations, err := s.reservations.ListReservationsOverlapping(from, to)
	if err != nil {
		return calendar.Month{}, err
	}

	bookings := make([]calendar.Booking, 0, len(reservations))
	for _, r := range reservations {
		bookings = append(bookings, calendar.Booking{
			StartDate: r.StartDate,
			EndDate:   r.EndDate,
			Rooms:     r.RoomsCount,
		})
	}

	today := calendar.ToISO(time.Now())
	return calendar.BuildMonth(year, month, bookings, totalRooms, today), nil
}

// AddGuest attaches a guest to a reservation. Adding is gated by the
// parent reservation's editability; either a member link or a free-text
// name must be given, not both.
func (s *ReservationService) AddGuest(user *models.User, reservationID int64, linkedUserID int64, name string, count int) (*models.Guest, error) {
	res, err := s.Get(reservationID)
	if err != nil {
		return nil, err
	}
	if !res.EditableBy(user) {
		return nil, ErrForbidden
	}
	if count < 1 {
		count = 1
	}

	g := &models.Guest{
		ReservationID: reservationID,
		Count:         count,
		CreatedBy:     user.ID,
	}
	switch {
	case linkedUserID > 0:
		linked, err := s.users.GetUserByID(linkedUserID)
		if err != nil {
			return nil, err
		}
		if linked == nil {
			return nil, ErrNotFound
		}
		g.UserID.Int64 = linkedUserID
		g.UserID.Valid = true
	default:
		if err := validation.ValidateRequiredText("name", name, "Guest name"); err != nil {
			return nil, err
		}
		g.Name.String = name
		g.Name.Valid = true
	}

	if err := s.reservations.AddGuest(g); err != nil {
		return nil, err
	}
	return g, nil
}

// RemoveGuest deletes a guest entry. Only whoever added the entry or an
// admin may remove it.
func (s *ReservationService) RemoveGuest(user *models.User, guestID int64) error {
	g, err := s.reservations.GetGuest(guestID)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrNotFound
	}
	if !g.RemovableBy(user) {
		return ErrForbidden
	}
	return s.reservations.DeleteGuest(guestID)
}

// AddableUsers lists members who can still be linked as guests: everyone
// except the acting user and those already attached.
func (s *ReservationService) AddableUsers(user *models.User, reservationID int64) ([]*models.User, error) {
	linked, err := s.reservations.ListLinkedUserIDs(reservationID)
	if err != nil {
		return nil, err
	}
	taken := make(map[int64]bool, len(linked)+1)
	taken[user.ID] = true
	for _, id := range linked {
		taken[id] = true
	}

	users, err := s.users.ListUsers()
	if err != nil {
		return nil, err
	}
	addable := make([]*models.User, 0, len(users))
	for _, u := range users {
		if !taken[u.ID] {
			addable = append(addable, u)
		}
	}
	return addable, nil
}

// AddNote attaches a note to a reservation, gated like guest adds by the
// parent reservation's editability
func (s *ReservationService) AddNote(user *models.User, reservationID int64, body string) (*models.Note, error) {
	res, err := s.Get(reservationID)
	if err != nil {
		return nil, err
	}
	if !res.EditableBy(user) {
		return nil, ErrForbidden
	}
	if err := validation.ValidateRequiredText("body", body, "Note"); err != nil {
		return nil, err
	}
	if err := validation.ValidateTextLength("body", body, 2000, "Note"); err != nil {
		return nil, err
	}

	n := &models.Note{
		ReservationID: reservationID,
		Body:          body,
		CreatedBy:     user.ID,
	}
	if err := s.reservations.AddNote(n); err != nil {
		return nil, err
	}
	return n, nil
}

// RemoveNote deletes a note; only its author or an admin may
func (s *ReservationService) RemoveNote(user *models.User, noteID int64) error {
	n, err := s.reservations.GetNote(noteID)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNotFound
	}
	if !n.RemovableBy(user) {
		return ErrForbidden
	}
	return s.reservations.DeleteNote(noteID)
}

// IsNotFound reports whether err is the service's not-found sentinel
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
