package service

import (
	"sunescape/internal/models"
	"sunescape/internal/repository"
	"sunescape/internal/validation"
)

// SettingsService handles the admin-only house configuration
type SettingsService struct {
	settings *repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settings *repository.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// Get returns the house settings
func (s *SettingsService) Get() (*models.Settings, error) {
	settings, err := s.settings.GetSettings()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, ErrNotFound
	}
	return settings, nil
}

// UpdateTotalRooms changes the house capacity. Admin only; shrinking the
// house below existing bookings is allowed and shows up as negative
// availability on the calendar.
func (s *SettingsService) UpdateTotalRooms(user *models.User, totalRooms int) error {
	if !user.IsAdmin {
		return ErrNotAdmin
	}
	if totalRooms < 1 {
		return &validation.ValidationError{
			Field:   "total_rooms",
			Message: "Total rooms must be at least 1.",
		}
	}
	return s.settings.UpdateTotalRooms(totalRooms, user.ID)
}
