package repository

import (
	"database/sql"
	"fmt"

	"sunescape/internal/database"
	"sunescape/internal/models"
)

// SettingsRepository handles the single house-settings row
type SettingsRepository struct {
	db database.DBTX
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db database.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSettings retrieves the settings row
func (r *SettingsRepository) GetSettings() (*models.Settings, error) {
	query := "SELECT id, total_rooms, updated_by, updated_at FROM settings WHERE id = 1"
	s := &models.Settings{}
	err := r.db.QueryRow(query).Scan(&s.ID, &s.TotalRooms, &s.UpdatedBy, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return s, nil
}

// UpdateTotalRooms changes the house room count, recording who did it
func (r *SettingsRepository) UpdateTotalRooms(totalRooms int, updatedBy int64) error {
	query := "UPDATE settings SET total_rooms = ?, updated_by = ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1"
	if _, err := r.db.Exec(query, totalRooms, updatedBy); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}

// EnsureDefaults inserts the settings row if the migration seed is
// missing, e.g. on databases restored from partial backups
func (r *SettingsRepository) EnsureDefaults(totalRooms int) error {
	existing, err := r.GetSettings()
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	query := "INSERT INTO settings (id, total_rooms) VALUES (1, ?)"
	if _, err := r.db.Exec(query, totalRooms); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	return nil
}
