package models

import (
	"database/sql"
	"time"
)

// Settings is the single row of house-wide configuration. Only admins
// may change it.
type Settings struct {
	ID         int64 // always 1
	TotalRooms int
	UpdatedBy  sql.NullInt64
	UpdatedAt  time.Time
}
