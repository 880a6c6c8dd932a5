package models

import "time"

// Checklist kinds. Each kind is backed by its own table but shares the
// same shape and behaviour.
const (
	ListGroceries = "groceries"
	ListTodos     = "todos"
)

// ChecklistItem is one entry on a shared household list. Owner is an
// optional free-text claim ("Sam brings this"), not a user reference.
type ChecklistItem struct {
	ID        int64
	Title     string
	Owner     string
	Completed bool
	CreatedBy int64
	CreatedAt time.Time

	CreatorName string
}

// EditableBy reports whether the user may change or remove the item:
// whoever added it, or an admin.
func (c *ChecklistItem) EditableBy(u *User) bool {
	if u == nil {
		return false
	}
	return c.CreatedBy == u.ID || u.IsAdmin
}
