package service

import (
	"strings"

	"sunescape/internal/models"
	"sunescape/internal/repository"
	"sunescape/internal/validation"
)

// ChecklistService handles the shared grocery and todo lists
type ChecklistService struct {
	items *repository.ChecklistRepository
}

// NewChecklistService creates a new checklist service
func NewChecklistService(items *repository.ChecklistRepository) *ChecklistService {
	return &ChecklistService{items: items}
}

// Add appends an item to the named list. Owner is an optional free-text
// claim on who handles it.
func (s *ChecklistService) Add(user *models.User, kind, title, owner string) (*models.ChecklistItem, error) {
	title = strings.TrimSpace(title)
	owner = strings.TrimSpace(owner)
	if err := validation.ValidateRequiredText("title", title, "Item"); err != nil {
		return nil, err
	}
	if err := validation.ValidateTextLength("title", title, 500, "Item"); err != nil {
		return nil, err
	}
	if err := validation.ValidateTextLength("owner", owner, 200, "Owner"); err != nil {
		return nil, err
	}
	return s.items.AddItem(kind, title, owner, user.ID)
}

// List returns the named list's items
func (s *ChecklistService) List(kind string) ([]*models.ChecklistItem, error) {
	return s.items.ListItems(kind)
}

// Toggle flips an item's completed state; only whoever added it or an
// admin may
func (s *ChecklistService) Toggle(user *models.User, kind string, id int64) error {
	item, err := s.items.GetItem(kind, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}
	if !item.EditableBy(user) {
		return ErrForbidden
	}
	return s.items.SetItemCompleted(kind, id, !item.Completed)
}

// Remove deletes an item; only whoever added it or an admin may
func (s *ChecklistService) Remove(user *models.User, kind string, id int64) error {
	item, err := s.items.GetItem(kind, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}
	if !item.EditableBy(user) {
		return ErrForbidden
	}
	return s.items.DeleteItem(kind, id)
}

// ClearDone removes every completed item from the named list
func (s *ChecklistService) ClearDone(kind string) (int64, error) {
	return s.items.ClearDone(kind)
}
