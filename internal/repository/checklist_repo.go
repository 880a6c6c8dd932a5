package repository

import (
	"database/sql"
	"fmt"

	"sunescape/internal/database"
	"sunescape/internal/models"
)

// checklistTables maps a list kind to its backing table. Kinds outside
// this map are rejected before any SQL is built.
var checklistTables = map[string]string{
	models.ListGroceries: "groceries",
	models.ListTodos:     "todos",
}

// ChecklistRepository handles database operations for the shared
// grocery and todo lists, which share a schema
type ChecklistRepository struct {
	db database.DBTX
}

// NewChecklistRepository creates a new checklist repository
func NewChecklistRepository(db database.DBTX) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

func checklistTable(kind string) (string, error) {
	table, ok := checklistTables[kind]
	if !ok {
		return "", fmt.Errorf("unknown checklist kind: %s", kind)
	}
	return table, nil
}

// AddItem appends an item to the list
func (r *ChecklistRepository) AddItem(kind, title, owner string, createdBy int64) (*models.ChecklistItem, error) {
	table, err := checklistTable(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("INSERT INTO %s (title, owner, created_by) VALUES (?, ?, ?)", table)
	id, err := r.db.ExecReturningID(query, title, owner, createdBy)
	if err != nil {
		return nil, fmt.Errorf("failed to add %s item: %w", kind, err)
	}
	return &models.ChecklistItem{ID: id, Title: title, Owner: owner, CreatedBy: createdBy}, nil
}

// GetItem retrieves one list item
func (r *ChecklistRepository) GetItem(kind string, id int64) (*models.ChecklistItem, error) {
	table, err := checklistTable(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT id, title, COALESCE(owner, ''), completed, created_by, created_at FROM %s WHERE id = ?", table)
	item := &models.ChecklistItem{}
	err = r.db.QueryRow(query, id).Scan(&item.ID, &item.Title, &item.Owner, &item.Completed, &item.CreatedBy, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s item: %w", kind, err)
	}
	return item, nil
}

// ListItems returns the list's items, newest first
func (r *ChecklistRepository) ListItems(kind string) ([]*models.ChecklistItem, error) {
	table, err := checklistTable(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT i.id, i.title, COALESCE(i.owner, ''), i.completed, i.created_by, i.created_at,
			COALESCE(u.first_name, COALESCE(u.full_name, u.email)) AS creator_name
		FROM %s i
		JOIN users u ON u.id = i.created_by
		ORDER BY i.created_at DESC, i.id DESC
	`, table)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s items: %w", kind, err)
	}
	defer rows.Close()

	var items []*models.ChecklistItem
	for rows.Next() {
		item := &models.ChecklistItem{}
		if err := rows.Scan(&item.ID, &item.Title, &item.Owner, &item.Completed, &item.CreatedBy, &item.CreatedAt, &item.CreatorName); err != nil {
			return nil, fmt.Errorf("failed to scan %s item: %w", kind, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// SetItemCompleted flips an item's completed flag
func (r *ChecklistRepository) SetItemCompleted(kind string, id int64, completed bool) error {
	table, err := checklistTable(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("UPDATE %s SET completed = ? WHERE id = ?", table)
	if _, err := r.db.Exec(query, completed, id); err != nil {
		return fmt.Errorf("failed to update %s item: %w", kind, err)
	}
	return nil
}

// DeleteItem removes an item from the list
func (r *ChecklistRepository) DeleteItem(kind string, id int64) error {
	table, err := checklistTable(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", table)
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete %s item: %w", kind, err)
	}
	return nil
}

// ClearDone removes every completed item from the list
func (r *ChecklistRepository) ClearDone(kind string) (int64, error) {
	table, err := checklistTable(kind)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE completed = ?", table)
	result, err := r.db.Exec(query, true)
	if err != nil {
		return 0, fmt.Errorf("failed to clear done %s items: %w", kind, err)
	}
	return result.RowsAffected()
}
