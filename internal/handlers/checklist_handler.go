package handlers

import (
	"html/template"
	"net/http"

	"sunescape/internal/models"
	"sunescape/internal/security"
	"sunescape/internal/service"
)

// ChecklistHandler serves the shared grocery and todo lists
type ChecklistHandler struct {
	checklists *service.ChecklistService
	csrf       *security.CSRFGenerator
	templates  *template.Template
}

// NewChecklistHandler creates a new checklist handler
func NewChecklistHandler(checklists *service.ChecklistService, csrf *security.CSRFGenerator, templates *template.Template) *ChecklistHandler {
	return &ChecklistHandler{checklists: checklists, csrf: csrf, templates: templates}
}

// Show renders both lists on one page
func (h *ChecklistHandler) Show(w http.ResponseWriter, r *http.Request) {
	groceries, err := h.checklists.List(models.ListGroceries)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to load groceries", err)
		return
	}
	todos, err := h.checklists.List(models.ListTodos)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to load todos", err)
		return
	}

	data := struct {
		basePage
		Groceries []*models.ChecklistItem
		Todos     []*models.ChecklistItem
	}{
		basePage:  newBasePage(r, h.csrf, "Lists"),
		Groceries: groceries,
		Todos:     todos,
	}

	if err := h.templates.ExecuteTemplate(w, tmplLists, data); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "template render failed", err)
	}
}

// Add appends an item to one list
func (h *ChecklistHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	kind, ok := listKind(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form", "", err)
		return
	}
	if _, err := h.checklists.Add(user, kind, r.FormValue("title"), r.FormValue("owner")); err != nil {
		redirectWithError(w, r, "/lists", err)
		return
	}
	http.Redirect(w, r, "/lists", http.StatusSeeOther)
}

// Toggle flips an item's completed state
func (h *ChecklistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	kind, ok := listKind(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.checklists.Toggle(user, kind, id); err != nil {
		redirectWithError(w, r, "/lists", err)
		return
	}
	http.Redirect(w, r, "/lists", http.StatusSeeOther)
}

// Delete removes an item
func (h *ChecklistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	kind, ok := listKind(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.checklists.Remove(user, kind, id); err != nil {
		redirectWithError(w, r, "/lists", err)
		return
	}
	http.Redirect(w, r, "/lists", http.StatusSeeOther)
}

// ClearDone removes every completed item from one list
func (h *ChecklistHandler) ClearDone(w http.ResponseWriter, r *http.Request) {
	kind, ok := listKind(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, err := h.checklists.ClearDone(kind); err != nil {
		redirectWithError(w, r, "/lists", err)
		return
	}
	redirectWithSuccess(w, r, "/lists", "Completed items cleared.")
}

// listKind validates the {kind} path segment
func listKind(r *http.Request) (string, bool) {
	kind := r.PathValue("kind")
	if kind != models.ListGroceries && kind != models.ListTodos {
		return "", false
	}
	return kind, true
}
