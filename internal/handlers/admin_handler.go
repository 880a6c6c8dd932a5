package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"sunescape/internal/models"
	"sunescape/internal/security"
	"sunescape/internal/service"
)

// AdminHandler serves the admin-only settings page
type AdminHandler struct {
	settings  *service.SettingsService
	csrf      *security.CSRFGenerator
	templates *template.Template
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(settings *service.SettingsService, csrf *security.CSRFGenerator, templates *template.Template) *AdminHandler {
	return &AdminHandler{settings: settings, csrf: csrf, templates: templates}
}

// ShowSettings renders the house configuration form
func (h *AdminHandler) ShowSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get()
	if err != nil {
		respondWithError(w, statusForError(err), userMessageFor(err), "failed to load settings", err)
		return
	}

	data := struct {
		basePage
		Settings *models.Settings
	}{
		basePage: newBasePage(r, h.csrf, "Settings"),
		Settings: settings,
	}

	if err := h.templates.ExecuteTemplate(w, tmplSettings, data); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "template render failed", err)
	}
}

// UpdateSettings saves the house configuration
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form", "", err)
		return
	}

	totalRooms, _ := strconv.Atoi(r.FormValue("total_rooms"))
	if err := h.settings.UpdateTotalRooms(user, totalRooms); err != nil {
		redirectWithError(w, r, "/admin/settings", err)
		return
	}
	redirectWithSuccess(w, r, "/admin/settings", "Settings saved.")
}
