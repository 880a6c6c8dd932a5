package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"sunescape/internal/models"
	"sunescape/internal/security"
	"sunescape/internal/service"
)

// InviteHandler serves the invite inbox and the accept/decline forms
type InviteHandler struct {
	invites      *service.InviteService
	reservations *service.ReservationService
	csrf         *security.CSRFGenerator
	templates    *template.Template
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(
	invites *service.InviteService,
	reservations *service.ReservationService,
	csrf *security.CSRFGenerator,
	templates *template.Template,
) *InviteHandler {
	return &InviteHandler{
		invites:      invites,
		reservations: reservations,
		csrf:         csrf,
		templates:    templates,
	}
}

// Inbox lists the invites still waiting on the member
func (h *InviteHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	inbox, err := h.invites.Inbox(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to load invite inbox", err)
		return
	}
	totalRooms, err := h.reservations.TotalRooms()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to load settings", err)
		return
	}

	data := struct {
		basePage
		Inbox      []*models.InboxInvite
		TotalRooms int
	}{
		basePage:   newBasePage(r, h.csrf, "Invites"),
		Inbox:      inbox,
		TotalRooms: totalRooms,
	}

	if err := h.templates.ExecuteTemplate(w, tmplInvites, data); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "template render failed", err)
	}
}

// Accept books the member in over the invite's dates
func (h *InviteHandler) Accept(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form", "", err)
		return
	}

	rooms, _ := strconv.Atoi(r.FormValue("rooms_count"))
	res, err := h.invites.Accept(user, id, rooms)
	if err != nil {
		redirectWithError(w, r, "/invites", err)
		return
	}
	redirectWithSuccess(w, r, reservationPath(res.ID), "You're in. Your stay is booked.")
}

// Decline records a no
func (h *InviteHandler) Decline(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.invites.Decline(user, id); err != nil {
		redirectWithError(w, r, "/invites", err)
		return
	}
	redirectWithSuccess(w, r, "/invites", "Invite declined.")
}
