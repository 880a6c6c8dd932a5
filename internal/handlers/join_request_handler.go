package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"sunescape/internal/models"
	"sunescape/internal/security"
	"sunescape/internal/service"
)

// JoinRequestHandler serves the requests page and the request/decision
// forms
type JoinRequestHandler struct {
	requests     *service.JoinRequestService
	reservations *service.ReservationService
	csrf         *security.CSRFGenerator
	templates    *template.Template
}

// NewJoinRequestHandler creates a new join request handler
func NewJoinRequestHandler(
	requests *service.JoinRequestService,
	reservations *service.ReservationService,
	csrf *security.CSRFGenerator,
	templates *template.Template,
) *JoinRequestHandler {
	return &JoinRequestHandler{
		requests:     requests,
		reservations: reservations,
		csrf:         csrf,
		templates:    templates,
	}
}

// Show lists requests awaiting the member's decision and the ones they
// filed themselves
func (h *JoinRequestHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	pending, err := h.requests.PendingForOwner(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to load pending requests", err)
		return
	}
	mine, err := h.requests.Mine(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to load own requests", err)
		return
	}

	data := struct {
		basePage
		Pending []*models.JoinRequest
		Mine    []*models.JoinRequest
	}{
		basePage: newBasePage(r, h.csrf, "Join requests"),
		Pending:  pending,
		Mine:     mine,
	}

	if err := h.templates.ExecuteTemplate(w, tmplRequests, data); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "template render failed", err)
	}
}

// Create files a request to join someone else's stay
func (h *JoinRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	reservationID, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form", "", err)
		return
	}

	rooms, _ := strconv.Atoi(r.FormValue("rooms_needed"))
	if _, err := h.requests.Request(user, reservationID, rooms, r.FormValue("message")); err != nil {
		redirectWithError(w, r, reservationPath(reservationID), err)
		return
	}
	redirectWithSuccess(w, r, reservationPath(reservationID), "Request sent. The owner will get back to you.")
}

// Approve settles a request in the requester's favour
func (h *JoinRequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.requests.Approve, "Request approved.")
}

// Deny settles a request against the requester
func (h *JoinRequestHandler) Deny(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.requests.Deny, "Request denied.")
}

func (h *JoinRequestHandler) decide(w http.ResponseWriter, r *http.Request, settle func(*models.User, int64) error, msg string) {
	user := GetUserFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	target := r.FormValue("return_to")
	if target == "" || target[0] != '/' {
		target = "/requests"
	}
	if err := settle(user, id); err != nil {
		redirectWithError(w, r, target, err)
		return
	}
	redirectWithSuccess(w, r, target, msg)
}
