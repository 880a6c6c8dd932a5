package handlers

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"sunescape/internal/models"
	"sunescape/internal/security"
	"sunescape/internal/service"
)

// ReservationHandler serves the reservation pages and their guest and
// note sub-forms
type ReservationHandler struct {
	reservations *service.ReservationService
	requests     *service.JoinRequestService
	csrf         *security.CSRFGenerator
	templates    *template.Template
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(
	reservations *service.ReservationService,
	requests *service.JoinRequestService,
	csrf *security.CSRFGenerator,
	templates *template.Template,
) *ReservationHandler {
	return &ReservationHandler{
		reservations: reservations,
		requests:     requests,
		csrf:         csrf,
		templates:    templates,
	}
}

// Create books a new stay from the dashboard form
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form", "", err)
		return
	}

	broadcast := r.FormValue("broadcast") != ""

	res, err := h.reservations.Create(user, reservationInput(r), broadcast, r.FormValue("invite_message"))
	if err != nil {
		redirectWithError(w, r, "/dashboard", err)
		return
	}
	http.Redirect(w, r, "/reservations/"+strconv.FormatInt(res.ID, 10), http.StatusSeeOther)
}

// reservationInput collects the booking form fields
func reservationInput(r *http.Request) service.ReservationInput {
	rooms, _ := strconv.Atoi(r.FormValue("rooms_count"))
	return service.ReservationInput{
		Name:      r.FormValue("name"),
		StartDate: r.FormValue("start_date"),
		EndDate:   r.FormValue("end_date"),
		Rooms:     rooms,
		Occasion:  r.FormValue("occasion"),
		Guests:    r.FormValue("guests"),
	}
}

// Show renders one reservation with its guests, notes and invite state
func (h *ReservationHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	detail, err := h.reservations.Detail(id)
	if err != nil {
		respondWithError(w, statusForError(err), userMessageFor(err), "failed to load reservation", err)
		return
	}

	totalRooms, err := h.reservations.TotalRooms()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to load settings", err)
		return
	}

	var addable []*models.User
	if detail.Reservation.EditableBy(user) {
		addable, err = h.reservations.AddableUsers(user, id)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to list members", err)
			return
		}
	}

	requests, err := h.requests.ListForReservation(user, id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to load join requests", err)
		return
	}

	data := struct {
		basePage
		Detail       *service.ReservationDetail
		TotalRooms   int
		CanEdit      bool
		AddableUsers []*models.User
		JoinRequests []*models.JoinRequest
	}{
		basePage:     newBasePage(r, h.csrf, "Reservation"),
		Detail:       detail,
		TotalRooms:   totalRooms,
		CanEdit:      detail.Reservation.EditableBy(user),
		AddableUsers: addable,
		JoinRequests: requests,
	}

	if err := h.templates.ExecuteTemplate(w, tmplReservation, data); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "template render failed", err)
	}
}

// Update saves the edited stay
func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	if err := h.reservations.Update(user, id, reservationInput(r)); err != nil {
		redirectWithError(w, r, reservationPath(id), err)
		return
	}
	redirectWithSuccess(w, r, reservationPath(id), "Reservation updated.")
}

// AddGuest attaches a linked member or a free-text guest
func (h *ReservationHandler) AddGuest(w http.ResponseWriter, r *http.Request) {
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

	linkedUserID, _ := strconv.ParseInt(r.FormValue("user_id"), 10, 64)
	count, _ := strconv.Atoi(r.FormValue("count"))

	if _, err := h.reservations.AddGuest(user, id, linkedUserID, r.FormValue("name"), count); err != nil {
		redirectWithError(w, r, reservationPath(id), err)
		return
	}
	redirectWithSuccess(w, r, reservationPath(id), "Guest added.")
}

// RemoveGuest drops a guest entry
func (h *ReservationHandler) RemoveGuest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	guestID, err := pathID(r, "guestID")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.reservations.RemoveGuest(user, guestID); err != nil {
		redirectWithError(w, r, reservationPath(id), err)
		return
	}
	redirectWithSuccess(w, r, reservationPath(id), "Guest removed.")
}

// AddNote attaches a note
func (h *ReservationHandler) AddNote(w http.ResponseWriter, r *http.Request) {
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
	if _, err := h.reservations.AddNote(user, id, r.FormValue("body")); err != nil {
		redirectWithError(w, r, reservationPath(id), err)
		return
	}
	redirectWithSuccess(w, r, reservationPath(id), "Note added.")
}

// RemoveNote drops a note
func (h *ReservationHandler) RemoveNote(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	noteID, err := pathID(r, "noteID")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.reservations.RemoveNote(user, noteID); err != nil {
		redirectWithError(w, r, reservationPath(id), err)
		return
	}
	redirectWithSuccess(w, r, reservationPath(id), "Note removed.")
}

func reservationPath(id int64) string {
	return "/reservations/" + strconv.FormatInt(id, 10)
}

// pathID parses a numeric path segment
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

// redirectWithError sends the browser back with the failure as a flash
func redirectWithError(w http.ResponseWriter, r *http.Request, target string, err error) {
	http.Redirect(w, r, target+"?"+url.Values{"error": {userMessageFor(err)}}.Encode(), http.StatusSeeOther)
}

// redirectWithSuccess sends the browser on with a confirmation flash
func redirectWithSuccess(w http.ResponseWriter, r *http.Request, target, msg string) {
	http.Redirect(w, r, target+"?"+url.Values{"success": {msg}}.Encode(), http.StatusSeeOther)
}
