package handlers

import (
	"html/template"
	"net/http"
	"strconv"
	"time"

	"sunescape/internal/calendar"
	"sunescape/internal/models"
	"sunescape/internal/security"
	"sunescape/internal/service"
)

// CalendarHandler serves the availability dashboard and the iCal feed
type CalendarHandler struct {
	reservations *service.ReservationService
	invites      *service.InviteService
	requests     *service.JoinRequestService
	ical         *service.ICalService
	csrf         *security.CSRFGenerator
	templates    *template.Template
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(
	reservations *service.ReservationService,
	invites *service.InviteService,
	requests *service.JoinRequestService,
	ical *service.ICalService,
	csrf *security.CSRFGenerator,
	templates *template.Template,
) *CalendarHandler {
	return &CalendarHandler{
		reservations: reservations,
		invites:      invites,
		requests:     requests,
		ical:         ical,
		csrf:         csrf,
		templates:    templates,
	}
}

// Dashboard renders the month grid with the reservation list and the
// member's open invites and requests
func (h *CalendarHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	year, month := monthFromQuery(r)
	grid, err := h.reservations.MonthView(year, month)
	if err != nil {
		respondWithError(w, statusForError(err), userMessageFor(err), "failed to build month view", err)
		return
	}

	reservations, err := h.reservations.List()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to list reservations", err)
		return
	}

	inbox, err := h.invites.Inbox(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to load invite inbox", err)
		return
	}

	pending, err := h.requests.PendingForOwner(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to load pending requests", err)
		return
	}

	totalRooms, err := h.reservations.TotalRooms()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to load settings", err)
		return
	}

	prevYear, prevMonth := calendar.PrevMonth(year, month)
	nextYear, nextMonth := calendar.NextMonth(year, month)

	data := struct {
		basePage
		Month           calendar.Month
		TotalRooms      int
		Reservations    []*models.Reservation
		InviteInbox     []*models.InboxInvite
		PendingRequests []*models.JoinRequest
		PrevYear        int
		PrevMonth       int
		NextYear        int
		NextMonth       int
	}{
		basePage:        newBasePage(r, h.csrf, grid.Label()),
		Month:           grid,
		TotalRooms:      totalRooms,
		Reservations:    reservations,
		InviteInbox:     inbox,
		PendingRequests: pending,
		PrevYear:        prevYear,
		PrevMonth:       int(prevMonth),
		NextYear:        nextYear,
		NextMonth:       int(nextMonth),
	}

	if err := h.templates.ExecuteTemplate(w, tmplDashboard, data); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "template render failed", err)
	}
}

// ICalFeed serves every reservation as an iCalendar download
func (h *CalendarHandler) ICalFeed(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.reservations.List()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to list reservations", err)
		return
	}

	feed, err := h.ical.Render(reservations)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to render ical feed", err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+h.ical.FeedFilename()+`"`)
	_, _ = w.Write([]byte(feed))
}

// monthFromQuery reads year/month query parameters, defaulting to now
func monthFromQuery(r *http.Request) (int, time.Month) {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y >= 1970 && y <= 9999 {
		year = y
	}
	if m, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil && m >= 1 && m <= 12 {
		month = time.Month(m)
	}
	return year, month
}
