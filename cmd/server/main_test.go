package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"sunescape/internal/calendar"
	"sunescape/internal/models"
)

func TestClampAvailable(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-2, 0},
		{-1, 0},
		{0, 0},
		{3, 3},
	}
	for _, tt := range tests {
		if got := clampAvailable(tt.in); got != tt.want {
			t.Errorf("clampAvailable(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDashboardShowsOverbookedDaysAsZeroFree(t *testing.T) {
	templates, err := loadTemplates("../../internal/templates")
	if err != nil {
		t.Fatalf("loadTemplates failed: %v", err)
	}

	// Two stays overlap on June 2nd and together want 7 of the 5 rooms
	bookings := []calendar.Booking{
		{StartDate: "2026-06-01", EndDate: "2026-06-03", Rooms: 4},
		{StartDate: "2026-06-02", EndDate: "2026-06-04", Rooms: 3},
	}
	grid := calendar.BuildMonth(2026, time.June, bookings, 5, "2026-06-15")

	data := struct {
		Title           string
		User            *models.User
		CSRFToken       string
		Error           string
		Success         string
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
		Title:      grid.Label(),
		User:       &models.User{ID: 1, Email: "anna@example.com"},
		Month:      grid,
		TotalRooms: 5,
		PrevYear:   2026,
		PrevMonth:  5,
		NextYear:   2026,
		NextMonth:  7,
	}

	var out bytes.Buffer
	if err := templates.ExecuteTemplate(&out, "dashboard.tmpl", data); err != nil {
		t.Fatalf("Failed to render dashboard: %v", err)
	}
	html := out.String()

	if strings.Contains(html, "-2 free") {
		t.Error("Overbooked day rendered a negative room count")
	}
	if !strings.Contains(html, "0 free") {
		t.Error("Overbooked day should display as 0 free")
	}
	// The cell class still reflects the real deficit
	if !strings.Contains(html, "overbooked") {
		t.Error("Overbooked day lost its marker class")
	}
}
