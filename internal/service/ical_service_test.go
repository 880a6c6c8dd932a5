package service

import (
	"strings"
	"testing"
	"time"

	"sunescape/internal/models"
)

func TestICalRender(t *testing.T) {
	svc := NewICalService("SunEscape", "https://house.example.com")

	reservations := []*models.Reservation{
		{
			ID:         7,
			UserID:     1,
			Name:       "Midsummer week",
			StartDate:  "2026-06-01",
			EndDate:    "2026-06-03",
			RoomsCount: 2,
			Occasion:   "Midsummer",
			CreatedAt:  time.Date(2026, time.May, 20, 10, 0, 0, 0, time.UTC),
			OwnerName:  "Anna",
		},
	}

	out, err := svc.Render(reservations)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"reservation-7@SunEscape",
		"Midsummer week: Anna (2 room(s))",
		"DESCRIPTION:Midsummer",
		"20260601",
		// inclusive end 2026-06-03 becomes an exclusive DTEND of the 4th
		"20260604",
		"END:VCALENDAR",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("feed missing %q", want)
		}
	}
}

func TestICalRenderRejectsBadDates(t *testing.T) {
	svc := NewICalService("SunEscape", "https://house.example.com")
	_, err := svc.Render([]*models.Reservation{{ID: 1, StartDate: "garbage", EndDate: "2026-06-03"}})
	if err == nil {
		t.Error("expected error for unparseable start date")
	}
}

func TestICalEmptyFeed(t *testing.T) {
	svc := NewICalService("SunEscape", "https://house.example.com")
	out, err := svc.Render(nil)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if strings.Contains(out, "BEGIN:VEVENT") {
		t.Error("empty feed should carry no events")
	}
}
