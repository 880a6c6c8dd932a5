package calendar

import (
	"testing"
	"time"
)

func TestToISOZeroPads(t *testing.T) {
	got := ToISO(time.Date(2026, time.March, 7, 15, 30, 0, 0, time.UTC))
	if got != "2026-03-07" {
		t.Errorf("ToISO() = %q, want %q", got, "2026-03-07")
	}
}

func TestParseISORoundTrip(t *testing.T) {
	dates := []string{"2026-01-01", "2026-02-28", "2026-12-31", "2024-02-29"}
	for _, d := range dates {
		parsed, err := ParseISO(d)
		if err != nil {
			t.Fatalf("ParseISO(%q) error: %v", d, err)
		}
		if got := ToISO(parsed); got != d {
			t.Errorf("round trip of %q = %q", d, got)
		}
	}
}

func TestParseISORejectsGarbage(t *testing.T) {
	for _, d := range []string{"", "2026-13-01", "not-a-date", "2026-02-30"} {
		if _, err := ParseISO(d); err == nil {
			t.Errorf("ParseISO(%q) expected error", d)
		}
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		date string
		n    int
		want string
	}{
		{"2026-06-01", 1, "2026-06-02"},
		{"2026-06-30", 1, "2026-07-01"},
		{"2026-12-31", 1, "2027-01-01"},
		{"2026-03-01", -1, "2026-02-28"},
		{"2026-06-15", 0, "2026-06-15"},
	}
	for _, tt := range tests {
		got, err := AddDays(tt.date, tt.n)
		if err != nil {
			t.Fatalf("AddDays(%q, %d) error: %v", tt.date, tt.n, err)
		}
		if got != tt.want {
			t.Errorf("AddDays(%q, %d) = %q, want %q", tt.date, tt.n, got, tt.want)
		}
	}
}

func TestBookingCoversInclusiveBounds(t *testing.T) {
	b := Booking{StartDate: "2026-06-01", EndDate: "2026-06-03", Rooms: 2}

	tests := []struct {
		day  string
		want bool
	}{
		{"2026-05-31", false},
		{"2026-06-01", true},
		{"2026-06-02", true},
		{"2026-06-03", true},
		{"2026-06-04", false},
	}
	for _, tt := range tests {
		if got := b.Covers(tt.day); got != tt.want {
			t.Errorf("Covers(%q) = %v, want %v", tt.day, got, tt.want)
		}
	}
}

func TestRoomsUsedOnOverlap(t *testing.T) {
	bookings := []Booking{
		{StartDate: "2026-06-01", EndDate: "2026-06-03", Rooms: 3},
		{StartDate: "2026-06-02", EndDate: "2026-06-04", Rooms: 2},
	}

	tests := []struct {
		day  string
		want int
	}{
		{"2026-05-31", 0},
		{"2026-06-01", 3},
		{"2026-06-02", 5},
		{"2026-06-03", 5},
		{"2026-06-04", 2},
		{"2026-06-05", 0},
	}
	for _, tt := range tests {
		if got := RoomsUsedOn(bookings, tt.day); got != tt.want {
			t.Errorf("RoomsUsedOn(%q) = %d, want %d", tt.day, got, tt.want)
		}
	}
}

func TestRoomsFreeOnCanGoNegative(t *testing.T) {
	bookings := []Booking{
		{StartDate: "2026-06-01", EndDate: "2026-06-05", Rooms: 4},
		{StartDate: "2026-06-03", EndDate: "2026-06-05", Rooms: 3},
	}
	if got := RoomsFreeOn(bookings, "2026-06-04", 5); got != -2 {
		t.Errorf("RoomsFreeOn() = %d, want -2", got)
	}
}

func TestMinFreeInRange(t *testing.T) {
	bookings := []Booking{
		{StartDate: "2026-06-01", EndDate: "2026-06-03", Rooms: 3},
		{StartDate: "2026-06-02", EndDate: "2026-06-04", Rooms: 2},
	}
	got, err := MinFreeInRange(bookings, "2026-06-01", "2026-06-05", 5)
	if err != nil {
		t.Fatalf("MinFreeInRange() error: %v", err)
	}
	if got != 0 {
		t.Errorf("MinFreeInRange() = %d, want 0", got)
	}

	got, err = MinFreeInRange(nil, "2026-06-01", "2026-06-02", 5)
	if err != nil {
		t.Fatalf("MinFreeInRange() error: %v", err)
	}
	if got != 5 {
		t.Errorf("MinFreeInRange() on empty bookings = %d, want 5", got)
	}
}

func TestBuildMonthMondayAlignment(t *testing.T) {
	// June 2026 starts on a Monday: no leading pad, 30 days pad to 35 cells.
	m := BuildMonth(2026, time.June, nil, 5, "2026-06-10")
	if len(m.Days) != 35 {
		t.Fatalf("June 2026 grid has %d cells, want 35", len(m.Days))
	}
	if m.Days[0].Date != "2026-06-01" {
		t.Errorf("first cell = %q, want 2026-06-01", m.Days[0].Date)
	}
	if m.Days[0].DayOfWeek != time.Monday {
		t.Errorf("first cell weekday = %v, want Monday", m.Days[0].DayOfWeek)
	}
	if !m.Days[9].IsToday {
		t.Errorf("cell for 2026-06-10 not marked today")
	}

	// August 2026 starts on a Saturday: five leading pad cells from July.
	m = BuildMonth(2026, time.August, nil, 5, "")
	if len(m.Days) != 42 {
		t.Fatalf("August 2026 grid has %d cells, want 42", len(m.Days))
	}
	if m.Days[0].Date != "2026-07-27" {
		t.Errorf("first cell = %q, want 2026-07-27", m.Days[0].Date)
	}
	if m.Days[0].InMonth {
		t.Errorf("July pad cell marked in-month")
	}
	if !m.Days[5].InMonth || m.Days[5].Date != "2026-08-01" {
		t.Errorf("cell 5 = %q inMonth=%v, want 2026-08-01 in-month", m.Days[5].Date, m.Days[5].InMonth)
	}
}

func TestBuildMonthOccupancy(t *testing.T) {
	bookings := []Booking{
		{StartDate: "2026-06-01", EndDate: "2026-06-03", Rooms: 3},
		{StartDate: "2026-06-02", EndDate: "2026-06-04", Rooms: 2},
	}
	m := BuildMonth(2026, time.June, bookings, 5, "")
	if m.Days[1].RoomsUsed != 5 || m.Days[1].RoomsFree != 0 {
		t.Errorf("2026-06-02 used=%d free=%d, want 5/0", m.Days[1].RoomsUsed, m.Days[1].RoomsFree)
	}
	if m.Days[4].RoomsUsed != 0 || m.Days[4].RoomsFree != 5 {
		t.Errorf("2026-06-05 used=%d free=%d, want 0/5", m.Days[4].RoomsUsed, m.Days[4].RoomsFree)
	}
}

func TestMonthWeeks(t *testing.T) {
	m := BuildMonth(2026, time.June, nil, 5, "")
	weeks := m.Weeks()
	if len(weeks) != 5 {
		t.Fatalf("Weeks() returned %d rows, want 5", len(weeks))
	}
	for i, w := range weeks {
		if len(w) != 7 {
			t.Errorf("week %d has %d days", i, len(w))
		}
	}
}

func TestNextPrevMonth(t *testing.T) {
	if y, m := NextMonth(2026, time.December); y != 2027 || m != time.January {
		t.Errorf("NextMonth(Dec 2026) = %v %d", m, y)
	}
	if y, m := PrevMonth(2026, time.January); y != 2025 || m != time.December {
		t.Errorf("PrevMonth(Jan 2026) = %v %d", m, y)
	}
	if y, m := NextMonth(2026, time.June); y != 2026 || m != time.July {
		t.Errorf("NextMonth(Jun 2026) = %v %d", m, y)
	}
}
