// Package calendar implements the date arithmetic behind the availability
// views. Dates are handled as ISO strings (YYYY-MM-DD) throughout, which
// compare correctly as plain strings and sidestep timezone drift.
package calendar

import (
	"fmt"
	"time"
)

// ISODate is a calendar day in YYYY-MM-DD form.
type ISODate = string

// ToISO formats a time as a zero-padded YYYY-MM-DD string.
func ToISO(t time.Time) ISODate {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseISO parses a YYYY-MM-DD string into a time at midnight UTC.
func ParseISO(s ISODate) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// AddDays returns the ISO date n days after d. n may be negative.
func AddDays(d ISODate, n int) (ISODate, error) {
	t, err := ParseISO(d)
	if err != nil {
		return "", err
	}
	return ToISO(t.AddDate(0, 0, n)), nil
}

// Booking is the slice of a reservation the calendar cares about:
// an inclusive date range and a room count.
type Booking struct {
	StartDate ISODate
	EndDate   ISODate
	Rooms     int
}

// Covers reports whether day falls within the booking's inclusive range.
// Both the arrival and departure day count as occupied.
func (b Booking) Covers(day ISODate) bool {
	return b.StartDate <= day && day <= b.EndDate
}

// RoomsUsedOn sums the rooms held by every booking covering the given day.
// The sum is not clamped to the house capacity; overlapping bookings can
// push it past the total and callers decide how to present that.
func RoomsUsedOn(bookings []Booking, day ISODate) int {
	used := 0
	for _, b := range bookings {
		if b.Covers(day) {
			used += b.Rooms
		}
	}
	return used
}

// RoomsFreeOn returns totalRooms minus the rooms in use on the given day.
// The result may be negative when the house is overbooked.
func RoomsFreeOn(bookings []Booking, day ISODate, totalRooms int) int {
	return totalRooms - RoomsUsedOn(bookings, day)
}

// MinFreeInRange returns the smallest number of free rooms across every day
// of the inclusive range. This is what a new reservation has to fit into.
func MinFreeInRange(bookings []Booking, start, end ISODate, totalRooms int) (int, error) {
	t, err := ParseISO(start)
	if err != nil {
		return 0, err
	}
	last, err := ParseISO(end)
	if err != nil {
		return 0, err
	}
	min := totalRooms
	for !t.After(last) {
		free := RoomsFreeOn(bookings, ToISO(t), totalRooms)
		if free < min {
			min = free
		}
		t = t.AddDate(0, 0, 1)
	}
	return min, nil
}

// Day is one cell of the month grid.
type Day struct {
	Date      ISODate
	DayOfWeek time.Weekday
	InMonth   bool
	RoomsUsed int
	RoomsFree int
	IsToday   bool
}

// Month is a Monday-aligned month grid padded to whole weeks.
type Month struct {
	Year  int
	Month time.Month
	Days  []Day
}

// Label returns the month heading, e.g. "June 2026".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Weeks splits the padded day grid into rows of seven.
func (m Month) Weeks() [][]Day {
	weeks := make([][]Day, 0, len(m.Days)/7)
	for i := 0; i+7 <= len(m.Days); i += 7 {
		weeks = append(weeks, m.Days[i:i+7])
	}
	return weeks
}

// BuildMonth lays out the given month as a Monday-first grid. Leading and
// trailing cells from the neighbouring months fill the grid out to whole
// weeks and carry InMonth=false. Occupancy is computed per cell from the
// supplied bookings; today marks the cell matching the supplied date.
func BuildMonth(year int, month time.Month, bookings []Booking, totalRooms int, today ISODate) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Weekday is Sunday-based; shift so Monday lands on offset 0.
	startOffset := (int(first.Weekday()) + 6) % 7
	totalCells := ((startOffset + daysInMonth + 6) / 7) * 7

	days := make([]Day, 0, totalCells)
	cursor := first.AddDate(0, 0, -startOffset)
	for i := 0; i < totalCells; i++ {
		iso := ToISO(cursor)
		used := RoomsUsedOn(bookings, iso)
		days = append(days, Day{
			Date:      iso,
			DayOfWeek: cursor.Weekday(),
			InMonth:   cursor.Month() == month,
			RoomsUsed: used,
			RoomsFree: totalRooms - used,
			IsToday:   iso == today,
		})
		cursor = cursor.AddDate(0, 0, 1)
	}

	return Month{Year: year, Month: month, Days: days}
}

// NextMonth returns the year/month following the given one.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// PrevMonth returns the year/month preceding the given one.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}
