package service

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"sunescape/internal/calendar"
	"sunescape/internal/models"
)

// ICalService renders the house bookings as an iCalendar feed so members
// can subscribe from their own calendar apps
type ICalService struct {
	appName    string
	appBaseURL string
}

// NewICalService creates a new iCal service
func NewICalService(appName, appBaseURL string) *ICalService {
	return &ICalService{appName: appName, appBaseURL: appBaseURL}
}

// Render produces the feed. Stays become all-day events; the DTEND is
// exclusive per RFC 5545, so it lands one day past the inclusive end.
func (s *ICalService) Render(reservations []*models.Reservation) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(fmt.Sprintf("-//%s//EN", s.appName))
	cal.SetName(s.appName)

	for _, r := range reservations {
		start, err := calendar.ParseISO(r.StartDate)
		if err != nil {
			return "", fmt.Errorf("bad start date on reservation %d: %w", r.ID, err)
		}
		end, err := calendar.ParseISO(r.EndDate)
		if err != nil {
			return "", fmt.Errorf("bad end date on reservation %d: %w", r.ID, err)
		}

		event := cal.AddEvent(fmt.Sprintf("reservation-%d@%s", r.ID, s.appName))
		event.SetCreatedTime(r.CreatedAt)
		event.SetDtStampTime(r.CreatedAt)
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(end.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("%s: %s (%d room(s))", r.Name, r.OwnerName, r.RoomsCount))
		if r.Occasion != "" {
			event.SetDescription(r.Occasion)
		}
		event.SetURL(fmt.Sprintf("%s/reservations/%d", s.appBaseURL, r.ID))
	}

	return cal.Serialize(), nil
}

// FeedFilename names the downloaded file
func (s *ICalService) FeedFilename() string {
	return fmt.Sprintf("%s-%s.ics", s.appName, time.Now().Format("2006-01"))
}
