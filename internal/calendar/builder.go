package calendar

import (
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"

	"github.com/tayuki/school-calendar-app/pkg/models"
)

// BuildEvent maps a validated candidate onto the calendar/v3 wire shape.
// It is pure; all I/O happens in the commit path.
//
// All-day events use date-only boundaries. The provider treats the end date
// as exclusive, so one day is added on the way out while the candidate keeps
// its inclusive end date for storage and display. Timed events concatenate
// date and time into a timestamp bound to the single configured zone.
func BuildEvent(e models.EventCandidate, timezone string) (*gcal.Event, error) {
	start, err := time.Parse(models.DateLayout, e.StartDate)
	if err != nil {
		return nil, fmt.Errorf("start_date %q is not a valid date: %w", e.StartDate, err)
	}

	endDate := e.EndDate
	if endDate == "" {
		endDate = e.StartDate
	}
	end, err := time.Parse(models.DateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("end_date %q is not a valid date: %w", endDate, err)
	}
	if end.Before(start) {
		end = start
		endDate = e.StartDate
	}

	event := &gcal.Event{
		Summary:     e.Title,
		Description: e.Description,
		Location:    e.Location,
	}

	if e.AllDay.Or(true) {
		event.Start = &gcal.EventDateTime{Date: e.StartDate}
		event.End = &gcal.EventDateTime{Date: end.AddDate(0, 0, 1).Format(models.DateLayout)}
		return event, nil
	}

	startTime := e.StartTime
	if startTime == "" {
		startTime = "00:00"
	}
	endTime := e.EndTime
	if endTime == "" {
		// Default duration is one hour from the start time.
		if t, err := time.Parse(models.TimeLayout, startTime); err == nil {
			endTime = t.Add(time.Hour).Format(models.TimeLayout)
		} else {
			endTime = "01:00"
		}
	}

	event.Start = &gcal.EventDateTime{
		DateTime: e.StartDate + "T" + startTime + ":00",
		TimeZone: timezone,
	}
	event.End = &gcal.EventDateTime{
		DateTime: endDate + "T" + endTime + ":00",
		TimeZone: timezone,
	}
	return event, nil
}
