// Package calendar writes validated event candidates to Google Calendar.
//
// BuildEvent translates candidates into the provider's wire shape, Service
// wraps the calendar/v3 client, and Committer submits batches with per-item
// failure isolation: one rejected or failed event never aborts its siblings.
package calendar

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/tayuki/school-calendar-app/internal/logger"
	"github.com/tayuki/school-calendar-app/pkg/models"
)

// Service is the calendar provider contract consumed by the CLI and the committer.
type Service interface {
	// ListCalendars returns the calendars visible to the authorized user.
	ListCalendars(ctx context.Context) ([]models.CalendarInfo, error)

	// InsertEvent creates one event and returns the provider's record of it.
	InsertEvent(ctx context.Context, calendarID string, event *gcal.Event) (*gcal.Event, error)
}

// GoogleService implements Service using the Google Calendar API.
type GoogleService struct {
	svc *gcal.Service
	log zerolog.Logger
}

// NewGoogleService builds a calendar client from an OAuth-authorized HTTP client.
func NewGoogleService(ctx context.Context, client *http.Client) (*GoogleService, error) {
	svc, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("creating calendar client: %w", err)
	}
	return &GoogleService{
		svc: svc,
		log: logger.WithComponent("calendar"),
	}, nil
}

func (s *GoogleService) ListCalendars(ctx context.Context) ([]models.CalendarInfo, error) {
	list, err := s.svc.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing calendars: %w", classifyAPIError(err))
	}

	calendars := make([]models.CalendarInfo, 0, len(list.Items))
	for _, item := range list.Items {
		calendars = append(calendars, models.CalendarInfo{
			ID:          item.Id,
			Summary:     item.Summary,
			Description: item.Description,
			Primary:     item.Primary,
			AccessRole:  item.AccessRole,
		})
	}

	s.log.Info().Int("count", len(calendars)).Msg("retrieved calendar list")
	return calendars, nil
}

func (s *GoogleService) InsertEvent(ctx context.Context, calendarID string, event *gcal.Event) (*gcal.Event, error) {
	created, err := s.svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("inserting event: %w", classifyAPIError(err))
	}

	s.log.Info().
		Str("calendar_id", calendarID).
		Str("event_id", created.Id).
		Str("summary", created.Summary).
		Msg("event created")
	return created, nil
}
