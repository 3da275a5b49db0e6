package calendar

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	gcal "google.golang.org/api/calendar/v3"

	"github.com/tayuki/school-calendar-app/internal/events"
	"github.com/tayuki/school-calendar-app/internal/logger"
	"github.com/tayuki/school-calendar-app/pkg/models"
)

// Inserter is the single calendar operation the committer needs.
type Inserter interface {
	InsertEvent(ctx context.Context, calendarID string, event *gcal.Event) (*gcal.Event, error)
}

// Committer submits event candidates one at a time, isolating per-item
// failures. Items are processed sequentially and synchronously, preserving
// submission order and keeping the provider's rate limits naturally
// respected. Already-committed items are never rolled back when a later item
// fails; partial success is the accepted outcome model.
type Committer struct {
	service  Inserter
	timezone string
	log      zerolog.Logger
}

// NewCommitter creates a committer writing timed events in the given zone.
func NewCommitter(service Inserter, timezone string) *Committer {
	return &Committer{
		service:  service,
		timezone: timezone,
		log:      logger.WithComponent("committer"),
	}
}

// CommitAll submits every candidate and returns one result per candidate, in
// submission order. It never short-circuits: a validation rejection or a
// provider error becomes a failed result and processing moves on.
func (c *Committer) CommitAll(ctx context.Context, calendarID string, candidates []models.EventCandidate) []models.CommitResult {
	results := make([]models.CommitResult, 0, len(candidates))
	succeeded := 0

	for i, candidate := range candidates {
		result := c.commitOne(ctx, calendarID, candidate)
		if result.Success {
			succeeded++
		} else {
			c.log.Warn().
				Int("index", i).
				Str("title", candidate.Title).
				Str("error", result.Error).
				Msg("event commit failed")
		}
		results = append(results, result)
	}

	c.log.Info().
		Int("succeeded", succeeded).
		Int("total", len(candidates)).
		Msg("batch commit completed")
	return results
}

func (c *Committer) commitOne(ctx context.Context, calendarID string, candidate models.EventCandidate) models.CommitResult {
	// Validation repairs what it can; a rejection fails this item only.
	if ok, problems := events.Validate(&candidate); !ok {
		return failed(candidate, "invalid event data: "+strings.Join(problems, "; "))
	}

	payload, err := BuildEvent(candidate, c.timezone)
	if err != nil {
		return failed(candidate, err.Error())
	}

	created, err := c.service.InsertEvent(ctx, calendarID, payload)
	if err != nil {
		return failed(candidate, err.Error())
	}

	return models.CommitResult{
		Success: true,
		Event: &models.CreatedEvent{
			ID:       created.Id,
			HTMLLink: created.HtmlLink,
			Summary:  created.Summary,
			Location: created.Location,
			Start:    eventTime(created.Start),
			End:      eventTime(created.End),
		},
		OriginalData: candidate,
	}
}

func failed(candidate models.EventCandidate, reason string) models.CommitResult {
	return models.CommitResult{
		Success:      false,
		Error:        reason,
		OriginalData: candidate,
	}
}

func eventTime(t *gcal.EventDateTime) string {
	if t == nil {
		return ""
	}
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}
