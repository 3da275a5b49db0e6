package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tayuki/school-calendar-app/pkg/models"
)

func TestBuildEventAllDay(t *testing.T) {
	t.Run("single day gets exclusive end of the next day", func(t *testing.T) {
		e := models.EventCandidate{
			Title:     "運動会",
			StartDate: "2024-10-05",
			EndDate:   "2024-10-05",
			AllDay:    models.FlagOf(true),
		}
		event, err := BuildEvent(e, "Asia/Tokyo")
		require.NoError(t, err)
		assert.Equal(t, "2024-10-05", event.Start.Date)
		assert.Equal(t, "2024-10-06", event.End.Date)
		assert.Empty(t, event.Start.DateTime)
	})

	t.Run("leap day rolls into March", func(t *testing.T) {
		e := models.EventCandidate{
			Title:     "休校日",
			StartDate: "2024-02-29",
			EndDate:   "2024-02-29",
			AllDay:    models.FlagOf(true),
		}
		event, err := BuildEvent(e, "Asia/Tokyo")
		require.NoError(t, err)
		assert.Equal(t, "2024-03-01", event.End.Date)
	})

	t.Run("month boundary rolls over", func(t *testing.T) {
		e := models.EventCandidate{
			Title:     "夏休み最終日",
			StartDate: "2024-08-31",
			AllDay:    models.FlagOf(true),
		}
		event, err := BuildEvent(e, "Asia/Tokyo")
		require.NoError(t, err)
		assert.Equal(t, "2024-09-01", event.End.Date)
	})

	t.Run("multi-day range keeps inclusive start, exclusive end", func(t *testing.T) {
		e := models.EventCandidate{
			Title:     "宿泊学習",
			StartDate: "2024-09-10",
			EndDate:   "2024-09-12",
			AllDay:    models.FlagOf(true),
		}
		event, err := BuildEvent(e, "Asia/Tokyo")
		require.NoError(t, err)
		assert.Equal(t, "2024-09-10", event.Start.Date)
		assert.Equal(t, "2024-09-13", event.End.Date)
	})

	t.Run("unset all_day flag defaults to all-day", func(t *testing.T) {
		e := models.EventCandidate{Title: "創立記念日", StartDate: "2024-11-01"}
		event, err := BuildEvent(e, "Asia/Tokyo")
		require.NoError(t, err)
		assert.Equal(t, "2024-11-01", event.Start.Date)
		assert.Equal(t, "2024-11-02", event.End.Date)
	})
}

func TestBuildEventTimed(t *testing.T) {
	t.Run("start and end bound to the configured zone", func(t *testing.T) {
		e := models.EventCandidate{
			Title:     "授業参観",
			StartDate: "2024-07-20",
			EndDate:   "2024-07-20",
			StartTime: "10:00",
			EndTime:   "11:30",
			AllDay:    models.FlagOf(false),
		}
		event, err := BuildEvent(e, "Asia/Tokyo")
		require.NoError(t, err)
		assert.Equal(t, "2024-07-20T10:00:00", event.Start.DateTime)
		assert.Equal(t, "Asia/Tokyo", event.Start.TimeZone)
		assert.Equal(t, "2024-07-20T11:30:00", event.End.DateTime)
		assert.Equal(t, "Asia/Tokyo", event.End.TimeZone)
		assert.Empty(t, event.Start.Date)
	})

	t.Run("missing end_time defaults to one hour after start", func(t *testing.T) {
		e := models.EventCandidate{
			Title:     "保護者会",
			StartDate: "2024-07-20",
			StartTime: "14:00",
			AllDay:    models.FlagOf(false),
		}
		event, err := BuildEvent(e, "Asia/Tokyo")
		require.NoError(t, err)
		assert.Equal(t, "2024-07-20T14:00:00", event.Start.DateTime)
		assert.Equal(t, "2024-07-20T15:00:00", event.End.DateTime)
	})

	t.Run("missing start_time defaults to midnight", func(t *testing.T) {
		e := models.EventCandidate{
			Title:     "提出締切",
			StartDate: "2024-07-20",
			EndTime:   "17:00",
			AllDay:    models.FlagOf(false),
		}
		event, err := BuildEvent(e, "Asia/Tokyo")
		require.NoError(t, err)
		assert.Equal(t, "2024-07-20T00:00:00", event.Start.DateTime)
		assert.Equal(t, "2024-07-20T17:00:00", event.End.DateTime)
	})

	t.Run("late start rolls default end past midnight of the layout day", func(t *testing.T) {
		e := models.EventCandidate{
			Title:     "夜間行事",
			StartDate: "2024-07-20",
			StartTime: "23:30",
			AllDay:    models.FlagOf(false),
		}
		event, err := BuildEvent(e, "Asia/Tokyo")
		require.NoError(t, err)
		assert.Equal(t, "2024-07-20T00:30:00", event.End.DateTime)
	})
}

func TestBuildEventDescriptionAndLocation(t *testing.T) {
	e := models.EventCandidate{
		Title:       "運動会",
		Description: "雨天順延",
		Location:    "校庭",
		StartDate:   "2024-10-05",
		AllDay:      models.FlagOf(true),
	}
	event, err := BuildEvent(e, "Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "運動会", event.Summary)
	assert.Equal(t, "雨天順延", event.Description)
	assert.Equal(t, "校庭", event.Location)
}

func TestBuildEventInvalidDates(t *testing.T) {
	t.Run("invalid start_date is an error", func(t *testing.T) {
		e := models.EventCandidate{Title: "x", StartDate: "2024/10/05"}
		_, err := BuildEvent(e, "Asia/Tokyo")
		assert.Error(t, err)
	})

	t.Run("invalid end_date is an error", func(t *testing.T) {
		e := models.EventCandidate{Title: "x", StartDate: "2024-10-05", EndDate: "next week"}
		_, err := BuildEvent(e, "Asia/Tokyo")
		assert.Error(t, err)
	})

	t.Run("end before start is clamped to start", func(t *testing.T) {
		e := models.EventCandidate{
			Title:     "x",
			StartDate: "2024-10-05",
			EndDate:   "2024-10-01",
			AllDay:    models.FlagOf(true),
		}
		event, err := BuildEvent(e, "Asia/Tokyo")
		require.NoError(t, err)
		assert.Equal(t, "2024-10-06", event.End.Date)
	})
}
