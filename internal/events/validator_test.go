package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tayuki/school-calendar-app/pkg/models"
)

func TestValidateRequiredFields(t *testing.T) {
	t.Run("missing title is rejected", func(t *testing.T) {
		e := models.EventCandidate{StartDate: "2024-07-20"}
		ok, errs := Validate(&e)
		assert.False(t, ok)
		assert.Contains(t, errs, "title is required")
	})

	t.Run("missing start_date is rejected", func(t *testing.T) {
		e := models.EventCandidate{Title: "運動会"}
		ok, errs := Validate(&e)
		assert.False(t, ok)
		assert.Contains(t, errs, "start_date is required")
	})

	t.Run("whitespace-only title counts as missing", func(t *testing.T) {
		e := models.EventCandidate{Title: "   ", StartDate: "2024-07-20"}
		ok, _ := Validate(&e)
		assert.False(t, ok)
	})

	t.Run("complete candidate passes clean", func(t *testing.T) {
		e := models.EventCandidate{
			Title:     "授業参観",
			StartDate: "2024-07-20",
			EndDate:   "2024-07-20",
			StartTime: "10:00",
			EndTime:   "11:30",
			AllDay:    models.FlagOf(false),
		}
		ok, errs := Validate(&e)
		assert.True(t, ok)
		assert.Empty(t, errs)
	})
}

func TestValidateDates(t *testing.T) {
	t.Run("malformed start_date is reported but not repaired", func(t *testing.T) {
		e := models.EventCandidate{Title: "遠足", StartDate: "2024/07/20"}
		ok, errs := Validate(&e)
		assert.False(t, ok)
		assert.Len(t, errs, 1)
		// The broken value stays in place for the user to see.
		assert.Equal(t, "2024/07/20", e.StartDate)
	})

	t.Run("impossible calendar date is reported but kept", func(t *testing.T) {
		e := models.EventCandidate{Title: "遠足", StartDate: "2024-02-30"}
		ok, _ := Validate(&e)
		assert.False(t, ok)
		assert.Equal(t, "2024-02-30", e.StartDate)
	})

	t.Run("end_date before start_date is reset to start_date with one error", func(t *testing.T) {
		e := models.EventCandidate{Title: "宿泊学習", StartDate: "2024-09-10", EndDate: "2024-09-08"}
		ok, errs := Validate(&e)
		assert.False(t, ok)
		assert.Len(t, errs, 1)
		assert.Equal(t, "2024-09-10", e.EndDate)
	})

	t.Run("equal start and end dates are fine", func(t *testing.T) {
		e := models.EventCandidate{Title: "面談", StartDate: "2024-09-10", EndDate: "2024-09-10"}
		ok, errs := Validate(&e)
		assert.True(t, ok)
		assert.Empty(t, errs)
	})
}

func TestValidateTimes(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		endTime   string
		wantStart string
		wantEnd   string
		wantOK    bool
	}{
		{"valid times untouched", "09:30", "12:00", "09:30", "12:00", true},
		{"malformed start_time reset to 00:00", "9時30分", "12:00", "00:00", "12:00", false},
		{"malformed end_time reset to 01:00", "09:30", "正午", "09:30", "01:00", false},
		{"out-of-range hour reset", "25:00", "", "00:00", "", false},
		{"empty times left empty", "", "", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := models.EventCandidate{
				Title:     "テスト",
				StartDate: "2024-07-20",
				StartTime: tt.startTime,
				EndTime:   tt.endTime,
			}
			ok, _ := Validate(&e)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStart, e.StartTime)
			assert.Equal(t, tt.wantEnd, e.EndTime)
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	t.Run("all_day derived from start_time absence", func(t *testing.T) {
		e := models.EventCandidate{Title: "休校日", StartDate: "2024-07-20"}
		Validate(&e)
		assert.True(t, e.AllDay.Set)
		assert.True(t, e.AllDay.Value)
	})

	t.Run("all_day derived false when start_time present", func(t *testing.T) {
		e := models.EventCandidate{Title: "保護者会", StartDate: "2024-07-20", StartTime: "14:00"}
		Validate(&e)
		assert.True(t, e.AllDay.Set)
		assert.False(t, e.AllDay.Value)
	})

	t.Run("explicit all_day is never overridden", func(t *testing.T) {
		e := models.EventCandidate{Title: "開校記念日", StartDate: "2024-07-20", StartTime: "09:00", AllDay: models.FlagOf(true)}
		Validate(&e)
		assert.True(t, e.AllDay.Value)
	})

	t.Run("missing end_date defaults to start_date", func(t *testing.T) {
		e := models.EventCandidate{Title: "終業式", StartDate: "2024-07-19"}
		Validate(&e)
		assert.Equal(t, "2024-07-19", e.EndDate)
	})
}

func TestValidateIdempotent(t *testing.T) {
	e := models.EventCandidate{
		Title:     "プール開き",
		StartDate: "2024-06-10",
		EndDate:   "2024-06-08",
		StartTime: "午前中",
	}
	ok1, errs1 := Validate(&e)
	assert.False(t, ok1)
	assert.NotEmpty(t, errs1)

	// A second pass over the repaired record finds nothing.
	repaired := e
	ok2, errs2 := Validate(&e)
	assert.True(t, ok2)
	assert.Empty(t, errs2)
	assert.Equal(t, repaired, e)
}
