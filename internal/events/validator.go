// Package events validates and normalizes inferred event candidates.
//
// Validation both reports problems and repairs the record in place where a
// default is safe, so the review UI and the commit path always receive a
// displayable, best-effort-consistent candidate even when validation fails.
package events

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tayuki/school-calendar-app/pkg/models"
)

var (
	dateShapeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeShapeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Repair defaults for malformed time fields.
const (
	defaultStartTime = "00:00"
	defaultEndTime   = "01:00"
)

// Validate checks a candidate against the field rules, repairing what is safe
// to repair and reporting everything it finds. It returns whether the
// candidate is clean and the list of problems.
//
// The repair policy is deliberately asymmetric: malformed times are silently
// defaulted because any time is better than a crash, while malformed dates
// are only reported because guessing a date would register an event the user
// never intended. Do not unify the two behaviors.
//
// Validating an already-valid candidate is a no-op.
func Validate(e *models.EventCandidate) (bool, []string) {
	var errs []string

	// Required fields; nothing can repair their absence.
	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(e.StartDate) == "" {
		errs = append(errs, "start_date is required")
	}

	start, startOK := checkDate(e.StartDate, "start_date", &errs)
	end, endOK := checkDate(e.EndDate, "end_date", &errs)

	if e.StartTime != "" && !validTime(e.StartTime) {
		errs = append(errs, fmt.Sprintf("start_time %q is not a valid HH:MM time, reset to %s", e.StartTime, defaultStartTime))
		e.StartTime = defaultStartTime
	}
	if e.EndTime != "" && !validTime(e.EndTime) {
		errs = append(errs, fmt.Sprintf("end_time %q is not a valid HH:MM time, reset to %s", e.EndTime, defaultEndTime))
		e.EndTime = defaultEndTime
	}

	// end before start is repaired but still reported so the user sees the
	// correction happened.
	if startOK && endOK && end.Before(start) {
		errs = append(errs, fmt.Sprintf("end_date %s is before start_date, reset to %s", e.EndDate, e.StartDate))
		e.EndDate = e.StartDate
	}

	// Defaults applied unconditionally after the checks.
	if !e.AllDay.Set {
		e.AllDay = models.FlagOf(e.StartTime == "")
	}
	if e.EndDate == "" {
		e.EndDate = e.StartDate
	}

	return len(errs) == 0, errs
}

// checkDate verifies shape first, calendar validity second. Malformed dates
// are reported and left alone.
func checkDate(value, field string, errs *[]string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if !dateShapeRe.MatchString(value) {
		*errs = append(*errs, fmt.Sprintf("%s %q must use the YYYY-MM-DD format", field, value))
		return time.Time{}, false
	}
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s %q is not a valid calendar date", field, value))
		return time.Time{}, false
	}
	return t, true
}

func validTime(value string) bool {
	if !timeShapeRe.MatchString(value) {
		return false
	}
	_, err := time.Parse(models.TimeLayout, value)
	return err == nil
}
