package inference

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tayuki/school-calendar-app/pkg/models"
)

var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// extractJSON locates the JSON payload inside a model response, which may be
// wrapped in a fenced code block or surrounded by stray prose.
func extractJSON(content string) string {
	if m := fencedJSONRe.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return strings.TrimSpace(content)
}

// parseEvents decodes the model response into event candidates. Values are
// coerced leniently because the model does not reliably respect JSON types.
func parseEvents(content string) ([]models.EventCandidate, error) {
	raw := extractJSON(content)

	var items []map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		// Some models return a single object for a single event.
		var single map[string]interface{}
		if err2 := json.Unmarshal([]byte(raw), &single); err2 != nil {
			return nil, fmt.Errorf("decoding model output: %w", err)
		}
		items = []map[string]interface{}{single}
	}

	events := make([]models.EventCandidate, 0, len(items))
	for _, item := range items {
		events = append(events, models.EventCandidate{
			Title:       getString(item, "title"),
			Description: getString(item, "description"),
			StartDate:   getString(item, "start_date"),
			EndDate:     getString(item, "end_date"),
			StartTime:   getString(item, "start_time"),
			EndTime:     getString(item, "end_time"),
			AllDay:      getFlag(item, "all_day"),
			Location:    getString(item, "location"),
			Confidence:  getFloat(item, "confidence"),
		})
	}
	return events, nil
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getFloat accepts numbers the model typed as JSON numbers or as strings.
func getFloat(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

// getFlag accepts booleans typed as JSON booleans or as "true"/"false" strings.
func getFlag(m map[string]interface{}, key string) models.Flag {
	switch v := m[key].(type) {
	case bool:
		return models.FlagOf(v)
	case string:
		return models.FlagOf(strings.EqualFold(strings.TrimSpace(v), "true"))
	}
	return models.Flag{}
}
