// Package models defines the record types shared by the extraction,
// inference, validation and commit stages.
package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Date and time layouts used throughout the pipeline.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// MediaKind declares how an uploaded document should be interpreted.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaPDF   MediaKind = "pdf"
)

// RawDocument is the byte payload handed to text extraction. It is owned by
// the caller and discarded once extraction has produced text.
type RawDocument struct {
	Data []byte
	Kind MediaKind
}

// Flag is a tri-state boolean. Inference output and form layers sometimes
// carry booleans as the literal strings "true"/"false", so the JSON decoder
// accepts both representations. An unset Flag means the field was absent and
// a default should be derived.
type Flag struct {
	Value bool
	Set   bool
}

// FlagOf returns a set Flag holding v.
func FlagOf(v bool) Flag {
	return Flag{Value: v, Set: true}
}

// Or returns the flag value, or def when the flag was never set.
func (f Flag) Or(def bool) bool {
	if !f.Set {
		return def
	}
	return f.Value
}

func (f Flag) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = Flag{}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlagOf(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlagOf(strings.EqualFold(strings.TrimSpace(s), "true"))
		return nil
	}
	// Anything else (numbers, objects) is treated as absent.
	*f = Flag{}
	return nil
}

// EventCandidate is a machine-inferred event record pending user review.
// Dates are "YYYY-MM-DD" strings and times are 24h "HH:MM" strings; the
// validator repairs or reports malformed values before commit.
type EventCandidate struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date,omitempty"`
	StartTime   string  `json:"start_time,omitempty"`
	EndTime     string  `json:"end_time,omitempty"`
	AllDay      Flag    `json:"all_day"`
	Location    string  `json:"location,omitempty"`
	Confidence  float64 `json:"confidence"`
}

// CalendarInfo describes one calendar the authorized user can see.
type CalendarInfo struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Primary     bool   `json:"primary"`
	AccessRole  string `json:"accessRole"`
}

// CreatedEvent echoes the provider-assigned identity of a committed event.
type CreatedEvent struct {
	ID       string `json:"id"`
	HTMLLink string `json:"htmlLink,omitempty"`
	Summary  string `json:"summary"`
	Location string `json:"location,omitempty"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

// CommitResult records the outcome for one submitted candidate. Results are
// appended in submission order and never reordered or deduplicated.
type CommitResult struct {
	Success      bool           `json:"success"`
	Event        *CreatedEvent  `json:"event,omitempty"`
	Error        string         `json:"error,omitempty"`
	OriginalData EventCandidate `json:"original_data"`
}
