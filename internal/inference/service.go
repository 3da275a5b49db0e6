// Package inference turns extracted notice text into structured event
// candidates by prompting a language model.
//
// The model's output is untrusted text: it may wrap the JSON payload in a
// fenced code block, type booleans as strings, or produce something
// unparseable. The engine parses defensively and reports what happened
// through a tagged Outcome instead of an error, so callers can distinguish
// "no events found" from "output unusable" from "service unreachable".
// A single attempt is made per call; parse failures are not retried.
package inference

import (
	"context"
	"time"

	"github.com/tayuki/school-calendar-app/pkg/models"
)

// Status classifies how an inference call concluded.
type Status int

const (
	// StatusOK means the model responded and its output parsed, possibly
	// into zero events.
	StatusOK Status = iota

	// StatusParseFailure means the model responded but no usable JSON could
	// be recovered. Treated as zero candidates downstream.
	StatusParseFailure

	// StatusServiceError means the remote call itself failed.
	StatusServiceError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusParseFailure:
		return "parse_failure"
	case StatusServiceError:
		return "service_error"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one inference call.
type Outcome struct {
	Status     Status
	Events     []models.EventCandidate
	Diagnostic string
}

// Engine infers event candidates from free text. Relative date expressions in
// the text are resolved against referenceDate.
type Engine interface {
	Infer(ctx context.Context, text string, referenceDate time.Time) Outcome
}
