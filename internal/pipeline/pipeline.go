// Package pipeline runs a document through extraction, inference and
// validation as one strictly sequential flow. No stage starts before the
// previous one completes, and nothing from the stages escapes as an unhandled
// fault: the result either carries candidates or explains why there are none.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tayuki/school-calendar-app/internal/events"
	"github.com/tayuki/school-calendar-app/internal/inference"
	"github.com/tayuki/school-calendar-app/internal/logger"
	"github.com/tayuki/school-calendar-app/internal/ocr"
	"github.com/tayuki/school-calendar-app/pkg/models"
)

// Report carries the validation outcome for one candidate, index-aligned with
// Result.Candidates.
type Report struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors,omitempty"`
}

// Result is the product of one pipeline run. Candidates have already been
// normalized; Reports preserves what the validator found and repaired.
type Result struct {
	Text       string                  `json:"extracted_text"`
	Candidates []models.EventCandidate `json:"events"`
	Reports    []Report                `json:"validation,omitempty"`
	Diagnostic string                  `json:"diagnostic,omitempty"`
}

// Pipeline composes the extraction adapter and the inference engine. Both are
// injected so tests can run the flow against fakes.
type Pipeline struct {
	extractor ocr.Service
	engine    inference.Engine
}

func New(extractor ocr.Service, engine inference.Engine) *Pipeline {
	return &Pipeline{extractor: extractor, engine: engine}
}

// Run processes one document. Extraction failures (including the PDF page
// limit) surface as errors since there is nothing to continue with; an
// unusable inference response is not an error and yields zero candidates
// with a diagnostic instead.
func (p *Pipeline) Run(ctx context.Context, doc models.RawDocument, referenceDate time.Time) (*Result, error) {
	log := logger.WithRunID(uuid.NewString())

	text, err := p.extractor.ExtractText(ctx, doc)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		log.Warn().Msg("document produced no text, nothing to infer")
		return &Result{Text: text}, nil
	}
	log.Info().Int("text_length", len(text)).Msg("text extracted")

	outcome := p.engine.Infer(ctx, text, referenceDate)
	switch outcome.Status {
	case inference.StatusParseFailure:
		log.Warn().Str("diagnostic", outcome.Diagnostic).Msg("inference output unusable, returning zero candidates")
		return &Result{Text: text, Diagnostic: "inference output could not be parsed: " + outcome.Diagnostic}, nil
	case inference.StatusServiceError:
		log.Warn().Str("diagnostic", outcome.Diagnostic).Msg("inference service failed, returning zero candidates")
		return &Result{Text: text, Diagnostic: "inference service error: " + outcome.Diagnostic}, nil
	}

	reports := make([]Report, len(outcome.Events))
	for i := range outcome.Events {
		ok, problems := events.Validate(&outcome.Events[i])
		reports[i] = Report{OK: ok, Errors: problems}
	}

	log.Info().Int("candidates", len(outcome.Events)).Msg("pipeline run completed")
	return &Result{Text: text, Candidates: outcome.Events, Reports: reports}, nil
}
