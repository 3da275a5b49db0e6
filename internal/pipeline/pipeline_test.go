package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tayuki/school-calendar-app/internal/inference"
	"github.com/tayuki/school-calendar-app/internal/ocr"
	"github.com/tayuki/school-calendar-app/pkg/models"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(ctx context.Context, doc models.RawDocument) (string, error) {
	return f.text, f.err
}

type fakeEngine struct {
	outcome inference.Outcome
	calls   int
}

func (f *fakeEngine) Infer(ctx context.Context, text string, referenceDate time.Time) inference.Outcome {
	f.calls++
	return f.outcome
}

var (
	testDoc     = models.RawDocument{Data: []byte("img"), Kind: models.MediaImage}
	testRefDate = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
)

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("full flow validates every candidate", func(t *testing.T) {
		engine := &fakeEngine{outcome: inference.Outcome{
			Status: inference.StatusOK,
			Events: []models.EventCandidate{
				{Title: "運動会", StartDate: "2024-10-05"},
				{Title: "", StartDate: "2024-10-06"},
			},
		}}
		p := New(&fakeExtractor{text: "お知らせ本文"}, engine)

		result, err := p.Run(ctx, testDoc, testRefDate)
		require.NoError(t, err)
		assert.Equal(t, "お知らせ本文", result.Text)
		require.Len(t, result.Candidates, 2)
		require.Len(t, result.Reports, 2)
		assert.True(t, result.Reports[0].OK)
		assert.False(t, result.Reports[1].OK)
		// Defaults were applied in place.
		assert.Equal(t, "2024-10-05", result.Candidates[0].EndDate)
		assert.True(t, result.Candidates[0].AllDay.Value)
	})

	t.Run("extraction failure surfaces as an error", func(t *testing.T) {
		engine := &fakeEngine{}
		p := New(&fakeExtractor{err: errors.New("vision unavailable")}, engine)

		_, err := p.Run(ctx, testDoc, testRefDate)
		assert.Error(t, err)
		assert.Zero(t, engine.calls)
	})

	t.Run("empty text skips inference entirely", func(t *testing.T) {
		engine := &fakeEngine{}
		p := New(&fakeExtractor{text: "  \n "}, engine)

		result, err := p.Run(ctx, testDoc, testRefDate)
		require.NoError(t, err)
		assert.Empty(t, result.Candidates)
		assert.Empty(t, result.Diagnostic)
		assert.Zero(t, engine.calls)
	})

	t.Run("parse failure yields zero candidates with a diagnostic", func(t *testing.T) {
		engine := &fakeEngine{outcome: inference.Outcome{
			Status:     inference.StatusParseFailure,
			Diagnostic: "decoding model output: invalid character",
		}}
		p := New(&fakeExtractor{text: "本文"}, engine)

		result, err := p.Run(ctx, testDoc, testRefDate)
		require.NoError(t, err)
		assert.Empty(t, result.Candidates)
		assert.Contains(t, result.Diagnostic, "could not be parsed")
		assert.Equal(t, "本文", result.Text)
	})

	t.Run("service error yields zero candidates with a diagnostic", func(t *testing.T) {
		engine := &fakeEngine{outcome: inference.Outcome{
			Status:     inference.StatusServiceError,
			Diagnostic: "connection reset",
		}}
		p := New(&fakeExtractor{text: "本文"}, engine)

		result, err := p.Run(ctx, testDoc, testRefDate)
		require.NoError(t, err)
		assert.Empty(t, result.Candidates)
		assert.Contains(t, result.Diagnostic, "service error")
	})

	t.Run("zero extracted events is a clean result", func(t *testing.T) {
		engine := &fakeEngine{outcome: inference.Outcome{Status: inference.StatusOK}}
		p := New(&fakeExtractor{text: "予定のない本文"}, engine)

		result, err := p.Run(ctx, testDoc, testRefDate)
		require.NoError(t, err)
		assert.Empty(t, result.Candidates)
		assert.Empty(t, result.Diagnostic)
	})
}

// Compile-time checks that the production types satisfy the pipeline's
// dependency interfaces.
var (
	_ ocr.Service      = (*ocr.VisionService)(nil)
	_ inference.Engine = (*inference.OpenAIEngine)(nil)
)
