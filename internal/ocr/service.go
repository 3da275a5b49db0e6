// Package ocr extracts plain text from photographed or scanned school notices
// using the Google Cloud Vision API.
//
// Images go through TEXT_DETECTION after an optional grayscale preprocessing
// pass; PDFs go through DOCUMENT_TEXT_DETECTION. Synchronous PDF processing is
// capped at 5 pages, and the page count is checked locally before the remote
// call so oversized documents fail fast without spending API quota.
//
// Required Environment Variables:
//   - GOOGLE_APPLICATION_CREDENTIALS: Path to service account JSON file, OR
//   - GOOGLE_CREDENTIALS: Inline JSON credentials string
//
// A document from which the service detects no text yields an empty string,
// not an error: an empty notice is a valid terminal state.
package ocr

import (
	"context"

	"github.com/tayuki/school-calendar-app/pkg/models"
)

// MaxPDFPages is the maximum number of pages accepted for a PDF document.
// It matches the Vision API limit for synchronous processing.
const MaxPDFPages = 5

// MaxFileSizeBytes is the maximum payload size for synchronous processing (20MB).
const MaxFileSizeBytes = 20 * 1024 * 1024

// Service defines the text extraction contract consumed by the pipeline.
type Service interface {
	// ExtractText extracts plain text from an image or PDF document.
	// An empty result with a nil error means no text was detected.
	ExtractText(ctx context.Context, doc models.RawDocument) (string, error)
}
