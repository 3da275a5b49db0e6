package ocr

import (
	"errors"
	"fmt"
)

// Common text extraction errors
var (
	// ErrExtractionFailed is returned when the Vision API call fails and no
	// text could be obtained. Callers treat this as "no text available".
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrPageLimitExceeded is returned when a PDF has more pages than the
	// synchronous processing limit allows. The remote service is never called.
	ErrPageLimitExceeded = errors.New("PDF exceeds the maximum page limit (5 pages)")

	// ErrInvalidPDF is returned when the provided data is not a valid PDF document.
	ErrInvalidPDF = errors.New("invalid or corrupted PDF document")

	// ErrUnsupportedMedia is returned for a document kind the adapter does not handle.
	ErrUnsupportedMedia = errors.New("unsupported document kind")

	// ErrMissingCredentials is returned when neither GOOGLE_APPLICATION_CREDENTIALS
	// nor GOOGLE_CREDENTIALS environment variables are configured.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")
)

// Error wraps extraction failures with context about the failed operation.
type Error struct {
	// Op is the operation that failed (e.g., "ExtractText", "NewVisionService").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ocr: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ocr: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// wrapError wraps an error with operation context unless it is already wrapped.
func wrapError(op string, err error, details string) error {
	if err == nil {
		return nil
	}
	var ocrErr *Error
	if errors.As(err, &ocrErr) {
		return err
	}
	return &Error{Op: op, Err: err, Details: details}
}
