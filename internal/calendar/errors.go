package calendar

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

var (
	// ErrAuthRequired signals missing or expired authorization; the caller
	// must re-run the auth flow rather than retry.
	ErrAuthRequired = errors.New("google calendar authorization required")

	// ErrQuotaExceeded signals the provider rejected the call on quota grounds.
	ErrQuotaExceeded = errors.New("google calendar quota exceeded")
)

// classifyAPIError maps provider responses onto the error taxonomy, keeping
// auth and quota failures distinguishable from payload problems.
func classifyAPIError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrAuthRequired, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
	}
	return err
}
