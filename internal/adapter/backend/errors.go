package backend

import (
	"errors"
	"fmt"
)

// ErrCatalogUnavailable covers every read failure against the backend,
// network-level or non-success response. The caller surfaces it and leaves
// local state untouched.
var ErrCatalogUnavailable = errors.New("gallery backend unavailable")

// SubmissionError reports a failed order creation, carrying the
// server-provided reason when the backend returned one.
type SubmissionError struct {
	StatusCode int
	Reason     string
	Err        error
}

func (e *SubmissionError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("order submission rejected (status %d): %s", e.StatusCode, e.Reason)
	case e.StatusCode != 0:
		return fmt.Sprintf("order submission rejected (status %d)", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("order submission failed: %v", e.Err)
	}
	return "order submission failed"
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
