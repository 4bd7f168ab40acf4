package sources

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the catalog answered with zero matches.
	ErrNotFound = errors.New("no matching result")
	// ErrCatalogUnavailable covers transport failures and non-2xx answers.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrCatalogResponseInvalid means the body lacked fields we rely on.
	ErrCatalogResponseInvalid = errors.New("catalog response invalid")
)

// CatalogError ties a failure to the series that caused it.
type CatalogError struct {
	SeriesID   int
	StatusCode int
	Kind       error
	Err        error
}

func (e *CatalogError) Error() string {
	msg := fmt.Sprintf("series %d: %v", e.SeriesID, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CatalogError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
