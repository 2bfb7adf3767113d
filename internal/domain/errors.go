package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrDocumentNotFound signals a missing document in the vector store.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrNodeNotFound signals a missing node in the graph store.
	ErrNodeNotFound = errors.New("node not found")
	// ErrValidation signals a schema validation failure.
	ErrValidation = errors.New("validation failed")
	// ErrDimensionMismatch signals vectors of unequal length compared.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrNoiseRejected signals an ingest payload below minimum cleaned-text length.
	ErrNoiseRejected = errors.New("payload rejected as noise")
	// ErrStoreUnavailable signals a failed call to an external store.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	// Never surfaced to callers: the engine degrades to the deterministic fallback.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)

// ValidationError wraps ErrValidation with every missing required field,
// or with the offending value for allow-list violations.
type ValidationError struct {
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: missing required fields: %s",
			ErrValidation.Error(), strings.Join(e.Missing, ", "))
	}
	return ErrValidation.Error() + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewMissingFields creates a validation error naming every missing required field.
func NewMissingFields(fields ...string) error {
	return &ValidationError{Missing: fields}
}

// NewInvalidValue creates a validation error for an out-of-allow-list or out-of-range value.
func NewInvalidValue(reason string) error {
	return &ValidationError{Reason: reason}
}
