package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced to the caller as not-found responses.
var (
	// ErrSessionNotFound: the sessionId does not exist.
	ErrSessionNotFound = errors.New("invalid sessionId")

	// ErrNoChunks: the session exists but has no stored chunks yet, either
	// because ingestion never completed or produced zero chunks.
	ErrNoChunks = errors.New("no chunks found")
)

// VectorizationError wraps a failed embedding call. It aborts the enclosing
// ingestion or query; the caller may retry the whole operation.
type VectorizationError struct {
	Err error
}

func (e *VectorizationError) Error() string {
	return fmt.Sprintf("vectorization failed: %v", e.Err)
}

func (e *VectorizationError) Unwrap() error {
	return e.Err
}

// DimensionMismatchError reports a vector whose length disagrees with the
// session's established dimensionality. This indicates a corrupted session
// or an embedding model change mid-session and is fatal to ingestion.
type DimensionMismatchError struct {
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: want %d, got %d", e.Want, e.Got)
}

// GenerationError wraps a failed LLM completion call.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// StoreError wraps an underlying persistence failure. Chunk writes are
// idempotent upserts, so retrying a failed ingestion is safe.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
