package contract

import (
	"context"

	"ai-docquery-be/internal/entity"

	"github.com/google/uuid"
)

type DocumentChunkRepository interface {
	// Upsert writes a chunk keyed by (session_id, chunk_id); last write
	// wins, which makes retry-from-scratch ingestion safe.
	Upsert(ctx context.Context, chunk *entity.DocumentChunk) error
	// FindBySessionId returns all chunks for a session in no guaranteed
	// order; an empty slice when the session has none yet.
	FindBySessionId(ctx context.Context, sessionId uuid.UUID) ([]*entity.DocumentChunk, error)
	CountBySessionId(ctx context.Context, sessionId uuid.UUID) (int64, error)
}
