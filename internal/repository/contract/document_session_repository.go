package contract

import (
	"context"

	"ai-docquery-be/internal/entity"

	"github.com/google/uuid"
)

type DocumentSessionRepository interface {
	Create(ctx context.Context, session *entity.DocumentSession) error
	// FindById returns (nil, nil) when the session does not exist.
	FindById(ctx context.Context, id uuid.UUID) (*entity.DocumentSession, error)
	// UpdateStatus overwrites the status field. The caller guarantees at
	// most one ingestion run per session in flight, so no compare-and-swap.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// MarkReady records the ingestion result in one write: status, the
	// session's embedding dimensionality and the chunk count.
	MarkReady(ctx context.Context, id uuid.UUID, embeddingDim, chunkCount int) error
}
