package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentChunk struct {
	SessionId uuid.UUID
	ChunkId   string
	Text      string
	Embedding []float32
	Order     int
	CreatedAt time.Time
}
