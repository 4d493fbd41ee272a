package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentSession struct {
	Id           uuid.UUID
	Status       string
	ObjectKey    string
	EmbeddingDim int
	ChunkCount   int
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
