package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// DocumentChunk is keyed by (session_id, chunk_id) so re-ingestion upserts
// chunks in place instead of duplicating them.
type DocumentChunk struct {
	SessionId      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ChunkId        string          `gorm:"type:text;primaryKey"`
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(1536)"` // text-embedding-3-small uses 1536 dimensions
	ChunkOrder     int             `gorm:"default:0"`         // 0-based position within the document
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
