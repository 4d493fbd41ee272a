package model

import (
	"time"

	"github.com/google/uuid"
)

type DocumentSession struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status       string    `gorm:"type:text;not null;default:'AWAITING_UPLOAD'"`
	ObjectKey    string    `gorm:"type:text;not null"`
	EmbeddingDim int       `gorm:"default:0"` // fixed by the first chunk's vector
	ChunkCount   int       `gorm:"default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (DocumentSession) TableName() string {
	return "document_sessions"
}
