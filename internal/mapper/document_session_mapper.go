package mapper

import (
	"time"

	"ai-docquery-be/internal/entity"
	"ai-docquery-be/internal/model"
)

type DocumentSessionMapper struct{}

func NewDocumentSessionMapper() *DocumentSessionMapper {
	return &DocumentSessionMapper{}
}

func (m *DocumentSessionMapper) ToEntity(s *model.DocumentSession) *entity.DocumentSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.DocumentSession{
		Id:           s.Id,
		Status:       s.Status,
		ObjectKey:    s.ObjectKey,
		EmbeddingDim: s.EmbeddingDim,
		ChunkCount:   s.ChunkCount,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *DocumentSessionMapper) ToModel(s *entity.DocumentSession) *model.DocumentSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.DocumentSession{
		Id:           s.Id,
		Status:       s.Status,
		ObjectKey:    s.ObjectKey,
		EmbeddingDim: s.EmbeddingDim,
		ChunkCount:   s.ChunkCount,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}
