package mapper

import (
	"ai-docquery-be/internal/entity"
	"ai-docquery-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}

	return &entity.DocumentChunk{
		SessionId: c.SessionId,
		ChunkId:   c.ChunkId,
		Text:      c.Document,
		Embedding: c.EmbeddingValue.Slice(),
		Order:     c.ChunkOrder,
		CreatedAt: c.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToModel(c *entity.DocumentChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}

	return &model.DocumentChunk{
		SessionId:      c.SessionId,
		ChunkId:        c.ChunkId,
		Document:       c.Text,
		EmbeddingValue: pgvector.NewVector(c.Embedding),
		ChunkOrder:     c.Order,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToEntities(chunks []*model.DocumentChunk) []*entity.DocumentChunk {
	entities := make([]*entity.DocumentChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
