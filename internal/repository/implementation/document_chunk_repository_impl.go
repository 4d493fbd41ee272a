package implementation

import (
	"context"

	"ai-docquery-be/internal/entity"
	"ai-docquery-be/internal/mapper"
	"ai-docquery-be/internal/model"
	"ai-docquery-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentChunkMapper
}

func NewDocumentChunkRepository(db *gorm.DB) contract.DocumentChunkRepository {
	return &DocumentChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentChunkMapper(),
	}
}

func (r *DocumentChunkRepositoryImpl) Upsert(ctx context.Context, chunk *entity.DocumentChunk) error {
	m := r.mapper.ToModel(chunk)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}, {Name: "chunk_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"document", "embedding_value", "chunk_order", "updated_at",
			}),
		}).
		Create(m).Error
}

func (r *DocumentChunkRepositoryImpl) FindBySessionId(ctx context.Context, sessionId uuid.UUID) ([]*entity.DocumentChunk, error) {
	var models []*model.DocumentChunk
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentChunkRepositoryImpl) CountBySessionId(ctx context.Context, sessionId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DocumentChunk{}).
		Where("session_id = ?", sessionId).
		Count(&count).Error
	return count, err
}
