package implementation

import (
	"context"
	"errors"

	"ai-docquery-be/internal/constant"
	"ai-docquery-be/internal/entity"
	"ai-docquery-be/internal/mapper"
	"ai-docquery-be/internal/model"
	"ai-docquery-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentSessionMapper
}

func NewDocumentSessionRepository(db *gorm.DB) contract.DocumentSessionRepository {
	return &DocumentSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentSessionMapper(),
	}
}

func (r *DocumentSessionRepositoryImpl) Create(ctx context.Context, session *entity.DocumentSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentSessionRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.DocumentSession, error) {
	var m model.DocumentSession
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentSessionRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.DocumentSession{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *DocumentSessionRepositoryImpl) MarkReady(ctx context.Context, id uuid.UUID, embeddingDim, chunkCount int) error {
	return r.db.WithContext(ctx).
		Model(&model.DocumentSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        constant.SessionStatusReadyForQuery,
			"embedding_dim": embeddingDim,
			"chunk_count":   chunkCount,
		}).Error
}
