package service

import (
	"context"
	"time"

	"ai-docquery-be/internal/apperr"
	"ai-docquery-be/internal/constant"
	"ai-docquery-be/internal/dto"
	"ai-docquery-be/internal/entity"
	"ai-docquery-be/internal/pkg/logger"
	"ai-docquery-be/internal/repository/contract"
	"ai-docquery-be/pkg/blob"
	"ai-docquery-be/pkg/events"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context) (*dto.CreateSessionResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowSessionResponse, error)
}

type sessionService struct {
	sessionRepo    contract.DocumentSessionRepository
	chunkRepo      contract.DocumentChunkRepository
	blobStore      blob.Store
	eventPublisher EventPublisher
	log            logger.ILogger
	uploadTTL      time.Duration
}

func NewSessionService(
	sessionRepo contract.DocumentSessionRepository,
	chunkRepo contract.DocumentChunkRepository,
	blobStore blob.Store,
	eventPublisher EventPublisher,
	log logger.ILogger,
	uploadTTL time.Duration,
) ISessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		chunkRepo:      chunkRepo,
		blobStore:      blobStore,
		eventPublisher: eventPublisher,
		log:            log,
		uploadTTL:      uploadTTL,
	}
}

// Create reserves a session id, issues a time-limited upload URL for the
// document and records the session as AWAITING_UPLOAD.
func (s *sessionService) Create(ctx context.Context) (*dto.CreateSessionResponse, error) {
	sessionId := uuid.New()
	objectKey := blob.ObjectKey(sessionId.String())

	uploadUrl, err := s.blobStore.PresignUpload(ctx, objectKey, s.uploadTTL)
	if err != nil {
		return nil, err
	}

	session := entity.DocumentSession{
		Id:        sessionId,
		Status:    constant.SessionStatusAwaitingUpload,
		ObjectKey: objectKey,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessionRepo.Create(ctx, &session); err != nil {
		return nil, &apperr.StoreError{Op: "create session", Err: err}
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewSessionCreated(sessionId.String())); err != nil {
			s.log.Warn("session", "Failed to publish SESSION_CREATED event", map[string]interface{}{
				"session_id": sessionId.String(),
				"error":      err.Error(),
			})
		}
	}

	return &dto.CreateSessionResponse{
		SessionId: sessionId,
		UploadUrl: uploadUrl,
	}, nil
}

// Show reports the session's lifecycle status and how many chunks have been
// stored so far, for upload-progress polling.
func (s *sessionService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowSessionResponse, error) {
	session, err := s.sessionRepo.FindById(ctx, id)
	if err != nil {
		return nil, &apperr.StoreError{Op: "find session", Err: err}
	}
	if session == nil {
		return nil, apperr.ErrSessionNotFound
	}

	count, err := s.chunkRepo.CountBySessionId(ctx, id)
	if err != nil {
		return nil, &apperr.StoreError{Op: "count chunks", Err: err}
	}

	return &dto.ShowSessionResponse{
		SessionId:  session.Id,
		Status:     session.Status,
		ChunkCount: int(count),
		CreatedAt:  session.CreatedAt,
	}, nil
}
