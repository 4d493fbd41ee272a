package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-docquery-be/internal/apperr"
	"ai-docquery-be/internal/constant"
	"ai-docquery-be/internal/dto"
	"ai-docquery-be/internal/entity"
	"ai-docquery-be/internal/pkg/logger"
	"ai-docquery-be/internal/repository/contract"
	"ai-docquery-be/internal/repository/memory"
	"ai-docquery-be/pkg/blob"
	"ai-docquery-be/pkg/embedding"
	"ai-docquery-be/pkg/events"
	"ai-docquery-be/pkg/extract"
	"ai-docquery-be/pkg/rag/splitter"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// embedConcurrency caps parallel embedding calls per document so one large
// ingestion does not flood the provider.
const embedConcurrency = 4

type IIngestionService interface {
	// Queue verifies the session and enqueues an ingestion job on the
	// in-process bus. The heavy work happens in the consumer.
	Queue(ctx context.Context, req *dto.IngestRequest) (*dto.IngestResponse, error)

	// Consume starts the background worker that processes queued jobs.
	Consume(ctx context.Context) error

	// IngestText runs the core pipeline for already-extracted text:
	// segment, embed, store, then mark the session ready.
	IngestText(ctx context.Context, sessionId uuid.UUID, fullText string) (int, error)
}

type ingestionService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	publisherService  IPublisherService
	sessionRepo       contract.DocumentSessionRepository
	chunkRepo         contract.DocumentChunkRepository
	sessionCache      *memory.SessionCache
	blobStore         blob.Store
	embeddingProvider embedding.Provider
	eventPublisher    EventPublisher
	log               logger.ILogger
	chunkMaxChars     int
}

func NewIngestionService(
	pubSub *gochannel.GoChannel,
	topicName string,
	publisherService IPublisherService,
	sessionRepo contract.DocumentSessionRepository,
	chunkRepo contract.DocumentChunkRepository,
	sessionCache *memory.SessionCache,
	blobStore blob.Store,
	embeddingProvider embedding.Provider,
	eventPublisher EventPublisher,
	log logger.ILogger,
	chunkMaxChars int,
) IIngestionService {
	return &ingestionService{
		pubSub:            pubSub,
		topicName:         topicName,
		publisherService:  publisherService,
		sessionRepo:       sessionRepo,
		chunkRepo:         chunkRepo,
		sessionCache:      sessionCache,
		blobStore:         blobStore,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		log:               log,
		chunkMaxChars:     chunkMaxChars,
	}
}

func (s *ingestionService) Queue(ctx context.Context, req *dto.IngestRequest) (*dto.IngestResponse, error) {
	session, err := s.sessionRepo.FindById(ctx, req.SessionId)
	if err != nil {
		return nil, &apperr.StoreError{Op: "find session", Err: err}
	}
	if session == nil {
		return nil, apperr.ErrSessionNotFound
	}

	payload, err := json.Marshal(dto.IngestJobMessage{SessionId: req.SessionId})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		return nil, err
	}

	return &dto.IngestResponse{
		SessionId: req.SessionId,
		Queued:    true,
	}, nil
}

func (s *ingestionService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *ingestionService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestJobMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Error("ingestion", "Failed to unmarshal ingest job", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed jobs are never retriable
		return
	}

	s.log.Info("ingestion", "Processing document ingestion", map[string]interface{}{
		"session_id": payload.SessionId.String(),
	})

	session, err := s.sessionRepo.FindById(ctx, payload.SessionId)
	if err != nil {
		s.log.Error("ingestion", "Failed to load session", map[string]interface{}{"error": err.Error()})
		msg.Nack() // retriable
		return
	}
	if session == nil {
		s.log.Warn("ingestion", "Session not found, dropping job", map[string]interface{}{
			"session_id": payload.SessionId.String(),
		})
		msg.Ack()
		return
	}

	data, err := s.blobStore.Fetch(ctx, session.ObjectKey)
	if err != nil {
		// The object may simply not be uploaded yet; let the bus retry.
		s.log.Warn("ingestion", "Failed to fetch document from blob storage", map[string]interface{}{
			"session_id": session.Id.String(),
			"object_key": session.ObjectKey,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	fullText, err := extract.PDFText(data)
	if err != nil {
		// Undecodable document: no amount of retries will fix this.
		s.markFailed(ctx, session.Id, fmt.Sprintf("text extraction: %v", err))
		msg.Ack()
		return
	}

	count, err := s.IngestText(ctx, session.Id, fullText)
	if err != nil {
		s.markFailed(ctx, session.Id, err.Error())
		msg.Ack()
		return
	}

	s.log.Info("ingestion", "Session ready for query", map[string]interface{}{
		"session_id":     session.Id.String(),
		"chunks_created": count,
	})

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewSessionReady(session.Id.String(), count)); err != nil {
			s.log.Warn("ingestion", "Failed to publish SESSION_READY event", map[string]interface{}{"error": err.Error()})
		}
	}

	msg.Ack()
}

func (s *ingestionService) IngestText(ctx context.Context, sessionId uuid.UUID, fullText string) (int, error) {
	chunks := splitter.Split(fullText, s.chunkMaxChars)

	if len(chunks) == 0 {
		// An empty document is not an error; the session just has nothing
		// to answer from and queries will report "no chunks found".
		if err := s.sessionRepo.MarkReady(ctx, sessionId, 0, 0); err != nil {
			return 0, &apperr.StoreError{Op: "mark session ready", Err: err}
		}
		s.sessionCache.Delete(sessionId.String())
		return 0, nil
	}

	// Embed all chunks before writing anything: a missing vector at a known
	// order would corrupt the session's coverage, so the whole batch fails
	// together.
	vectors := make([][]float32, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			vec, err := s.embeddingProvider.Embed(gctx, chunk)
			if err != nil {
				return &apperr.VectorizationError{Err: err}
			}
			if len(vec) == 0 {
				return &apperr.VectorizationError{Err: fmt.Errorf("provider returned empty vector")}
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	// The first vector fixes the session's dimensionality.
	dim := len(vectors[0])
	for _, vec := range vectors {
		if len(vec) != dim {
			return 0, &apperr.DimensionMismatchError{Want: dim, Got: len(vec)}
		}
	}

	now := time.Now().UTC()
	wg, wctx := errgroup.WithContext(ctx)
	wg.SetLimit(embedConcurrency)
	for i, chunk := range chunks {
		wg.Go(func() error {
			err := s.chunkRepo.Upsert(wctx, &entity.DocumentChunk{
				SessionId: sessionId,
				ChunkId:   fmt.Sprintf("%s%d", constant.ChunkIdPrefix, i),
				Text:      chunk,
				Embedding: vectors[i],
				Order:     i,
				CreatedAt: now,
			})
			if err != nil {
				return &apperr.StoreError{Op: "upsert chunk", Err: err}
			}
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return 0, err
	}

	// Barrier passed: every chunk write completed, the session may go live.
	if err := s.sessionRepo.MarkReady(ctx, sessionId, dim, len(chunks)); err != nil {
		return 0, &apperr.StoreError{Op: "mark session ready", Err: err}
	}
	s.sessionCache.Delete(sessionId.String())

	return len(chunks), nil
}

func (s *ingestionService) markFailed(ctx context.Context, sessionId uuid.UUID, reason string) {
	s.log.Error("ingestion", "Ingestion failed", map[string]interface{}{
		"session_id": sessionId.String(),
		"reason":     reason,
	})

	if err := s.sessionRepo.UpdateStatus(ctx, sessionId, constant.SessionStatusFailed); err != nil {
		s.log.Error("ingestion", "Failed to mark session FAILED", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
	}
	s.sessionCache.Delete(sessionId.String())

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewSessionFailed(sessionId.String(), reason)); err != nil {
			s.log.Warn("ingestion", "Failed to publish SESSION_FAILED event", map[string]interface{}{"error": err.Error()})
		}
	}
}
