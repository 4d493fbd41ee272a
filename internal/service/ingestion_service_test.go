package service

import (
	"context"
	"errors"
	"testing"

	"ai-docquery-be/internal/apperr"
	"ai-docquery-be/internal/constant"
	"ai-docquery-be/internal/dto"
	"ai-docquery-be/internal/entity"
	"ai-docquery-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type recordingPublisher struct {
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

func newIngestionServiceForTest(
	sessionRepo *fakeSessionRepo,
	chunkRepo *fakeChunkRepo,
	embedder *fakeEmbedder,
	publisher IPublisherService,
) IIngestionService {
	return NewIngestionService(
		nil, // bus not exercised by these tests
		"INGEST_DOCUMENT",
		publisher,
		sessionRepo,
		chunkRepo,
		memory.NewSessionCache(),
		nil, // blob store not exercised by IngestText
		embedder,
		nil,
		nopLogger{},
		0, // default chunk budget
	)
}

func TestIngestText_SegmentsEmbedsAndMarksReady(t *testing.T) {
	sessionId := uuid.New()
	sessionRepo := newFakeSessionRepo(&entity.DocumentSession{
		Id:     sessionId,
		Status: constant.SessionStatusAwaitingUpload,
	})
	chunkRepo := newFakeChunkRepo()
	embedder := &fakeEmbedder{fn: func(text string) ([]float32, error) {
		return []float32{float32(len(text)), 1, 2}, nil
	}}
	svc := newIngestionServiceForTest(sessionRepo, chunkRepo, embedder, nil)

	// An oversized first paragraph forces two chunks under the default budget.
	first := ""
	for i := 0; i < 90; i++ {
		first += "Long text. "
	}
	text := first + "\n\nShort closing paragraph."

	count, err := svc.IngestText(context.Background(), sessionId, text)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	chunks, _ := chunkRepo.FindBySessionId(context.Background(), sessionId)
	assert.Len(t, chunks, 2)

	byId := map[string]*entity.DocumentChunk{}
	for _, c := range chunks {
		byId[c.ChunkId] = c
	}
	assert.Contains(t, byId, "chunk_0")
	assert.Contains(t, byId, "chunk_1")
	assert.Equal(t, 0, byId["chunk_0"].Order)
	assert.Equal(t, 1, byId["chunk_1"].Order)
	assert.Len(t, byId["chunk_0"].Embedding, 3)

	assert.Len(t, sessionRepo.markReadyCalls, 1)
	assert.Equal(t, markReadyCall{Id: sessionId, EmbeddingDim: 3, ChunkCount: 2}, sessionRepo.markReadyCalls[0])
}

func TestIngestText_EmptyDocument(t *testing.T) {
	sessionId := uuid.New()
	sessionRepo := newFakeSessionRepo(&entity.DocumentSession{Id: sessionId})
	chunkRepo := newFakeChunkRepo()
	embedder := &fakeEmbedder{fn: func(string) ([]float32, error) {
		return nil, errors.New("must not be called")
	}}
	svc := newIngestionServiceForTest(sessionRepo, chunkRepo, embedder, nil)

	count, err := svc.IngestText(context.Background(), sessionId, "   \n\n  ")
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, embedder.callCount())

	// The session still transitions so queries get "no chunks found"
	// instead of hanging in AWAITING_UPLOAD.
	assert.Len(t, sessionRepo.markReadyCalls, 1)
	assert.Equal(t, markReadyCall{Id: sessionId, EmbeddingDim: 0, ChunkCount: 0}, sessionRepo.markReadyCalls[0])
}

func TestIngestText_VectorizationFailureWritesNothing(t *testing.T) {
	sessionId := uuid.New()
	sessionRepo := newFakeSessionRepo(&entity.DocumentSession{Id: sessionId})
	chunkRepo := newFakeChunkRepo()
	embedder := &fakeEmbedder{fn: func(string) ([]float32, error) {
		return nil, errors.New("provider unavailable")
	}}
	svc := newIngestionServiceForTest(sessionRepo, chunkRepo, embedder, nil)

	_, err := svc.IngestText(context.Background(), sessionId, "A paragraph of text.")

	var vecErr *apperr.VectorizationError
	assert.ErrorAs(t, err, &vecErr)

	// Fail-fast batch: nothing is stored and the session never goes live.
	count, _ := chunkRepo.CountBySessionId(context.Background(), sessionId)
	assert.Equal(t, int64(0), count)
	assert.Empty(t, sessionRepo.markReadyCalls)
}

func TestIngestText_DimensionMismatch(t *testing.T) {
	sessionId := uuid.New()
	sessionRepo := newFakeSessionRepo(&entity.DocumentSession{Id: sessionId})
	chunkRepo := newFakeChunkRepo()

	dims := []int{3, 4}
	var call int
	embedder := &fakeEmbedder{fn: func(string) ([]float32, error) {
		d := dims[call%len(dims)]
		call++
		return make([]float32, d), nil
	}}
	svc := newIngestionServiceForTest(sessionRepo, chunkRepo, embedder, nil)

	first := ""
	for i := 0; i < 90; i++ {
		first += "Long text. "
	}
	text := first + "\n\nShort closing paragraph."

	_, err := svc.IngestText(context.Background(), sessionId, text)

	var dimErr *apperr.DimensionMismatchError
	assert.ErrorAs(t, err, &dimErr)

	count, _ := chunkRepo.CountBySessionId(context.Background(), sessionId)
	assert.Equal(t, int64(0), count)
	assert.Empty(t, sessionRepo.markReadyCalls)
}

func TestIngestText_RerunOverwritesChunks(t *testing.T) {
	sessionId := uuid.New()
	sessionRepo := newFakeSessionRepo(&entity.DocumentSession{Id: sessionId})
	chunkRepo := newFakeChunkRepo()
	embedder := &fakeEmbedder{fn: func(string) ([]float32, error) {
		return []float32{1, 2, 3}, nil
	}}
	svc := newIngestionServiceForTest(sessionRepo, chunkRepo, embedder, nil)

	text := "Single paragraph document."

	count, err := svc.IngestText(context.Background(), sessionId, text)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	// Re-ingestion reuses the same chunk ids, so no duplicates appear.
	count, err = svc.IngestText(context.Background(), sessionId, text)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, _ := chunkRepo.CountBySessionId(context.Background(), sessionId)
	assert.Equal(t, int64(1), stored)
}

func TestQueue_UnknownSession(t *testing.T) {
	publisher := &recordingPublisher{}
	svc := newIngestionServiceForTest(newFakeSessionRepo(), newFakeChunkRepo(), nil, publisher)

	_, err := svc.Queue(context.Background(), &dto.IngestRequest{SessionId: uuid.New()})

	assert.ErrorIs(t, err, apperr.ErrSessionNotFound)
	assert.Empty(t, publisher.payloads)
}

func TestQueue_PublishesJob(t *testing.T) {
	sessionId := uuid.New()
	publisher := &recordingPublisher{}
	sessionRepo := newFakeSessionRepo(&entity.DocumentSession{Id: sessionId})
	svc := newIngestionServiceForTest(sessionRepo, newFakeChunkRepo(), nil, publisher)

	res, err := svc.Queue(context.Background(), &dto.IngestRequest{SessionId: sessionId})
	assert.NoError(t, err)
	assert.True(t, res.Queued)
	assert.Equal(t, sessionId, res.SessionId)

	assert.Len(t, publisher.payloads, 1)
	assert.Contains(t, string(publisher.payloads[0]), sessionId.String())
}
