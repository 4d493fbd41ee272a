package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-docquery-be/internal/apperr"
	"ai-docquery-be/internal/constant"
	"ai-docquery-be/internal/entity"
	"ai-docquery-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeBlobStore struct {
	presignedKeys []string
	presignExpiry time.Duration
	fetchData     []byte
	fetchErr      error
}

func (f *fakeBlobStore) PresignUpload(_ context.Context, objectKey string, expiry time.Duration) (string, error) {
	f.presignedKeys = append(f.presignedKeys, objectKey)
	f.presignExpiry = expiry
	return "https://storage.example.com/" + objectKey + "?signed", nil
}

func (f *fakeBlobStore) Fetch(context.Context, string) ([]byte, error) {
	return f.fetchData, f.fetchErr
}

func TestSessionCreate(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	blobStore := &fakeBlobStore{}
	publisher := &fakeEventPublisher{}
	svc := NewSessionService(sessionRepo, newFakeChunkRepo(), blobStore, publisher, nopLogger{}, time.Hour)

	res, err := svc.Create(context.Background())
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.SessionId)
	assert.Contains(t, res.UploadUrl, res.SessionId.String())

	// Upload URL targets the canonical per-session object key, valid 1h.
	assert.Len(t, blobStore.presignedKeys, 1)
	assert.Equal(t, "uploads/"+res.SessionId.String()+".pdf", blobStore.presignedKeys[0])
	assert.Equal(t, time.Hour, blobStore.presignExpiry)

	stored, err := sessionRepo.FindById(context.Background(), res.SessionId)
	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.Equal(t, constant.SessionStatusAwaitingUpload, stored.Status)

	assert.Len(t, publisher.published, 1)
	assert.Equal(t, events.TypeSessionCreated, publisher.published[0].EventType())
}

func TestSessionCreate_PublishFailureIsLoggedNotFatal(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	publisher := &fakeEventPublisher{err: errors.New("nats down")}
	logged := &capturingLogger{}
	svc := NewSessionService(sessionRepo, newFakeChunkRepo(), &fakeBlobStore{}, publisher, logged, time.Hour)

	res, err := svc.Create(context.Background())
	assert.NoError(t, err)

	// The session is still created and the failure goes through the
	// structured logger as a warning.
	stored, _ := sessionRepo.FindById(context.Background(), res.SessionId)
	assert.NotNil(t, stored)
	assert.Len(t, logged.warns, 1)
	assert.Contains(t, logged.warns[0], "SESSION_CREATED")
}

func TestSessionShow(t *testing.T) {
	sessionId := uuid.New()
	sessionRepo := newFakeSessionRepo(&entity.DocumentSession{
		Id:     sessionId,
		Status: constant.SessionStatusReadyForQuery,
	})
	chunkRepo := newFakeChunkRepo()
	assert.NoError(t, chunkRepo.Upsert(context.Background(), &entity.DocumentChunk{
		SessionId: sessionId,
		ChunkId:   "chunk_0",
		Text:      "clause",
	}))

	svc := NewSessionService(sessionRepo, chunkRepo, &fakeBlobStore{}, nil, nopLogger{}, time.Hour)

	res, err := svc.Show(context.Background(), sessionId)
	assert.NoError(t, err)
	assert.Equal(t, sessionId, res.SessionId)
	assert.Equal(t, constant.SessionStatusReadyForQuery, res.Status)
	assert.Equal(t, 1, res.ChunkCount)
}

func TestSessionShow_NotFound(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), newFakeChunkRepo(), &fakeBlobStore{}, nil, nopLogger{}, time.Hour)

	_, err := svc.Show(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperr.ErrSessionNotFound)
}
