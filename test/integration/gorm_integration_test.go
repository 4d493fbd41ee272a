package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"ai-docquery-be/internal/constant"
	"ai-docquery-be/internal/entity"
	"ai-docquery-be/internal/model"
	"ai-docquery-be/internal/repository/implementation"
	"ai-docquery-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	sessionRepo := implementation.NewDocumentSessionRepository(gormDB)
	chunkRepo := implementation.NewDocumentChunkRepository(gormDB)

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	ctx := context.Background()
	sessionId := uuid.New()

	defer func() {
		// Cleanup
		gormDB.Where("session_id = ?", sessionId).Delete(&model.DocumentChunk{})
		gormDB.Delete(&model.DocumentSession{}, sessionId)
	}()

	t.Run("Create and Find Session", func(t *testing.T) {
		err := sessionRepo.Create(ctx, &entity.DocumentSession{
			Id:        sessionId,
			Status:    constant.SessionStatusAwaitingUpload,
			ObjectKey: "uploads/" + sessionId.String() + ".pdf",
		})
		assert.NoError(t, err)

		found, err := sessionRepo.FindById(ctx, sessionId)
		assert.NoError(t, err)
		assert.NotNil(t, found)
		assert.Equal(t, constant.SessionStatusAwaitingUpload, found.Status)
	})

	t.Run("Find Missing Session returns nil", func(t *testing.T) {
		found, err := sessionRepo.FindById(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("Upsert Chunk is idempotent", func(t *testing.T) {
		// Column is vector(1536), so the test embedding must match.
		emb := make([]float32, 1536)
		emb[0] = 0.1
		emb[1] = 0.2

		chunk := &entity.DocumentChunk{
			SessionId: sessionId,
			ChunkId:   "chunk_0",
			Text:      "First version.",
			Embedding: emb,
			Order:     0,
		}
		assert.NoError(t, chunkRepo.Upsert(ctx, chunk))

		// Re-ingesting the same chunk id must overwrite, not duplicate.
		chunk.Text = "Second version."
		assert.NoError(t, chunkRepo.Upsert(ctx, chunk))

		chunks, err := chunkRepo.FindBySessionId(ctx, sessionId)
		assert.NoError(t, err)
		assert.Len(t, chunks, 1)
		assert.Equal(t, "Second version.", chunks[0].Text)

		count, err := chunkRepo.CountBySessionId(ctx, sessionId)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("MarkReady records ingestion result", func(t *testing.T) {
		err := sessionRepo.MarkReady(ctx, sessionId, 1536, 1)
		assert.NoError(t, err)

		found, err := sessionRepo.FindById(ctx, sessionId)
		assert.NoError(t, err)
		assert.Equal(t, constant.SessionStatusReadyForQuery, found.Status)
		assert.Equal(t, 1536, found.EmbeddingDim)
		assert.Equal(t, 1, found.ChunkCount)
	})
}
