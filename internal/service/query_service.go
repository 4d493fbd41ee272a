package service

import (
	"context"

	"ai-docquery-be/internal/apperr"
	"ai-docquery-be/internal/dto"
	"ai-docquery-be/internal/entity"
	"ai-docquery-be/internal/pkg/logger"
	"ai-docquery-be/internal/repository/contract"
	"ai-docquery-be/internal/repository/memory"
	"ai-docquery-be/pkg/cache"
	"ai-docquery-be/pkg/embedding"
	"ai-docquery-be/pkg/llm"
	"ai-docquery-be/pkg/rag/prompt"
	"ai-docquery-be/pkg/rag/ranker"

	"golang.org/x/sync/errgroup"
)

// answerMaxTokens caps the generated answer length.
const answerMaxTokens = 400

type IQueryService interface {
	Answer(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error)
}

type queryService struct {
	sessionRepo       contract.DocumentSessionRepository
	chunkRepo         contract.DocumentChunkRepository
	sessionCache      *memory.SessionCache
	answerCache       *cache.AnswerCache
	embeddingProvider embedding.Provider
	llmProvider       llm.Provider
	log               logger.ILogger
	topK              int
}

func NewQueryService(
	sessionRepo contract.DocumentSessionRepository,
	chunkRepo contract.DocumentChunkRepository,
	sessionCache *memory.SessionCache,
	answerCache *cache.AnswerCache,
	embeddingProvider embedding.Provider,
	llmProvider llm.Provider,
	log logger.ILogger,
	topK int,
) IQueryService {
	if topK <= 0 {
		topK = ranker.DefaultTopK
	}
	return &queryService{
		sessionRepo:       sessionRepo,
		chunkRepo:         chunkRepo,
		sessionCache:      sessionCache,
		answerCache:       answerCache,
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
		log:               log,
		topK:              topK,
	}
}

// Answer runs the retrieval pipeline: resolve the session, embed the query,
// rank the session's chunks by cosine similarity, and hand the top-k texts
// to the LLM as grounding context. The session check happens before any
// external call so an unknown sessionId never spends provider quota.
func (s *queryService) Answer(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	session, err := s.lookupSession(ctx, req)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperr.ErrSessionNotFound
	}

	if answer, ok := s.answerCache.Get(ctx, session.Id.String(), req.Query); ok {
		s.log.Debug("query", "Answer cache hit", map[string]interface{}{
			"session_id": session.Id.String(),
		})
		return &dto.QueryResponse{SessionId: session.Id, Answer: answer}, nil
	}

	// Query vectorization and the chunk scan are independent; run both
	// before the ranking step that needs their results.
	var (
		queryVector []float32
		chunks      []*entity.DocumentChunk
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vec, embedErr := s.embeddingProvider.Embed(gctx, req.Query)
		if embedErr != nil {
			return &apperr.VectorizationError{Err: embedErr}
		}
		queryVector = vec
		return nil
	})
	g.Go(func() error {
		list, listErr := s.chunkRepo.FindBySessionId(gctx, session.Id)
		if listErr != nil {
			return &apperr.StoreError{Op: "list chunks", Err: listErr}
		}
		chunks = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(chunks) == 0 {
		return nil, apperr.ErrNoChunks
	}

	ranked := ranker.Rank(queryVector, toRankerChunks(chunks), s.topK)
	if len(ranked) == 0 {
		// Chunks existed but none carried a usable embedding.
		return nil, apperr.ErrNoChunks
	}

	contexts := make([]string, len(ranked))
	for i, sc := range ranked {
		contexts[i] = sc.Text
	}

	builder := prompt.NewGroundedBuilder(contexts, req.Query)
	answer, err := s.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: prompt.SystemInstruction},
		{Role: "user", Content: builder.Build()},
	}, llm.WithMaxTokens(answerMaxTokens))
	if err != nil {
		return nil, &apperr.GenerationError{Err: err}
	}

	s.answerCache.Set(ctx, session.Id.String(), req.Query, answer)

	return &dto.QueryResponse{
		SessionId: session.Id,
		Answer:    answer,
	}, nil
}

func (s *queryService) lookupSession(ctx context.Context, req *dto.QueryRequest) (*entity.DocumentSession, error) {
	if cached, found := s.sessionCache.Get(req.SessionId.String()); found {
		return cached, nil
	}

	session, err := s.sessionRepo.FindById(ctx, req.SessionId)
	if err != nil {
		return nil, &apperr.StoreError{Op: "find session", Err: err}
	}
	if session != nil {
		s.sessionCache.Save(session)
	}
	return session, nil
}

func toRankerChunks(chunks []*entity.DocumentChunk) []ranker.Chunk {
	out := make([]ranker.Chunk, len(chunks))
	for i, c := range chunks {
		out[i] = ranker.Chunk{
			ChunkId:   c.ChunkId,
			Text:      c.Text,
			Embedding: c.Embedding,
			Order:     c.Order,
		}
	}
	return out
}
