package service

import (
	"context"
	"sync"

	"ai-docquery-be/internal/entity"
	"ai-docquery-be/pkg/events"
	"ai-docquery-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory fakes for the repository contracts and external providers.

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.DocumentSession

	findErr error

	markReadyCalls []markReadyCall
	statusUpdates  []string
}

type markReadyCall struct {
	Id           uuid.UUID
	EmbeddingDim int
	ChunkCount   int
}

func newFakeSessionRepo(seed ...*entity.DocumentSession) *fakeSessionRepo {
	r := &fakeSessionRepo{sessions: map[uuid.UUID]*entity.DocumentSession{}}
	for _, s := range seed {
		r.sessions[s.Id] = s
	}
	return r
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.DocumentSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Id] = session
	return nil
}

func (r *fakeSessionRepo) FindById(_ context.Context, id uuid.UUID) (*entity.DocumentSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.sessions[id], nil
}

func (r *fakeSessionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.Status = status
	}
	r.statusUpdates = append(r.statusUpdates, status)
	return nil
}

func (r *fakeSessionRepo) MarkReady(_ context.Context, id uuid.UUID, embeddingDim, chunkCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markReadyCalls = append(r.markReadyCalls, markReadyCall{Id: id, EmbeddingDim: embeddingDim, ChunkCount: chunkCount})
	return nil
}

type fakeChunkRepo struct {
	mu     sync.Mutex
	chunks map[string]*entity.DocumentChunk // keyed session_id/chunk_id

	upsertErr error
	findErr   error
}

func newFakeChunkRepo() *fakeChunkRepo {
	return &fakeChunkRepo{chunks: map[string]*entity.DocumentChunk{}}
}

func (r *fakeChunkRepo) Upsert(_ context.Context, chunk *entity.DocumentChunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	cp := *chunk
	r.chunks[chunk.SessionId.String()+"/"+chunk.ChunkId] = &cp
	return nil
}

func (r *fakeChunkRepo) FindBySessionId(_ context.Context, sessionId uuid.UUID) ([]*entity.DocumentChunk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*entity.DocumentChunk
	for _, c := range r.chunks {
		if c.SessionId == sessionId {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeChunkRepo) CountBySessionId(_ context.Context, sessionId uuid.UUID) (int64, error) {
	list, err := r.FindBySessionId(context.Background(), sessionId)
	return int64(len(list)), err
}

type fakeEmbedder struct {
	mu    sync.Mutex
	calls int
	fn    func(text string) ([]float32, error)
}

func (e *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	return e.fn(text)
}

func (e *fakeEmbedder) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

type fakeLLM struct {
	mu      sync.Mutex
	calls   int
	history []llm.Message
	answer  string
	err     error
}

func (f *fakeLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.history = history
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

type fakeEventPublisher struct {
	mu        sync.Mutex
	published []events.Event
	err       error
}

func (f *fakeEventPublisher) Publish(_ context.Context, e events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, e)
	return nil
}

type capturingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *capturingLogger) Debug(string, string, map[string]interface{}) {}
func (l *capturingLogger) Info(string, string, map[string]interface{})  {}
func (l *capturingLogger) Warn(_, message string, _ map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, message)
}
func (l *capturingLogger) Error(string, string, map[string]interface{}) {}
func (l *capturingLogger) Sync() error                                  { return nil }

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
