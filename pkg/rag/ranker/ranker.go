package ranker

import (
	"math"
	"sort"
)

// DefaultTopK matches the number of chunks handed to the LLM as grounding
// context.
const DefaultTopK = 3

// cosineEpsilon guards the division when either vector has zero norm. It is
// far below any realistic norm, so scores of non-degenerate vectors are
// unaffected.
const cosineEpsilon = 1e-9

// Chunk is the ranker's view of a stored document chunk.
type Chunk struct {
	ChunkId   string
	Text      string
	Embedding []float32
	Order     int
}

// ScoredChunk pairs a chunk with its cosine similarity to the query.
type ScoredChunk struct {
	Chunk
	Score float64
}

// Rank scores every chunk against the query vector and returns at most k
// results, highest score first. Chunks without an embedding are skipped
// entirely rather than scored as zero, so they never occupy a result slot.
//
// Equal scores are broken by ascending chunk order. The tie-break is a
// documented policy: identical inputs must always produce identical output.
func Rank(query []float32, chunks []Chunk, k int) []ScoredChunk {
	if k <= 0 {
		k = DefaultTopK
	}

	scored := make([]ScoredChunk, 0, len(chunks))
	for _, c := range chunks {
		if len(c.Embedding) == 0 {
			continue
		}
		scored = append(scored, ScoredChunk{
			Chunk: c,
			Score: CosineSimilarity(query, c.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Order < scored[j].Order
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// CosineSimilarity computes dot(a,b) / (||a||*||b|| + eps). When the vectors
// differ in length only the overlapping prefix contributes to the dot
// product; norms are taken over each full vector.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}

	var normA, normB float64
	for _, v := range a {
		normA += float64(v) * float64(v)
	}
	for _, v := range b {
		normB += float64(v) * float64(v)
	}

	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + cosineEpsilon)
}
