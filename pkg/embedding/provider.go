package embedding

import "context"

// Provider turns a text unit into a fixed-length vector. One external call
// per invocation; callers treat any error as fatal to the enclosing
// ingestion or query step.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
