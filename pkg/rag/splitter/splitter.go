package splitter

import "strings"

// DefaultMaxChars is a conservative chunk budget (~200 tokens) that keeps
// chunks small enough for embedding context limits.
const DefaultMaxChars = 800

// Split breaks document text into chunks along paragraph boundaries.
// Paragraphs (blank-line separated) are accumulated greedily: once adding the
// next paragraph would reach maxChars, the running buffer is flushed as one
// chunk and the paragraph starts a new buffer.
//
// A single paragraph longer than maxChars is emitted whole. Splitting inside
// a paragraph would break semantic coherence, so oversize paragraphs are
// accepted as-is.
//
// Empty input yields no chunks. Chunk order follows document order.
func Split(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	var chunks []string
	current := ""

	for _, paragraph := range strings.Split(text, "\n\n") {
		if len(current)+len(paragraph) < maxChars {
			current += paragraph + "\n\n"
			continue
		}
		if trimmed := strings.TrimSpace(current); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
		current = paragraph + "\n\n"
	}

	if trimmed := strings.TrimSpace(current); trimmed != "" {
		chunks = append(chunks, trimmed)
	}

	return chunks
}
