package prompt

import "strings"

// ContextSeparator joins the ranked chunk texts into one context block.
const ContextSeparator = "\n\n---\n\n"

// SystemInstruction constrains the model to the retrieved context only.
const SystemInstruction = "You answer using only the provided context."

// GroundedBuilder assembles the final retrieval-augmented prompt from the
// ranked chunk texts and the user's question.
type GroundedBuilder struct {
	contexts []string
	query    string
}

// NewGroundedBuilder creates a builder for one query. Chunk texts must
// already be in rank order; that order is preserved in the context block.
func NewGroundedBuilder(contexts []string, query string) *GroundedBuilder {
	return &GroundedBuilder{
		contexts: contexts,
		query:    query,
	}
}

// ContextBlock returns the ranked chunk texts joined by the separator.
func (b *GroundedBuilder) ContextBlock() string {
	return strings.Join(b.contexts, ContextSeparator)
}

// Build renders the contextual prompt handed to the generation model.
func (b *GroundedBuilder) Build() string {
	var prompt strings.Builder

	prompt.WriteString("You are a legal assistant. Use only the provided contract text to answer.\n\n")
	prompt.WriteString("CONTEXT:\n")
	prompt.WriteString(b.ContextBlock())
	prompt.WriteString("\n\nUSER QUESTION:\n")
	prompt.WriteString(b.query)
	prompt.WriteString("\n\nGive a precise legal answer grounded strictly in the document.\n")

	return prompt.String()
}
