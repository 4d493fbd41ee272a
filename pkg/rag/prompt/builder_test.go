package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextBlockJoinsInRankOrder(t *testing.T) {
	b := NewGroundedBuilder([]string{"first", "second", "third"}, "q")

	assert.Equal(t, "first\n\n---\n\nsecond\n\n---\n\nthird", b.ContextBlock())
}

func TestBuildContainsContextAndQuestion(t *testing.T) {
	b := NewGroundedBuilder([]string{"Clause 4.2 limits liability."}, "Who is liable?")

	got := b.Build()

	assert.Contains(t, got, "CONTEXT:\nClause 4.2 limits liability.")
	assert.Contains(t, got, "USER QUESTION:\nWho is liable?")
}
