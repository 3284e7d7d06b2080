package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStudentBuilder_Build(t *testing.T) {
	out := NewStudentBuilder("Fee for BSCS is 60,000 PKR.\n\nDeadline is 1 Aug.", "What is the BSCS fee?").Build()

	assert.Contains(t, out, "Context from university documents:\nFee for BSCS is 60,000 PKR.\n\nDeadline is 1 Aug.\n\n")
	assert.Contains(t, out, "Student Question: What is the BSCS fee?\n")
	assert.Contains(t, out, "I recommend contacting [relevant department/office]")
	assert.Contains(t, out, "Don't generate thinking text")
	assert.True(t, strings.HasSuffix(out, "Your Answer:"))

	// context comes before the question
	assert.Less(t, strings.Index(out, "Context from university documents"), strings.Index(out, "Student Question"))
}

func TestStudentBuilder_EmptyContext(t *testing.T) {
	out := NewStudentBuilder("", "Who is the vice chancellor?").Build()

	assert.Contains(t, out, "Context from university documents:\n\n\nStudent Question: Who is the vice chancellor?")
	assert.Contains(t, out, "not available in the university documents")
}
