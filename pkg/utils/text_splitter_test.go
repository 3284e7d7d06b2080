package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText_ShortAndEmpty(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty document", text: "", want: nil},
		{name: "short document", text: "SMIU admissions open in July.\n\nApply online.", want: []string{"SMIU admissions open in July.\n\nApply online."}},
		{name: "exactly chunk size", text: strings.Repeat("a", 1200), want: []string{strings.Repeat("a", 1200)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitText(tt.text, 1200, 350))
		})
	}
}

func TestSplitText_HardCutCountAndOverlap(t *testing.T) {
	text := strings.Repeat("x", 10000)

	chunks := SplitText(text, 1200, 350)

	// ceil((10000-1200)/850) + 1
	require.Len(t, chunks, 12)
	for i, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 1200, "chunk %d too long", i)
	}
	assertExactOverlap(t, text, chunks, 350)
}

func TestSplitText_PrefersHigherSeparators(t *testing.T) {
	// 750 runes per paragraph, the paragraph break comes before the line break
	para := strings.Repeat("word ", 150)
	text := para + "\n\n" + para + "\n" + para

	chunks := SplitText(text, 1200, 350)

	require.GreaterOrEqual(t, len(chunks), 2)
	assert.True(t, strings.HasSuffix(chunks[0], "\n\n"), "first chunk should end on the paragraph break")
	assertExactOverlap(t, text, chunks, 350)
}

func TestSplitText_SentenceBeforeWord(t *testing.T) {
	sentence := strings.Repeat("fee ", 100) + "due. " // 405 runes
	text := strings.Repeat(sentence, 6)

	chunks := SplitText(text, 1200, 350)

	require.Greater(t, len(chunks), 1)
	assert.True(t, strings.HasSuffix(chunks[0], "due. "))
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 1200)
	}
	assertExactOverlap(t, text, chunks, 350)
}

func TestSplitText_SeparatorInsideOverlapIsSkipped(t *testing.T) {
	// the only newline sits inside the overlap region, so the splitter must
	// fall through to spaces instead of cutting there and stalling
	text := strings.Repeat("b", 100) + "\n" + strings.Repeat("c ", 1000)

	chunks := SplitText(text, 1200, 350)

	require.Greater(t, len(chunks), 1)
	assert.Greater(t, len([]rune(chunks[0])), 350)
	assertExactOverlap(t, text, chunks, 350)
}

func TestSplitText_Multibyte(t *testing.T) {
	text := strings.Repeat("جامعہ ", 600)

	chunks := SplitText(text, 1200, 350)

	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 1200)
	}
	assertExactOverlap(t, text, chunks, 350)
}

// assertExactOverlap checks that every chunk starts with the last overlap runes of
// the previous one and that stitching the chunks back together yields the source.
func assertExactOverlap(t *testing.T, text string, chunks []string, overlap int) {
	t.Helper()

	var rebuilt []rune
	for i, c := range chunks {
		r := []rune(c)
		if i == 0 {
			rebuilt = append(rebuilt, r...)
			continue
		}
		prev := []rune(chunks[i-1])
		require.GreaterOrEqual(t, len(r), overlap)
		assert.Equal(t, string(prev[len(prev)-overlap:]), string(r[:overlap]), "chunk %d overlap", i)
		rebuilt = append(rebuilt, r[overlap:]...)
	}
	assert.Equal(t, text, string(rebuilt))
}
