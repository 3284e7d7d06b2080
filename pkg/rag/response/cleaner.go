package response

import (
	"regexp"
	"strings"
)

var (
	// Closed reasoning blocks, possibly spanning lines.
	closedReasoning = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<think>.*?</think>`),
		regexp.MustCompile(`(?is)<thought>.*?</thought>`),
	}
	// An opening tag with no close means the generation was cut off inside it.
	unclosedReasoning = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<think>.*`),
		regexp.MustCompile(`(?is)<thought>.*`),
	}

	separatorRuns = []*regexp.Regexp{
		regexp.MustCompile(`_{3,}`),
		regexp.MustCompile(`-{3,}`),
		regexp.MustCompile(`={3,}`),
		regexp.MustCompile(`\*{3,}`),
	}
)

// CleanModelOutput removes reasoning blocks, bold markers and leading list
// dashes from raw completion text.
//
// The pass is repeated until the text stops changing. Every pass only deletes
// characters, so this terminates, and the result is stable under reapplication.
// A consequence is that a run of leading markers is removed entirely: each
// pass drops one, so "--5 degrees" becomes "5 degrees", not "-5 degrees".
func CleanModelOutput(raw string) string {
	out := cleanOnce(raw)
	for {
		next := cleanOnce(out)
		if next == out {
			return out
		}
		out = next
	}
}

func cleanOnce(s string) string {
	for _, re := range closedReasoning {
		s = re.ReplaceAllString(s, "")
	}
	for _, re := range unclosedReasoning {
		s = re.ReplaceAllString(s, "")
	}

	s = strings.ReplaceAll(s, "**", "")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") {
			line = line[2:]
		} else if strings.HasPrefix(line, "-") {
			line = line[1:]
		}
		lines[i] = line
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// CleanForSpeech strips separator lines and emphasis markers that read badly
// when the text is displayed or spoken.
func CleanForSpeech(text string) string {
	if text == "" {
		return ""
	}
	for _, re := range separatorRuns {
		text = re.ReplaceAllString(text, "")
	}
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	return strings.TrimSpace(text)
}
