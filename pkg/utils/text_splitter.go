package utils

// DefaultSeparators are tried tier by tier when looking for a split point:
// paragraph, line, sentence, then word. A window with none of them is hard-cut.
var DefaultSeparators = [][]string{
	{"\n\n"},
	{"\n"},
	{". ", "! ", "? "},
	{" "},
}

// SplitText splits text into chunks of at most chunkSize characters where
// consecutive chunks share exactly overlap characters. Sizes are counted in runes.
func SplitText(text string, chunkSize int, overlap int) []string {
	return SplitTextWith(text, chunkSize, overlap, DefaultSeparators)
}

// SplitTextWith is SplitText with a custom separator priority list.
func SplitTextWith(text string, chunkSize int, overlap int, tiers [][]string) []string {
	if text == "" || chunkSize <= 0 {
		return nil
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}

	runes := []rune(text)
	total := len(runes)
	if total <= chunkSize {
		return []string{text}
	}

	seps := make([][][]rune, len(tiers))
	for i, tier := range tiers {
		for _, s := range tier {
			if s != "" {
				seps[i] = append(seps[i], []rune(s))
			}
		}
	}

	var chunks []string
	start := 0
	for {
		if start+chunkSize >= total {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		cut := findCut(runes[start:start+chunkSize], overlap, seps)
		chunks = append(chunks, string(runes[start:start+cut]))
		start += cut - overlap
	}

	return chunks
}

// findCut returns the window-relative position right after the last separator
// of the highest tier that still leaves the window longer than overlap.
// Without such a separator the whole window is taken.
func findCut(window []rune, overlap int, tiers [][][]rune) int {
	for _, tier := range tiers {
		best := -1
		for _, sep := range tier {
			idx := lastIndexRunes(window, sep)
			if idx < 0 {
				continue
			}
			if end := idx + len(sep); end > overlap && end > best {
				best = end
			}
		}
		if best > 0 {
			return best
		}
	}
	return len(window)
}

func lastIndexRunes(s, sep []rune) int {
	for i := len(s) - len(sep); i >= 0; i-- {
		match := true
		for j := range sep {
			if s[i+j] != sep[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
