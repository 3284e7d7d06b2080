package intent

import (
	"strings"

	"university-assistant-be/pkg/catalog"
)

// Detector maps a free-text query to the university it mentions, if any.
type Detector struct {
	keywords []catalog.KeywordEntry
}

// NewDetector creates a detector over the catalog's keyword table
func NewDetector(c *catalog.Catalog) *Detector {
	return &Detector{keywords: c.Keywords}
}

// Detect returns the university of the first keyword, in table order, that occurs
// anywhere in the lowercased query. Matching is plain substring containment, so
// short phrases such as "ku" also match inside longer words.
func (d *Detector) Detect(query string) (string, bool) {
	q := strings.ToLower(query)
	for _, k := range d.keywords {
		if strings.Contains(q, k.Phrase) {
			return k.University, true
		}
	}
	return "", false
}
