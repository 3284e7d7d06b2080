// Package catalog holds the static university tables: the query keyword table used
// to scope retrieval and the per-university navigation tables used by the router.
//
// A Catalog is built once at startup and never mutated afterwards, so it can be
// shared by every connection without locking.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// KeywordEntry maps a lowercase query phrase to a university identifier.
type KeywordEntry struct {
	Phrase     string `yaml:"phrase"`
	University string `yaml:"university"`
}

// Page maps a lowercase page keyword to an absolute URL.
type Page struct {
	Keyword string `yaml:"keyword"`
	URL     string `yaml:"url"`
}

// University is one navigable university site. Cues are the phrases that select
// it in a navigation request; Pages is its ordered keyword->URL table.
type University struct {
	ID           string   `yaml:"id"`
	Label        string   `yaml:"label"`
	SearchDomain string   `yaml:"search_domain"`
	Cues         []string `yaml:"cues"`
	Pages        []Page   `yaml:"pages"`
}

// PageURL returns the URL mapped to exactly this keyword.
func (u *University) PageURL(keyword string) (string, bool) {
	for _, p := range u.Pages {
		if p.Keyword == keyword {
			return p.URL, true
		}
	}
	return "", false
}

// Catalog is the immutable set of tables shared by the detector and the router.
type Catalog struct {
	DefaultUniversity string         `yaml:"default_university"`
	Keywords          []KeywordEntry `yaml:"keywords"`
	Universities      []University   `yaml:"universities"`

	byID map[string]*University
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded tables are invalid: %v", err))
	}
	return c
}

// Load reads a catalog from path. An empty path yields the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.normalize(); err != nil {
		return nil, err
	}
	return &c, nil
}

// WithDefault returns a copy of the catalog whose default university is id.
func (c *Catalog) WithDefault(id string) (*Catalog, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" || id == c.DefaultUniversity {
		return c, nil
	}
	if _, ok := c.byID[id]; !ok {
		return nil, fmt.Errorf("catalog: unknown default university %q", id)
	}
	cp := *c
	cp.DefaultUniversity = id
	return &cp, nil
}

// University looks up a university by identifier.
func (c *Catalog) University(id string) (*University, bool) {
	u, ok := c.byID[id]
	return u, ok
}

// Default returns the university used when a navigation request names none.
func (c *Catalog) Default() *University {
	return c.byID[c.DefaultUniversity]
}

func (c *Catalog) normalize() error {
	c.DefaultUniversity = strings.ToLower(strings.TrimSpace(c.DefaultUniversity))
	c.byID = make(map[string]*University, len(c.Universities))

	for i := range c.Universities {
		u := &c.Universities[i]
		u.ID = strings.ToLower(strings.TrimSpace(u.ID))
		if u.ID == "" {
			return fmt.Errorf("catalog: university #%d has no id", i)
		}
		if _, dup := c.byID[u.ID]; dup {
			return fmt.Errorf("catalog: duplicate university %q", u.ID)
		}
		if u.Label == "" {
			u.Label = strings.ToUpper(u.ID)
		}
		for j := range u.Cues {
			u.Cues[j] = strings.ToLower(u.Cues[j])
		}
		seen := make(map[string]struct{}, len(u.Pages))
		for j := range u.Pages {
			p := &u.Pages[j]
			p.Keyword = strings.ToLower(p.Keyword)
			if _, dup := seen[p.Keyword]; dup {
				return fmt.Errorf("catalog: university %q maps page %q twice", u.ID, p.Keyword)
			}
			seen[p.Keyword] = struct{}{}
		}
		c.byID[u.ID] = u
	}

	if _, ok := c.byID[c.DefaultUniversity]; !ok {
		return fmt.Errorf("catalog: default university %q is not defined", c.DefaultUniversity)
	}

	owner := make(map[string]string, len(c.Keywords))
	for i := range c.Keywords {
		k := &c.Keywords[i]
		k.Phrase = strings.ToLower(k.Phrase)
		k.University = strings.ToLower(k.University)
		if k.Phrase == "" {
			return fmt.Errorf("catalog: keyword #%d is empty", i)
		}
		if prev, ok := owner[k.Phrase]; ok && prev != k.University {
			return fmt.Errorf("catalog: phrase %q maps to both %q and %q", k.Phrase, prev, k.University)
		}
		owner[k.Phrase] = k.University
	}
	return nil
}
