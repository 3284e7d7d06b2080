package router

import (
	"fmt"
	"strings"

	"university-assistant-be/pkg/catalog"
)

// DefaultTriggers are the phrases that mark a message as a navigation request.
// Their order also decides which phrase is stripped when extracting a search topic.
var DefaultTriggers = []string{
	"open", "go to", "take me to", "show me", "navigate to",
	"visit", "browse", "launch", "access", "display",
	"open the", "go to the", "show the", "take me to the",
}

const searchURLFormat = "https://www.google.com/search?q=site:%s+%s"

// Outcome is the result of routing one message. A zero Outcome means the
// message is not a navigation request.
type Outcome struct {
	Resolved   bool   `json:"resolved"`
	URL        string `json:"url,omitempty"`
	PageName   string `json:"page_name,omitempty"`
	University string `json:"university,omitempty"`
}

// Router resolves navigation requests against the static university tables.
// It performs no I/O.
type Router struct {
	catalog  *catalog.Catalog
	triggers []string
	cues     []string
}

// NewRouter creates a navigation router over the catalog
func NewRouter(c *catalog.Catalog) *Router {
	var cues []string
	for _, u := range c.Universities {
		cues = append(cues, u.Cues...)
	}
	return &Router{
		catalog:  c,
		triggers: DefaultTriggers,
		cues:     cues,
	}
}

// IsNavigation reports whether text contains any trigger phrase.
func (r *Router) IsNavigation(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, trig := range r.triggers {
		if strings.Contains(t, trig) {
			return true
		}
	}
	return false
}

// Route decides whether text asks to open a page and, if so, which one.
func (r *Router) Route(text string) Outcome {
	t := strings.ToLower(strings.TrimSpace(text))
	if !r.IsNavigation(t) {
		return Outcome{}
	}

	uni := r.university(t)

	// 1. Explicit page table, first keyword in table order
	for _, p := range uni.Pages {
		if strings.Contains(t, p.Keyword) {
			return r.resolved(uni, p.URL, p.Keyword)
		}
	}

	// 2. Generic heuristics
	if strings.Contains(t, "admission") {
		if url, ok := uni.PageURL("admission"); ok {
			return r.resolved(uni, url, "admissions")
		}
	}
	if strings.Contains(t, "fee") {
		if url, ok := uni.PageURL("fee"); ok {
			return r.resolved(uni, url, "fee structure")
		}
	}
	for _, w := range []string{"website", "page", "site", "home"} {
		if !strings.Contains(t, w) {
			continue
		}
		if url, ok := uni.PageURL("home"); ok {
			return r.resolved(uni, url, uni.Label+" website")
		}
		break
	}

	// 3. Site-restricted search for whatever topic is left
	if topic := r.topic(t); topic != "" {
		url := fmt.Sprintf(searchURLFormat, uni.SearchDomain, strings.ReplaceAll(topic, " ", "+"))
		return r.resolved(uni, url, topic+" (Search)")
	}

	return Outcome{}
}

func (r *Router) university(t string) *catalog.University {
	for i := range r.catalog.Universities {
		u := &r.catalog.Universities[i]
		for _, cue := range u.Cues {
			if strings.Contains(t, cue) {
				return u
			}
		}
	}
	return r.catalog.Default()
}

// topic strips the first present trigger and every university cue from t.
// If that leaves nothing, the next present trigger is tried.
func (r *Router) topic(t string) string {
	for _, trig := range r.triggers {
		if !strings.Contains(t, trig) {
			continue
		}
		topic := strings.TrimSpace(strings.ReplaceAll(t, trig, ""))
		for _, cue := range r.cues {
			topic = strings.TrimSpace(strings.ReplaceAll(topic, cue, ""))
		}
		if topic != "" {
			return topic
		}
	}
	return ""
}

func (r *Router) resolved(u *catalog.University, url, page string) Outcome {
	return Outcome{
		Resolved:   true,
		URL:        url,
		PageName:   page,
		University: u.Label,
	}
}
