package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"university-assistant-be/pkg/catalog"
)

func TestRouter_Route(t *testing.T) {
	r := NewRouter(catalog.Default())

	tests := []struct {
		name string
		text string
		want Outcome
	}{
		{
			name: "explicit page with university cue",
			text: "open the fee structure for NED",
			want: Outcome{Resolved: true, URL: "https://www.neduet.edu.pk/fee-structure", PageName: "fee", University: "NED"},
		},
		{
			name: "no trigger phrase",
			text: "what is the fee structure",
			want: Outcome{},
		},
		{
			name: "default university",
			text: "go to library",
			want: Outcome{Resolved: true, URL: "https://www.smiu.edu.pk/Library", PageName: "library", University: "SMIU"},
		},
		{
			name: "multi word cue",
			text: "Take me to Karachi University library",
			want: Outcome{Resolved: true, URL: "https://www.uok.edu.pk/library", PageName: "library", University: "University of Karachi"},
		},
		{
			name: "home heuristic",
			text: "go to the smiu page",
			want: Outcome{Resolved: true, URL: "https://smiu.edu.pk/", PageName: "SMIU website", University: "SMIU"},
		},
		{
			name: "search fallback",
			text: "launch sports gala",
			want: Outcome{
				Resolved:   true,
				URL:        "https://www.google.com/search?q=site:smiu.edu.pk+sports+gala",
				PageName:   "sports gala (Search)",
				University: "SMIU",
			},
		},
		{
			name: "cue matched inside a word",
			text: "show me the planned events",
			want: Outcome{
				Resolved:   true,
				URL:        "https://www.google.com/search?q=site:neduet.edu.pk+the+plan+events",
				PageName:   "the plan events (Search)",
				University: "NED",
			},
		},
		{
			name: "trigger only",
			text: "open",
			want: Outcome{},
		},
		{
			name: "whitespace",
			text: "   ",
			want: Outcome{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Route(tt.text))
		})
	}
}

func TestRouter_HeuristicsWithoutTableMatch(t *testing.T) {
	c, err := catalog.Parse([]byte(`
default_university: uni
universities:
  - id: uni
    label: "Uni"
    search_domain: uni.edu
    cues: ["uni"]
    pages:
      - {keyword: "home", url: "https://uni.edu/"}
      - {keyword: "admission", url: "https://uni.edu/admission"}
      - {keyword: "fee", url: "https://uni.edu/fee"}
`))
	assert.NoError(t, err)
	r := NewRouter(c)

	// "admissions" contains the "admission" key itself, so the table wins and
	// reports the raw keyword
	assert.Equal(t, "admission", r.Route("open admissions").PageName)

	got := r.Route("visit the website")
	assert.Equal(t, Outcome{Resolved: true, URL: "https://uni.edu/", PageName: "Uni website", University: "Uni"}, got)
}

func TestRouter_IsNavigation(t *testing.T) {
	r := NewRouter(catalog.Default())

	assert.True(t, r.IsNavigation("Please DISPLAY the results"))
	assert.True(t, r.IsNavigation("navigate to admissions"))
	assert.False(t, r.IsNavigation("when are the exams"))
}
