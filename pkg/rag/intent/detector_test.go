package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"university-assistant-be/pkg/catalog"
)

func TestDetector_Detect(t *testing.T) {
	d := NewDetector(catalog.Default())

	tests := []struct {
		name   string
		query  string
		want   string
		wantOK bool
	}{
		{name: "acronym", query: "Tell me about SMIU admissions", want: "smiu", wantOK: true},
		{name: "no keyword", query: "What about fees?", wantOK: false},
		{name: "synonym phrase", query: "IBA Karachi BBA program", want: "iba", wantOK: true},
		{name: "full name", query: "when does university of karachi open", want: "uok", wantOK: true},
		{name: "dawood", query: "Dawood University scholarships", want: "duet", wantOK: true},
		{name: "nuces", query: "nuces merit list", want: "fast", wantOK: true},
		{name: "empty", query: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Detect(tt.query)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetector_TableOrderWins(t *testing.T) {
	c, err := catalog.Parse([]byte(`
default_university: a
keywords:
  - {phrase: "alpha", university: a}
  - {phrase: "alpha beta", university: b}
universities:
  - {id: a, search_domain: a.edu}
  - {id: b, search_domain: b.edu}
`))
	require.NoError(t, err)

	got, ok := NewDetector(c).Detect("tell me about Alpha Beta")
	require.True(t, ok)
	assert.Equal(t, "a", got)
}
