package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanModelOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain answer untouched",
			raw:  "Admissions open on 1 July.",
			want: "Admissions open on 1 July.",
		},
		{
			name: "closed think block across lines",
			raw:  "<think>\nLet me look at the context.\nOk.\n</think>\nThe fee is 50,000 PKR.",
			want: "The fee is 50,000 PKR.",
		},
		{
			name: "mixed case thought block",
			raw:  "<THOUGHT>hidden</Thought>Visible",
			want: "Visible",
		},
		{
			name: "unclosed think truncates",
			raw:  "Deadline is 15 August.\n<think>the user might also want",
			want: "Deadline is 15 August.",
		},
		{
			name: "bold markers and bullets",
			raw:  "**Requirements**\n- Matric certificate\n-Intermediate marksheet\n   - CNIC copy",
			want: "Requirements\nMatric certificate\nIntermediate marksheet\nCNIC copy",
		},
		{
			name: "run of leading markers removed entirely",
			raw:  "--5 degrees\n- - nested bullet",
			want: "5 degrees\nnested bullet",
		},
		{
			name: "only reasoning",
			raw:  "<think>nothing useful</think>",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanModelOutput(tt.raw))
		})
	}
}

func TestCleanModelOutput_Idempotent(t *testing.T) {
	inputs := []string{
		"- - nested dash",
		"-  spaced bullet",
		"<th**ink>rebuilt tag</think>answer",
		"*****stars*****",
		"<think>a</think><think>b</think>c\r\n- d",
		"plain",
		"",
	}

	for _, in := range inputs {
		once := CleanModelOutput(in)
		assert.Equal(t, once, CleanModelOutput(once), "input %q", in)
	}
}

func TestCleanForSpeech(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "separator lines", in: "Intro\n______\nBody\n-----\nEnd\n=====", want: "Intro\n\nBody\n\nEnd"},
		{name: "short runs kept", in: "a--b == c", want: "a--b == c"},
		{name: "emphasis markers", in: "**Note** the __deadline__", want: "Note the deadline"},
		{name: "star run", in: "***** Important", want: "Important"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanForSpeech(tt.in))
		})
	}
}
