package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInboundMessage(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *InboundMessage
		wantErr bool
	}{
		{name: "query", raw: `{"type":"query","text":"fee?"}`, want: &InboundMessage{Type: "query", Text: "fee?"}},
		{name: "ping", raw: `{"type":"ping"}`, want: &InboundMessage{Type: "ping"}},
		{name: "not json", raw: `hello`, wantErr: true},
		{name: "no type", raw: `{"text":"fee?"}`, wantErr: true},
		{name: "wrong shape", raw: `["query"]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInboundMessage([]byte(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedMessage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutboundMessage_WireShape(t *testing.T) {
	tests := []struct {
		name string
		msg  OutboundMessage
		want string
	}{
		{name: "pong", msg: NewPongMessage(), want: `{"type":"pong"}`},
		{name: "status", msg: NewProcessingMessage(), want: `{"type":"status","status":"processing","message":"Searching knowledge base..."}`},
		{name: "response", msg: NewResponseMessage("Hi"), want: `{"type":"response","text":"Hi"}`},
		{name: "empty response keeps text", msg: NewResponseMessage(""), want: `{"type":"response","text":""}`},
		{
			name: "navigate",
			msg:  NewNavigateMessage("https://www.neduet.edu.pk/fee-structure", "fee", "NED"),
			want: `{"type":"navigate","url":"https://www.neduet.edu.pk/fee-structure","page_name":"fee","university":"NED"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.msg)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}
