package dto

import (
	"encoding/json"
	"errors"
)

// ErrMalformedMessage marks an inbound frame that is not a JSON envelope with
// a type. The session loop drops such frames.
var ErrMalformedMessage = errors.New("malformed session message")

const (
	MessageTypeQuery    = "query"
	MessageTypePing     = "ping"
	MessageTypePong     = "pong"
	MessageTypeStatus   = "status"
	MessageTypeResponse = "response"
	MessageTypeNavigate = "navigate"

	StatusProcessing  = "processing"
	ProcessingMessage = "Searching knowledge base..."
	ApologyMessage    = "I apologize, but I encountered an error while searching for information."
)

type InboundMessage struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// OutboundMessage is the envelope for every frame sent to the client. Only the
// fields of its type are set.
type OutboundMessage struct {
	Type       string `json:"type"`
	Status     string `json:"status,omitempty"`
	Message    string `json:"message,omitempty"`
	Text       string `json:"text,omitempty"`
	URL        string `json:"url,omitempty"`
	PageName   string `json:"page_name,omitempty"`
	University string `json:"university,omitempty"`
}

// ParseInboundMessage decodes one client frame.
func ParseInboundMessage(raw []byte) (*InboundMessage, error) {
	var msg InboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil || msg.Type == "" {
		return nil, ErrMalformedMessage
	}
	return &msg, nil
}

func NewPongMessage() OutboundMessage {
	return OutboundMessage{Type: MessageTypePong}
}

func NewProcessingMessage() OutboundMessage {
	return OutboundMessage{Type: MessageTypeStatus, Status: StatusProcessing, Message: ProcessingMessage}
}

func NewResponseMessage(text string) OutboundMessage {
	return OutboundMessage{Type: MessageTypeResponse, Text: text}
}

func NewNavigateMessage(url, pageName, university string) OutboundMessage {
	return OutboundMessage{Type: MessageTypeNavigate, URL: url, PageName: pageName, University: university}
}

// MarshalJSON keeps "text" on response frames even when it is empty.
func (m OutboundMessage) MarshalJSON() ([]byte, error) {
	type plain OutboundMessage
	if m.Type == MessageTypeResponse {
		return json.Marshal(struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{m.Type, m.Text})
	}
	return json.Marshal(plain(m))
}
