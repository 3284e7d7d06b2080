package websocket

import (
	"context"
	"errors"
	"strings"

	"university-assistant-be/internal/dto"
	"university-assistant-be/internal/pkg/logger"
	"university-assistant-be/pkg/ai/router"
	"university-assistant-be/pkg/rag/response"
)

type Navigator interface {
	Route(text string) router.Outcome
}

type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// EmitFunc delivers one outbound frame to the client, in call order.
type EmitFunc func(msg dto.OutboundMessage) error

// Session handles the frames of one connection. It holds no per-client state,
// so a single Session can serve every connection.
type Session struct {
	navigator Navigator
	answerer  Answerer
	logger    logger.ILogger
}

func NewSession(navigator Navigator, answerer Answerer, log logger.ILogger) *Session {
	return &Session{navigator: navigator, answerer: answerer, logger: log}
}

// Handle processes one inbound frame and emits its full reply sequence before
// returning. Only an emit failure is returned; malformed frames and responder
// errors are absorbed here.
func (s *Session) Handle(ctx context.Context, raw []byte, emit EmitFunc) error {
	msg, err := dto.ParseInboundMessage(raw)
	if err != nil {
		s.logger.Debug("Session", "Ignoring malformed frame", map[string]interface{}{"bytes": len(raw)})
		return nil
	}

	switch msg.Type {
	case dto.MessageTypePing:
		return emit(dto.NewPongMessage())
	case dto.MessageTypeQuery:
		return s.handleQuery(ctx, msg.Text, emit)
	default:
		s.logger.Debug("Session", "Ignoring unknown message type", map[string]interface{}{"type": msg.Type})
		return nil
	}
}

func (s *Session) handleQuery(ctx context.Context, text string, emit EmitFunc) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if out := s.navigator.Route(text); out.Resolved {
		s.logger.Info("Session", "Navigation resolved", map[string]interface{}{
			"url":        out.URL,
			"page":       out.PageName,
			"university": out.University,
		})
		if err := emit(dto.NewNavigateMessage(out.URL, out.PageName, out.University)); err != nil {
			return err
		}
		return emit(dto.NewResponseMessage(response.CleanForSpeech(
			"Opening the " + out.PageName + " for " + out.University + ".",
		)))
	}

	if err := emit(dto.NewProcessingMessage()); err != nil {
		return err
	}

	answer, err := s.answerer.Answer(ctx, text)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		s.logger.Error("Session", "Responder failed", map[string]interface{}{"error": err.Error()})
		answer = dto.ApologyMessage
	}
	return emit(dto.NewResponseMessage(response.CleanForSpeech(answer)))
}
