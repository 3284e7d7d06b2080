package websocket

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// UpgradeMiddleware rejects plain HTTP requests on the websocket route.
func UpgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// NewHandler returns the fiber websocket handler serving one session loop per
// connection.
func NewHandler(ctx context.Context, hub *Hub, session *Session) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		ServeWs(ctx, hub, session, conn)
	})
}

// ServeWs registers the connection and runs its session loop until the peer
// goes away.
func ServeWs(ctx context.Context, hub *Hub, session *Session, conn *websocket.Conn) {
	client := &Client{
		Hub:     hub,
		Conn:    conn,
		ID:      uuid.New(),
		Send:    make(chan []byte, sendBuffer),
		session: session,
		done:    make(chan struct{}),
	}
	hub.register <- client

	go client.writePump()
	// fiber closes the connection when this handler returns
	client.readPump(ctx)
}
