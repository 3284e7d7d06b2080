package controller

import (
	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

// ConnectionCounter reports live websocket sessions.
type ConnectionCounter interface {
	Count() int
}

type healthController struct {
	connections ConnectionCounter
}

func NewHealthController(connections ConnectionCounter) IHealthController {
	return &healthController{connections: connections}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/healthz", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"status":      "ok",
		"connections": c.connections.Count(),
	})
}
