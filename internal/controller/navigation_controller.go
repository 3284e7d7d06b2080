package controller

import (
	"university-assistant-be/internal/dto"
	"university-assistant-be/internal/pkg/serverutils"
	"university-assistant-be/pkg/ai/router"

	"github.com/gofiber/fiber/v2"
)

type INavigationController interface {
	RegisterRoutes(r fiber.Router)
	Resolve(ctx *fiber.Ctx) error
}

type navigationController struct {
	router *router.Router
}

func NewNavigationController(r *router.Router) INavigationController {
	return &navigationController{router: r}
}

func (c *navigationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/navigation/v1")
	h.Get("resolve", c.Resolve)
}

// Resolve previews what the session would do with a navigation message.
func (c *navigationController) Resolve(ctx *fiber.Ctx) error {
	var req dto.ResolveNavigationRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	out := c.router.Route(req.Text)
	return ctx.JSON(serverutils.SuccessResponse("Success resolve navigation", dto.ResolveNavigationResponse{
		Resolved:   out.Resolved,
		URL:        out.URL,
		PageName:   out.PageName,
		University: out.University,
	}))
}
