package controller

import (
	"errors"

	"university-assistant-be/internal/dto"
	"university-assistant-be/internal/pkg/serverutils"
	"university-assistant-be/internal/repository/contract"
	"university-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IIndexController interface {
	RegisterRoutes(r fiber.Router)
	Status(ctx *fiber.Ctx) error
	Rebuild(ctx *fiber.Ctx) error
}

type indexController struct {
	indexer   service.IIndexerService
	publisher service.IPublisherService
	rootDir   string
}

func NewIndexController(indexer service.IIndexerService, publisher service.IPublisherService, rootDir string) IIndexController {
	return &indexController{
		indexer:   indexer,
		publisher: publisher,
		rootDir:   rootDir,
	}
}

func (c *indexController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/index/v1")
	h.Get("status", c.Status)
	h.Post("rebuild", c.Rebuild)
}

func (c *indexController) Status(ctx *fiber.Ctx) error {
	gen, err := c.indexer.Status(ctx.UserContext())
	if errors.Is(err, contract.ErrIndexNotFound) {
		return ctx.JSON(serverutils.SuccessResponse("Index not built", dto.IndexStatusResponse{Ready: false}))
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get index status", dto.IndexStatusResponse{
		Ready:      true,
		Generation: &gen.Id,
		Backend:    gen.Backend,
		Documents:  gen.Documents,
		Chunks:     gen.Chunks,
		BuiltAt:    &gen.BuiltAt,
	}))
}

// Rebuild queues a full rebuild of the configured corpus and returns before it
// runs. The request body is ignored; other corpus roots are for cmd/ingest only.
func (c *indexController) Rebuild(ctx *fiber.Ctx) error {
	job := dto.RebuildIndexMessage{JobId: uuid.New()}
	if err := c.publisher.Publish(ctx.UserContext(), job); err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Index rebuild queued", dto.RebuildIndexResponse{
		JobId:   job.JobId,
		RootDir: c.rootDir,
	}))
}
