package server

import (
	"context"
	"path/filepath"

	"university-assistant-be/internal/bootstrap"
	"university-assistant-be/internal/config"
	"university-assistant-be/internal/pkg/serverutils"
	"university-assistant-be/internal/websocket"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

// New builds the fiber app. ctx bounds the lifetime of websocket sessions.
func New(ctx context.Context, cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             1 * 1024 * 1024,
		DisableStartupMessage: cfg.IsProduction(),
		ErrorHandler:          serverutils.ErrorHandler(container.Logger),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CorsAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	registerRoutes(ctx, app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info("Server", "Listening", map[string]interface{}{"addr": "http://localhost:" + s.cfg.App.Port})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func registerRoutes(ctx context.Context, app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	app.Get("/", func(fc *fiber.Ctx) error {
		return fc.SendFile(filepath.Join(cfg.App.PublicDir, "index.html"))
	})

	c.HealthController.RegisterRoutes(app)

	app.Use("/ws", websocket.UpgradeMiddleware)
	app.Get("/ws", websocket.NewHandler(ctx, c.WebSocketHub, c.WebSocketSession))

	api := app.Group("/api")
	c.IndexController.RegisterRoutes(api)
	c.NavigationController.RegisterRoutes(api)
}
