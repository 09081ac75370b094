// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"video-research/internal/app/service"
	"video-research/internal/transport/httpserver/dto"
	"video-research/internal/transport/httpserver/handler"
	"video-research/internal/transport/httpserver/middleware"
	"video-research/internal/validator"
	"video-research/web"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Name  string
	Port  int
	Debug bool
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// ready backs the /readyz probe.
func NewServer(
	cfg ServerConfig,
	researchSvc *service.ResearchService,
	ready middleware.ReadyFunc,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	engine := html.NewFileSystem(http.FS(web.Templates()), ".html")
	if cfg.Debug {
		engine.Debug(true)
	}

	name := cfg.Name
	if name == "" {
		name = "video-research"
	}

	app := fiber.New(fiber.Config{
		AppName:               name,
		ErrorHandler:          errorHandler(logger),
		Views:                 engine,
		DisableStartupMessage: !cfg.Debug,
	})

	// Health checks go first so probes bypass the rest of the chain
	app.Use(middleware.NewHealthCheck(ready))

	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(compress.New())

	researchHandler := handler.NewResearchHandler(researchSvc, v, logger)
	dashboardHandler := handler.NewDashboardHandler(researchSvc, v, logger)

	registerRoutes(app, researchHandler, dashboardHandler)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all routes.
func registerRoutes(
	app *fiber.App,
	researchHandler *handler.ResearchHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	// Health checks are handled by middleware (/livez, /readyz)

	app.Get("/dashboard", dashboardHandler.Render)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})

	v1 := app.Group("/api/v1")
	v1.Get("/search", researchHandler.Search)
	v1.Get("/trending", researchHandler.Trending)
	v1.Get("/competitor/:channel_id", researchHandler.Competitor)
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level, 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_ERROR"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		switch {
		case code == fiber.StatusNotFound:
			errCode = "NOT_FOUND"
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			errCode = "CLIENT_ERROR"
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  errCode,
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
