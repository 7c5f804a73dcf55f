package server

import (
	"trivia-api/internal/config"
	"trivia-api/internal/handler"
	"trivia-api/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the HTTP server is assembled from.
type Deps struct {
	Trivia *handler.TriviaHandler
	Health *handler.HealthHandler
	// Guard protects the mutating question routes. Nil leaves them open.
	Guard fiber.Handler
	// Registry receives HTTP metrics and backs /metrics. Nil disables both.
	Registry *prometheus.Registry
	// Swagger mounts the generated API docs under /swagger.
	Swagger bool
}

// New builds the fiber application with middleware and routes.
func New(cfg config.ServerConfig, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
	})

	if deps.Registry != nil {
		app.Use(middleware.NewMetrics(deps.Registry).Handler())
	}
	app.Use(middleware.RequestLogger())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Content-Type,Authorization",
		AllowMethods: "GET,PATCH,POST,DELETE,OPTIONS",
	}))

	if deps.Health != nil {
		app.Get("/health", deps.Health.Health)
	}
	if deps.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}
	if deps.Swagger {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	RegisterRoutes(app, deps.Trivia, deps.Guard)
	return app
}

// RegisterRoutes mounts the trivia API on router.
func RegisterRoutes(router fiber.Router, h *handler.TriviaHandler, guard fiber.Handler) {
	guarded := func(next fiber.Handler) []fiber.Handler {
		if guard == nil {
			return []fiber.Handler{next}
		}
		return []fiber.Handler{guard, next}
	}

	router.Get("/categories", h.GetCategories)
	router.Get("/categories/:id<int>/questions", h.GetCategoryQuestions)

	router.Get("/questions", h.GetQuestions)
	router.Post("/questions", guarded(h.CreateQuestion)...)
	router.Delete("/questions/:id<int>", guarded(h.DeleteQuestion)...)
	router.Post("/questions/search", h.SearchQuestions)

	router.Post("/quizzes", h.PlayQuiz)
}
