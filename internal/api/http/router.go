package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentdesk/ats-service/internal/api/http/handlers"
	"github.com/talentdesk/ats-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration. A nil Seed
// leaves the seeding endpoints unregistered.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Jobs           *handlers.JobsHandler
	Applications   *handlers.ApplicationsHandler
	Files          *handlers.FilesHandler
	Seed           *handlers.SeedHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	requireAuth := cfg.AuthMiddleware.Handle

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	jobs := api.Group("/jobs")
	jobs.Get("/", cfg.Jobs.ListActive)
	jobs.Get("/all", requireAuth, cfg.Jobs.ListAll)
	jobs.Get("/my", requireAuth, cfg.Jobs.ListMine)
	jobs.Get("/:id<int>", cfg.Jobs.Get)
	jobs.Post("/", requireAuth, cfg.Jobs.Create)
	jobs.Put("/:id<int>", requireAuth, cfg.Jobs.Update)
	jobs.Delete("/:id<int>", requireAuth, cfg.Jobs.Delete)
	jobs.Post("/:id<int>/apply", cfg.Applications.Apply)

	apps := api.Group("/applications", requireAuth)
	apps.Get("/", cfg.Applications.List)
	apps.Get("/search", cfg.Applications.Search)
	apps.Get("/stats", cfg.Applications.Stats)
	apps.Get("/:id<int>", cfg.Applications.Get)
	apps.Put("/:id<int>/status", cfg.Applications.UpdateStatus)

	api.Get("/files/download/:fileName", cfg.Files.Download)

	if cfg.Seed != nil {
		api.Post("/seed", cfg.Seed.Seed)
		api.Get("/seed/run", cfg.Seed.Seed)
	}
}
