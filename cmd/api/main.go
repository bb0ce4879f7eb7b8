package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/talentdesk/ats-service/internal/api/http"
	"github.com/talentdesk/ats-service/internal/api/http/handlers"
	"github.com/talentdesk/ats-service/internal/auth"
	"github.com/talentdesk/ats-service/internal/config"
	"github.com/talentdesk/ats-service/internal/events"
	"github.com/talentdesk/ats-service/internal/observability"
	"github.com/talentdesk/ats-service/internal/persistence"
	"github.com/talentdesk/ats-service/internal/repository"
	"github.com/talentdesk/ats-service/internal/repository/memory"
	"github.com/talentdesk/ats-service/internal/service"
	"github.com/talentdesk/ats-service/internal/storage"
	"github.com/talentdesk/ats-service/internal/worker"
)

type repositories struct {
	users        repository.UserRepository
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	repos := newRepositories(pg, logger)

	files, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Fatal("failed to prepare upload dir", zap.Error(err))
	}
	logger.Info("resume storage ready", zap.String("dir", files.Dir()))

	dispatcher := events.NewInMemoryDispatcher()
	var forwarder *events.RedisForwarder
	if redis.Enabled() {
		forwarder = events.NewRedisForwarder(redis.Client, cfg.Redis.EventChannel)
	}
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger), forwarder, dispatcher)

	authService := service.NewAuthService(cfg.Auth, repos.users)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), repos.users)

	jobService := service.NewJobService(service.JobDependencies{
		JobRepo:         repos.jobs,
		ApplicationRepo: repos.applications,
		Files:           files,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		JobRepo:         repos.jobs,
		ApplicationRepo: repos.applications,
		Files:           files,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	dashboardService := service.NewDashboardService(repos.jobs, repos.applications)

	var seedHandler *handlers.SeedHandler
	if cfg.Seed.Enabled {
		seedHandler = handlers.NewSeedHandler(service.NewSeedService(service.SeedDependencies{
			UserRepo:        repos.users,
			JobRepo:         repos.jobs,
			ApplicationRepo: repos.applications,
			Rand:            rand.New(rand.NewSource(cfg.Seed.RandomSeed)),
			BcryptCost:      cfg.Auth.BcryptCost,
			Logger:          logger,
		}))
		logger.Warn("seeding endpoints enabled")
	}

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.App.BodyLimit(),
		ErrorHandler: httptransport.ErrorHandler(logger),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:        cfg.App.RequestTimeout(),
		AllowedOrigins: cfg.App.AllowedOrigins(),
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, persistence.ErrNotConfigured, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Jobs:           handlers.NewJobsHandler(jobService),
		Applications:   handlers.NewApplicationsHandler(applicationService, dashboardService),
		Files:          handlers.NewFilesHandler(files),
		Seed:           seedHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func newRepositories(pg *persistence.Postgres, logger *zap.Logger) repositories {
	if !pg.Enabled() {
		logger.Warn("running on in-memory repositories; data is lost on restart")
		store := memory.NewStore()
		return repositories{users: store.Users(), jobs: store.Jobs(), applications: store.Applications()}
	}
	pool := pg.PoolHandle()
	return repositories{
		users:        repository.NewUserRepository(pool),
		jobs:         repository.NewJobRepository(pool),
		applications: repository.NewApplicationRepository(pool),
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
