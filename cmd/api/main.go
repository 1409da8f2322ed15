package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk-service/internal/api/http"
	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/internal/worker"
)

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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	zoneRepo := repository.NewZoneRepository(pool)
	branchRepo := repository.NewBranchRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	slaRepo := repository.NewSLARepository(pool)
	ruleRepo := repository.NewEscalationRuleRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewTicketCommentRepository(pool)
	historyRepo := repository.NewTicketHistoryRepository(pool)
	enterpriseRepo := repository.NewEnterpriseRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo, resetRepo)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	zoneService := service.NewZoneService(zoneRepo, branchRepo)
	categoryService := service.NewCategoryService(categoryRepo, slaRepo)
	slaService := service.NewSLAService(slaRepo)
	escalationService := service.NewEscalationService(service.EscalationDependencies{
		RuleRepo:       ruleRepo,
		TicketRepo:     ticketRepo,
		HistoryRepo:    historyRepo,
		Dispatcher:     dispatcher,
		Logger:         logger,
		Level2Multiple: cfg.Escalation.Level2Multiple,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   ticketRepo,
		CategoryRepo: categoryRepo,
		UserRepo:     userRepo,
		CommentRepo:  commentRepo,
		HistoryRepo:  historyRepo,
		SLAService:   slaService,
		Dispatcher:   dispatcher,
	})
	enterpriseService := service.NewEnterpriseService(enterpriseRepo, redis)
	reportService := service.NewReportService(ticketRepo, redis)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notificationService.RegisterHandlers()

	escalationWorker := worker.NewEscalationWorker(escalationService, logger, cfg.Escalation)
	if err := escalationWorker.Start(ctx); err != nil {
		logger.Fatal("failed to start escalation worker", zap.Error(err))
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:            handlers.NewAuthHandler(authService),
		Users:           handlers.NewUsersHandler(userService),
		Zones:           handlers.NewZonesHandler(zoneService),
		Branches:        handlers.NewBranchesHandler(zoneService),
		Categories:      handlers.NewCategoriesHandler(categoryService),
		SLAs:            handlers.NewSLAsHandler(slaService),
		EscalationRules: handlers.NewEscalationRulesHandler(escalationService),
		Tickets:         handlers.NewTicketsHandler(ticketService),
		Enterprise:      handlers.NewEnterpriseHandler(enterpriseService),
		Reports:         handlers.NewReportsHandler(reportService),
		AuthMiddleware:  authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	escalationWorker.Stop()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
