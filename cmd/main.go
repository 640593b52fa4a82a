package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/tournament-admin/auditlog"
	"github.com/Dosada05/tournament-admin/config"
	"github.com/Dosada05/tournament-admin/db"
	_ "github.com/Dosada05/tournament-admin/docs"
	"github.com/Dosada05/tournament-admin/handlers"
	"github.com/Dosada05/tournament-admin/live"
	"github.com/Dosada05/tournament-admin/logger"
	"github.com/Dosada05/tournament-admin/repositories"
	"github.com/Dosada05/tournament-admin/routes"
	"github.com/Dosada05/tournament-admin/services"
	"github.com/Dosada05/tournament-admin/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// @title Tournament Admin API
// @version 1.0
// @description Администрирование турнира: команды, игроки, матчи, голы и санкции.
// @BasePath /
func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("failed to load configuration: %v", err)
	}

	// Настройка логгера
	log, err := logger.New(&logger.Config{Level: cfg.LogLevel, Env: cfg.LogEnv})
	if err != nil {
		stdlog.Fatalf("failed to init logger: %v", err)
	}
	log.Info().Int("port", cfg.ServerPort).Msg("configuration loaded")

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("application failed")
		os.Exit(1)
	}
	log.Info().Msg("application exited")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, db.DefaultPoolConfig(), cfg.DBPingTimeout, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database connection")
		} else {
			log.Info().Msg("database connection closed")
		}
	}()

	if cfg.RunMigrations {
		if err := db.RunMigrations(dbConn); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info().Msg("migrations applied")
	}

	defaults, err := loadDefaultImages(ctx, cfg)
	if err != nil {
		return err
	}
	log.Info().Int("team_logos", len(defaults.TeamLogos)).Bool("player_photo", defaults.PlayerPhoto != "").Msg("default images loaded")

	// Инициализация репозиториев
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	competitionRepo := repositories.NewPostgresCompetitionRepository(dbConn)
	roundRepo := repositories.NewPostgresRoundRepository(dbConn)
	fieldRepo := repositories.NewPostgresFieldRepository(dbConn)
	stateRepo := repositories.NewPostgresStateRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	goalRepo := repositories.NewPostgresGoalRepository(dbConn)
	sanctionRepo := repositories.NewPostgresSanctionRepository(dbConn)
	sanctionTypeRepo := repositories.NewPostgresSanctionTypeRepository(dbConn)
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	roleRepo := repositories.NewPostgresRoleRepository(dbConn)
	logRepo := repositories.NewPostgresLogRepository(dbConn)
	txManager := repositories.NewTxManager(dbConn)

	audit, err := newAuditSink(cfg, logRepo, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := audit.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close audit sink")
		}
	}()

	// Инициализация WebSocket Hub
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := live.NewHub(log)
	go hub.Run(hubCtx)

	// Инициализация сервисов
	resolver := services.NewReferenceResolver(teamRepo, roundRepo, fieldRepo, competitionRepo, stateRepo)
	teamService := services.NewTeamService(teamRepo, playerRepo, defaults, log)
	playerService := services.NewPlayerService(playerRepo, teamRepo, resolver, txManager, defaults, log)
	competitionService := services.NewCompetitionService(competitionRepo, log)
	roundService := services.NewRoundService(roundRepo)
	fieldService := services.NewFieldService(fieldRepo)
	stateService := services.NewStateService(stateRepo)
	sanctionTypeService := services.NewSanctionTypeService(sanctionTypeRepo)
	matchService := services.NewMatchService(services.MatchServiceDeps{
		Matches:      matchRepo,
		Teams:        teamRepo,
		Rounds:       roundRepo,
		Fields:       fieldRepo,
		States:       stateRepo,
		Competitions: competitionRepo,
		Resolver:     resolver,
		TxManager:    txManager,
		Publisher:    hub,
	}, log)
	goalService := services.NewGoalService(goalRepo, hub)
	sanctionService := services.NewSanctionService(sanctionRepo)
	leaderboardService := services.NewLeaderboardService(goalRepo, sanctionRepo, sanctionTypeRepo, teamRepo, matchRepo, log)
	userService := services.NewUserService(userRepo, roleRepo)
	logService := services.NewLogService(logRepo)

	// Инициализация обработчиков HTTP
	h := routes.Handlers{
		Team:        handlers.NewTeamHandler(teamService, audit, log),
		Player:      handlers.NewPlayerHandler(playerService, audit, log),
		Competition: handlers.NewCompetitionHandler(competitionService, audit, log),
		Catalog:     handlers.NewCatalogHandler(roundService, fieldService, stateService, audit, log),
		Match:       handlers.NewMatchHandler(matchService, audit, log),
		Goal:        handlers.NewGoalHandler(goalService, leaderboardService, audit, log),
		Sanction:    handlers.NewSanctionHandler(sanctionService, sanctionTypeService, leaderboardService, audit, log),
		User:        handlers.NewUserHandler(userService, logService, audit, log),
		WebSocket:   handlers.NewWebSocketHandler(hub, log),
		Health:      handlers.NewHealthHandler(dbConn),
	}

	router := chi.NewRouter()
	routes.SetupRoutes(router, h, cfg.StaticDir, log)

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     stdlog.New(log.With().Str("component", "http_server").Logger(), "", 0),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("address", server.Addr).Msg("starting server")
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		if closeErr := server.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to force close server")
		}
		return err
	}
	log.Info().Msg("server shutdown complete")
	return nil
}

func loadDefaultImages(ctx context.Context, cfg *config.Config) (*storage.DefaultImages, error) {
	var src storage.ImageSource
	switch cfg.DefaultImagesSource {
	case "r2":
		r2, err := storage.NewCloudflareR2ImageSource(ctx, storage.CloudflareR2Config{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			Endpoint:        cfg.R2.Endpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Cloudflare R2 image source: %w", err)
		}
		src = r2
	default:
		src = storage.NewLocalImageSource(cfg.DefaultImagesDir)
	}

	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	defaults, err := storage.LoadDefaults(loadCtx, src, storage.DefaultLayout())
	if err != nil {
		return nil, fmt.Errorf("failed to load default images: %w", err)
	}
	return defaults, nil
}

func newAuditSink(cfg *config.Config, repo repositories.LogRepository, log zerolog.Logger) (auditlog.Sink, error) {
	switch cfg.AuditSink {
	case "nats":
		natsCfg := auditlog.DefaultNATSConfig()
		natsCfg.URL = cfg.NATS.URL
		natsCfg.Subject = cfg.NATS.Subject
		natsCfg.ReconnectWait = cfg.NATS.ReconnectWait
		sink, err := auditlog.NewNATSSink(natsCfg, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize NATS audit sink: %w", err)
		}
		log.Info().Str("subject", natsCfg.Subject).Msg("audit entries go to NATS")
		return sink, nil
	case "log":
		return auditlog.NewLogSink(log), nil
	default:
		return auditlog.NewDBSink(repo, cfg.AuditBuffer, log), nil
	}
}
