package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/caioalmeida/mediateam-backend/api/routes"
	"github.com/caioalmeida/mediateam-backend/internal/auth"
	"github.com/caioalmeida/mediateam-backend/internal/events"
	"github.com/caioalmeida/mediateam-backend/internal/feedback"
	"github.com/caioalmeida/mediateam-backend/internal/roles"
	"github.com/caioalmeida/mediateam-backend/internal/rosters"
	"github.com/caioalmeida/mediateam-backend/internal/songs"
	"github.com/caioalmeida/mediateam-backend/internal/swaps"
	"github.com/caioalmeida/mediateam-backend/internal/users"
	"github.com/caioalmeida/mediateam-backend/pkg/auth/session"
	"github.com/caioalmeida/mediateam-backend/pkg/config"
	"github.com/caioalmeida/mediateam-backend/pkg/db"
	"github.com/caioalmeida/mediateam-backend/pkg/logger"
	"github.com/caioalmeida/mediateam-backend/pkg/migrate"
	"github.com/caioalmeida/mediateam-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	if err := auth.EnsureBootstrapModerator(context.Background(), dbClient, cfg.Bootstrap, cfg.Password, logg); err != nil {
		logg.Error(context.Background(), "failed to seed bootstrap moderator", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.ServiceParams{Repo: userRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	songRepo := songs.NewRepository(dbClient.DB())

	songService, err := songs.NewService(songs.ServiceParams{Repo: songRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create song service", err)
		os.Exit(1)
	}

	rosterService, err := rosters.NewService(rosters.ServiceParams{
		Repo:  rosters.NewRepository(dbClient.DB()),
		Songs: songRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create roster service", err)
		os.Exit(1)
	}

	swapService, err := swaps.NewService(swaps.ServiceParams{DB: dbClient})
	if err != nil {
		logg.Error(context.Background(), "failed to create swap service", err)
		os.Exit(1)
	}

	roleService, err := roles.NewService(roles.ServiceParams{Repo: roles.NewRepository(dbClient.DB())})
	if err != nil {
		logg.Error(context.Background(), "failed to create role service", err)
		os.Exit(1)
	}

	eventService, err := events.NewService(events.ServiceParams{Repo: events.NewRepository(dbClient.DB())})
	if err != nil {
		logg.Error(context.Background(), "failed to create event service", err)
		os.Exit(1)
	}

	feedbackService, err := feedback.NewService(feedback.ServiceParams{Repo: feedback.NewRepository(dbClient.DB())})
	if err != nil {
		logg.Error(context.Background(), "failed to create feedback service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Cfg:             cfg,
			Logg:            logg,
			DB:              dbClient,
			Redis:           redisClient,
			SessionManager:  sessionManager,
			AuthService:     authService,
			RegisterService: registerService,
			UserService:     userService,
			RosterService:   rosterService,
			SwapService:     swapService,
			SongService:     songService,
			RoleService:     roleService,
			EventService:    eventService,
			FeedbackService: feedbackService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
