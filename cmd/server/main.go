package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/flowcoaching/site-server-go/internal/config"
	"github.com/flowcoaching/site-server-go/internal/database"
	"github.com/flowcoaching/site-server-go/internal/handler"
	"github.com/flowcoaching/site-server-go/internal/middleware"
	"github.com/flowcoaching/site-server-go/internal/redis"
	"github.com/flowcoaching/site-server-go/internal/repository"
	"github.com/flowcoaching/site-server-go/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("FLY_APP_NAME") != ""
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	if err := db.Migrate(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	adminRepo := repository.NewAdminUserRepository(db.DB)
	tokenRepo := repository.NewAuthTokenRepository(db.DB)
	leadRepo := repository.NewLeadRepository(db.DB)
	settingRepo := repository.NewSettingRepository(db)

	var mailer service.Mailer
	if cfg.ResendAPIKey != "" {
		mailer = service.NewResendMailer(cfg.ResendAPIKey, cfg.ResendFromEmail)
	} else {
		log.Warn().Msg("RESEND_API_KEY not set, lead notifications disabled")
	}

	verifier := service.NewRecaptchaVerifier(cfg.RecaptchaSecretKey)
	if !verifier.Enabled() {
		log.Warn().Msg("RECAPTCHA_SECRET_KEY not set, lead form verification disabled")
	}

	authService := service.NewAuthService(adminRepo, tokenRepo)
	leadService := service.NewLeadService(leadRepo, settingRepo, verifier, mailer)
	settingsService := service.NewSettingsService(settingRepo)
	chatService := service.NewChatService(service.NewOpenAIClient(cfg.OpenAIAPIKey))

	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Login throttling is Redis-backed when REDIS_URL is set so multiple
	// instances share one window; otherwise a per-process limiter.
	loginLimiter := middleware.NewLoginRateLimiter().Handler
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("redis connected")

		loginLimiter = middleware.NewRedisLoginRateLimiter(redisClient.Client).Handler
	}

	publicLimiter := httprate.LimitByIP(config.PublicRateLimit, config.PublicRateLimitWindow)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)

	authHandler := handler.NewAuthHandler(authService, authMiddleware.Handler, loginLimiter)
	adminHandler := handler.NewAdminHandler(authService, authMiddleware.Handler)
	leadHandler := handler.NewLeadHandler(leadService, authMiddleware.Handler, publicLimiter)
	settingsHandler := handler.NewSettingsHandler(settingsService, authMiddleware.Handler)
	chatHandler := handler.NewChatHandler(chatService, publicLimiter)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(cfg.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())
		r.Mount("/admin", adminHandler.Routes())
		r.Mount("/leads", leadHandler.Routes())
		r.Mount("/settings", settingsHandler.Routes())
		r.Mount("/chat", chatHandler.Routes())
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
