package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/stocka-io/stocka-api/internal/auth"
	"github.com/stocka-io/stocka-api/internal/config"
	"github.com/stocka-io/stocka-api/internal/database"
	"github.com/stocka-io/stocka-api/internal/handlers"
	"github.com/stocka-io/stocka-api/internal/middleware"
	"github.com/stocka-io/stocka-api/internal/repository"
	"github.com/stocka-io/stocka-api/internal/services"
	"github.com/stocka-io/stocka-api/internal/session"
	"github.com/stocka-io/stocka-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting Stocka API")

	// Connect to database
	db, err := database.Connect(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: cfg.Database.LogLevel,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	// Initialize session store
	var sessions session.Store
	if cfg.Session.Backend == "redis" {
		addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		sessions, err = session.NewRedisStore(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		log.Info().Msg("Redis session store initialized")
	} else {
		sessions = session.NewMemoryStore()
		log.Info().Msg("Memory session store initialized")
	}
	defer sessions.Close()

	// Initialize token service
	tokens := auth.NewTokenService(
		cfg.Auth.AccessSecret,
		cfg.Auth.RefreshSecret,
		cfg.Auth.AccessTTL,
		cfg.Auth.RefreshTTL,
		sessions,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	permRepo := repository.NewPermissionRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, auditRepo, tokens, sessions)
	registerService := services.NewRegisterService(tenantRepo, userRepo, auditRepo, tokens, sessions, cfg.Auth.BcryptCost)
	permissionService := services.NewPermissionService(permRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, sessions)
	authHandler := handlers.NewAuthHandler(authService)
	registerHandler := handlers.NewRegisterHandler(registerService)
	meHandler := handlers.NewMeHandler()
	auditHandler := handlers.NewAuditHandler(auditRepo)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Compress(5))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints (no authentication required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Public auth surface
	r.Post("/auth/login", authHandler.Login)
	r.Post("/auth/logout", authHandler.Logout)
	r.Post("/auth/refresh", authHandler.Refresh)
	r.Post("/register", registerHandler.Register)

	// Protected routes: CRUD collaborators mount here and must gate mutations
	// with middleware.RequirePermission(permissionService, "<Action><Resource>").
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens))

		r.Get("/me", meHandler.Me)
		r.With(middleware.RequirePermission(permissionService, "ViewBusiness")).
			Get("/audit", auditHandler.List)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
