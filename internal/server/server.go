// Package server is the composition root: it opens the database, wires
// repositories into services and services into handlers, declares every
// route, and owns the server lifecycle. main.go only builds a Config and
// calls Start.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/healthfinder/internal/auth"
	"github.com/sakif/healthfinder/internal/handler"
	"github.com/sakif/healthfinder/internal/hospital"
	"github.com/sakif/healthfinder/internal/middleware"
	sqliteRepo "github.com/sakif/healthfinder/internal/repository/sqlite"
	"github.com/sakif/healthfinder/internal/service"
	"github.com/sakif/healthfinder/internal/suggest"
)

// Config holds everything the server needs from the environment.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string

	// GeminiAPIKey enables AI suggestions. Empty means the analyze flow
	// still works but returns a fixed "not configured" suggestion.
	GeminiAPIKey string

	// AdminUsername/AdminPassword seed the admin account on first boot.
	// The password is only used when the account doesn't exist yet.
	AdminUsername string
	AdminPassword string
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown so the WAL gets flushed.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database, wires the full dependency chain, and seeds the
// admin account. Each layer receives only the layer below it: handlers
// see services, services see repository interfaces, and only this package
// sees the concrete sqlite.DB.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes wires middleware, services, and every route.
//
// ROUTE MAP:
//
//	POST   /api/register                           create account + session
//	POST   /api/login                              start session
//	POST   /api/logout                             end session
//	GET    /api/emergency-contacts?location=       public emergency directory
//	GET    /api/me                                 (auth) current identity
//	POST   /api/analyze                            (auth) run a symptom check
//	GET    /api/history?limit=                     (auth) own history, newest first
//	GET    /api/profile                            (auth) read health profile
//	PUT    /api/profile                            (auth) replace health profile
//	GET    /api/admin/stats                        (admin) usage counters
//	GET    /api/admin/users                        (admin) all accounts
//	GET    /api/admin/users/{username}/export      (admin) full data export
//	DELETE /api/admin/users/{username}             (admin) delete user + data
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	// Services. The sqlite.DB value satisfies all four repository
	// interfaces, so it is passed to each service directly.
	accountService := service.NewAccountService(s.db, auth.NewPasswordService(), s.logger)
	profileService := service.NewProfileService(s.db, s.logger)
	historyService := service.NewHistoryService(s.db, s.logger)
	adminService := service.NewAdminService(s.db, s.logger)

	var provider suggest.Provider = suggest.Disabled{}
	if s.config.GeminiAPIKey != "" {
		provider = suggest.NewGeminiProvider(s.config.GeminiAPIKey)
	} else {
		s.logger.Warn("no Gemini API key configured, AI suggestions disabled")
	}

	analysisService := service.NewAnalysisService(historyService, provider, hospital.New(), s.logger)

	// The admin account goes through the same registration path as any
	// user and only differs by role. Seeding is a no-op when it exists.
	if s.config.AdminUsername != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := accountService.EnsureAdmin(ctx, s.config.AdminUsername, s.config.AdminPassword); err != nil {
			return fmt.Errorf("seeding admin account: %w", err)
		}
	}

	accountHandler := handler.NewAccountHandler(accountService, tokens, s.logger)
	profileHandler := handler.NewProfileHandler(profileService, s.logger)
	analysisHandler := handler.NewAnalysisHandler(analysisService, historyService, s.logger)
	adminHandler := handler.NewAdminHandler(adminService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		// Public routes.
		r.Post("/register", accountHandler.HandleRegister)
		r.Post("/login", accountHandler.HandleLogin)
		r.Post("/logout", accountHandler.HandleLogout)
		r.Get("/emergency-contacts", analysisHandler.HandleEmergencyContacts)

		// Authenticated routes.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/me", accountHandler.HandleMe)
			r.Post("/analyze", analysisHandler.HandleAnalyze)
			r.Get("/history", analysisHandler.HandleHistory)
			r.Get("/profile", profileHandler.HandleGet)
			r.Put("/profile", profileHandler.HandlePut)
		})

		// Admin routes.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Use(auth.RequireAdmin(tokens))

			r.Get("/admin/stats", adminHandler.HandleStats)
			r.Get("/admin/users", adminHandler.HandleListUsers)
			r.Get("/admin/users/{username}/export", adminHandler.HandleExport)
			r.Delete("/admin/users/{username}", adminHandler.HandleDeleteUser)
		})
	})

	return nil
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully:
// stop accepting connections, drain in-flight requests, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // analyze calls out to Gemini and Nominatim
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
