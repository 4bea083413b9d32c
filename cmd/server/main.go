package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vocablearn/internal/config"
	"vocablearn/internal/database"
	"vocablearn/internal/handlers"
	"vocablearn/internal/repository"
	"vocablearn/internal/security"
	"vocablearn/internal/service"
)

func main() {
	cfg := config.Load()
	if cfg.Debug {
		log.Printf("Debug: database=%s migrations=%s port=%s", cfg.DatabaseType, cfg.MigrationsPath, cfg.ServerPort)
	}

	// Database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	vocabRepo := repository.NewVocabularyRepository(db)
	sessionRepo := repository.NewStudySessionRepository(db)
	dailyRepo := repository.NewDailyStatsRepository(db)

	// Services
	tokens := security.NewTokenManager(cfg.JWTSecret, cfg.TokenDuration)
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Clean out expired reset tokens in the background
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := userRepo.DeleteExpiredResetTokens(); err != nil {
				log.Printf("Failed to clean expired reset tokens: %v", err)
			}
		}
	}()

	authService := service.NewAuthService(userRepo, tokens, emailService)
	vocabService := service.NewVocabularyService(vocabRepo)
	studyService := service.NewStudyService(vocabRepo, sessionRepo, dailyRepo)
	dashboardService := service.NewDashboardService(vocabRepo, dailyRepo)

	// Handlers
	authLimiter := security.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	mw := handlers.NewMiddleware(tokens, authLimiter)

	authHandler := handlers.NewAuthHandler(authService)
	vocabHandler := handlers.NewVocabularyHandler(vocabService)
	studyHandler := handlers.NewStudyHandler(studyService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	mux := http.NewServeMux()

	// Auth routes, rate limited
	mux.HandleFunc("POST /api/auth/register", mw.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", mw.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /api/auth/me", mw.RequireAuth(authHandler.Me))
	mux.HandleFunc("POST /api/auth/password-reset", mw.RateLimit(authHandler.RequestPasswordReset))
	mux.HandleFunc("POST /api/auth/password-reset/confirm", mw.RateLimit(authHandler.ConfirmPasswordReset))

	// Vocabulary routes
	mux.HandleFunc("GET /api/vocabulary", mw.RequireAuth(vocabHandler.List))
	mux.HandleFunc("POST /api/vocabulary", mw.RequireAuth(vocabHandler.Create))
	mux.HandleFunc("GET /api/vocabulary/{id}", mw.RequireAuth(vocabHandler.Get))
	mux.HandleFunc("PUT /api/vocabulary/{id}", mw.RequireAuth(vocabHandler.Update))
	mux.HandleFunc("DELETE /api/vocabulary/{id}", mw.RequireAuth(vocabHandler.Delete))
	mux.HandleFunc("PUT /api/vocabulary/{id}/mastery", mw.RequireAuth(vocabHandler.SetMastery))

	// Study routes
	mux.HandleFunc("GET /api/study/session", mw.RequireAuth(studyHandler.StartSession))
	mux.HandleFunc("POST /api/study/result", mw.RequireAuth(studyHandler.RecordResult))
	mux.HandleFunc("GET /api/study/stats", mw.RequireAuth(studyHandler.Stats))
	mux.HandleFunc("GET /api/study/history", mw.RequireAuth(studyHandler.History))

	// Dashboard routes
	mux.HandleFunc("GET /api/dashboard/stats", mw.RequireAuth(dashboardHandler.Stats))
	mux.HandleFunc("GET /api/dashboard/progress", mw.RequireAuth(dashboardHandler.Progress))

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handlers.Logging(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-done
	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
