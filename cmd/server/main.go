package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/Ajayrajc1998/wedding/docs"
	"github.com/Ajayrajc1998/wedding/internal/config"
	"github.com/Ajayrajc1998/wedding/internal/database"
	"github.com/Ajayrajc1998/wedding/internal/flags"
	"github.com/Ajayrajc1998/wedding/internal/router"
	"github.com/Ajayrajc1998/wedding/internal/services"
	"github.com/Ajayrajc1998/wedding/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title           Event API
// @version         1.0
// @description     Participant registration, photo uploads and quiz for the event
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	// .env is optional; real environment wins.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	})))
	gin.SetMode(gin.ReleaseMode)

	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)
	if err := database.AutoMigrate(db); err != nil {
		slog.Error("schema migration failed", "error", err)
		os.Exit(1)
	}

	store, err := newFlagStore(cfg)
	if err != nil {
		slog.Error("flag store unavailable", "error", err)
		os.Exit(1)
	}

	authService, err := services.NewAuthService(services.AuthConfig{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
		Secret:       cfg.SecretKey,
		Algorithm:    cfg.Algorithm,
		TTL:          time.Duration(cfg.TokenTTLMinutes) * time.Minute,
	})
	if err != nil {
		slog.Error("auth setup failed", "error", err)
		os.Exit(1)
	}

	scoringService := services.NewScoringService()
	engine := router.New(router.Deps{
		DB:          db,
		Flags:       store,
		Hub:         ws.NewHub(),
		Auth:        authService,
		Participant: services.NewParticipantService(db),
		Photo: services.NewPhotoService(db, store, services.PhotoConfig{
			MaxBytes:  cfg.MaxUploadBytes,
			LegacyDir: cfg.LegacyUploadDir,
			ListGated: cfg.PhotoListGated,
		}),
		Quiz:        services.NewQuizService(db, store, cfg.QuizListGated),
		Submission:  services.NewSubmissionService(db, scoringService),
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("server starting", "port", cfg.ServerPort, "photos", cfg.PhotosEnabled, "quiz", cfg.QuizEnabled)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func newFlagStore(cfg *config.Config) (flags.Store, error) {
	initial := flags.Snapshot{AllowPhotos: cfg.PhotosEnabled, AllowQuiz: cfg.QuizEnabled}
	if cfg.RedisAddr == "" {
		return flags.NewMemoryStore(initial), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := flags.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, err
	}
	slog.Info("feature flags backed by redis", "addr", cfg.RedisAddr)
	return flags.NewRedisStore(client, initial), nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
