package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"rateadmin/internal/models"
	"rateadmin/internal/server/handlers"
	"rateadmin/internal/server/middleware"
	"rateadmin/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const (
	accessTokenTTL  = 24 * time.Hour
	shutdownTimeout = 10 * time.Second

	// Лимит на логин: защита от перебора паролей
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", ":8080", "Listen address")
	dbPath := flag.String("db", "rateadmin.db", "Path to SQLite database")
	createUser := flag.Bool("create-user", false, "Create an admin user and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger, *addr, *dbPath, *createUser); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, addr, dbPath string, createUser bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	if createUser {
		return runCreateUser(ctx, store)
	}

	secret := os.Getenv("RATEADMIN_JWT_SECRET")
	if secret == "" {
		return fmt.Errorf("RATEADMIN_JWT_SECRET environment variable is required")
	}

	jwtConfig := handlers.JWTConfig{
		Secret:         []byte(secret),
		AccessTokenTTL: accessTokenTTL,
	}

	authHandler := handlers.NewAuthHandler(logger, store, jwtConfig)
	ratesHandler := handlers.NewRatesHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger)

	authRequired := middleware.AuthMiddleware(logger, jwtConfig)
	loginLimit := middleware.RateLimitMiddleware(loginRateLimit, loginRateWindow, logger)

	mux := http.NewServeMux()
	mux.Handle("POST /api/login", loginLimit(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("GET /api/health", healthHandler.Health)
	mux.Handle("GET /api/tasas", authRequired(http.HandlerFunc(ratesHandler.List)))
	mux.Handle("POST /api/tasas/create", authRequired(http.HandlerFunc(ratesHandler.Create)))
	mux.Handle("POST /api/tasas/{idOp}", authRequired(http.HandlerFunc(ratesHandler.Update)))
	mux.Handle("DELETE /api/tasas/{idOp}", authRequired(http.HandlerFunc(ratesHandler.Delete)))

	handler := middleware.RecoveryMiddleware(logger)(
		middleware.LoggingWithSkip(logger, []string{"/api/health"})(mux))

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		errC <- srv.ListenAndServe()
	}()

	select {
	case err := <-errC:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	return nil
}

// runCreateUser создает учетную запись администратора из терминала
func runCreateUser(ctx context.Context, store *sqlite.Storage) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(passwordBytes) == 0 {
		return fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword(passwordBytes, bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := store.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("User %q created.\n", username)
	return nil
}

func printVersion() {
	fmt.Printf("Rate Admin Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
