package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"rateadmin/internal/client/api"
	"rateadmin/internal/client/auth"
	"rateadmin/internal/client/cli"
	"rateadmin/internal/client/iocli"
	"rateadmin/internal/client/rates"
	"rateadmin/internal/client/storage/boltdb"
	"rateadmin/internal/client/tui"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "", "Server URL (or RATEADMIN_SERVER env var)")
	dbPath := flag.String("db", "rateadmin-client.db", "Path to local session database")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]

	// Адрес сервера обязателен: флаг, затем переменная окружения
	server := *serverURL
	if server == "" {
		server = os.Getenv("RATEADMIN_SERVER")
	}
	if server == "" {
		fmt.Fprintln(os.Stderr, "Server URL is required: pass --server or set RATEADMIN_SERVER")
		os.Exit(1)
	}

	ctx := context.Background()

	// Открываем локальное хранилище сессии
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	io := iocli.NewStdio()
	apiClient := api.NewClient(server)
	authService := auth.NewService(apiClient, boltStorage)
	engine := rates.NewEngine(apiClient, authService, cli.Notifier(io), slog.Default())

	runUI := func(ctx context.Context) error {
		return tui.Run(ctx, apiClient, authService)
	}

	c := cli.New(io, authService, engine, runUI)
	c.Run(ctx, command, args[1:])
}

func printVersion() {
	fmt.Printf("Rate Admin Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
