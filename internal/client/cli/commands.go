package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"rateadmin/internal/client/rates"
)

func (c *Cli) Run(ctx context.Context, command string, args []string) {
	var err error
	switch command {
	case "login":
		err = c.runLogin(ctx)
	case "logout":
		err = c.runLogout(ctx)
	case "status":
		err = c.runStatus(ctx)
	case "list":
		err = c.runList(ctx, args)
	case "add":
		err = c.runAdd(ctx)
	case "update":
		err = c.runUpdate(ctx, args)
	case "delete":
		err = c.runDelete(ctx, args)
	case "ui":
		err = c.runInteractive(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		PrintUsage()
		os.Exit(1)
	}

	if err != nil {
		if errors.Is(err, rates.ErrSessionExpired) {
			fmt.Fprintln(os.Stderr, "Session expired. Please run 'rateadmin login' again.")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runInteractive открывает интерактивную таблицу. Как и остальные
// команды данных, требует сохраненной сессии до запуска представления.
func (c *Cli) runInteractive(ctx context.Context) error {
	if c.runUI == nil {
		return fmt.Errorf("interactive mode is not available")
	}
	if err := c.requireAuth(ctx); err != nil {
		return err
	}
	return c.runUI(ctx)
}
