package cli

import (
	"context"
	"fmt"

	"rateadmin/internal/client/auth"
	"rateadmin/internal/client/iocli"
	"rateadmin/internal/client/rates"
)

// Cli связывает консольные команды с движком тарифов и сервисом сессии
type Cli struct {
	io     iocli.IO
	auth   auth.Service
	engine *rates.Engine

	// runUI запускает интерактивную таблицу, внедряется из main
	runUI func(ctx context.Context) error
}

func New(io iocli.IO, authService auth.Service, engine *rates.Engine, runUI func(ctx context.Context) error) *Cli {
	return &Cli{
		io:     io,
		auth:   authService,
		engine: engine,
		runUI:  runUI,
	}
}

// Notifier возвращает NotifyFunc, печатающий уведомления движка в терминал
func Notifier(io iocli.IO) rates.NotifyFunc {
	return func(n rates.Notice) {
		switch n.Severity {
		case rates.SeveritySuccess:
			io.Printf("✓ %s\n", n.Message)
		case rates.SeverityError:
			io.Printf("✗ %s\n", n.Message)
		default:
			io.Println(n.Message)
		}
	}
}

// requireAuth проверяет наличие сохраненной сессии перед командой
func (c *Cli) requireAuth(ctx context.Context) error {
	isAuth, err := c.auth.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("failed to check authentication: %w", err)
	}
	if !isAuth {
		return fmt.Errorf("not authenticated. Please run 'rateadmin login' first")
	}
	return nil
}

func PrintUsage() {
	fmt.Println("Rate Admin Console")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  rateadmin [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version   Show version information")
	fmt.Println("  --server    Server URL (or RATEADMIN_SERVER env var)")
	fmt.Println("  --db PATH   Path to local session database (default: rateadmin-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  login                   Login to server")
	fmt.Println("  logout                  Logout and delete local session")
	fmt.Println("  status                  Show authentication status")
	fmt.Println("  list                    List rates (--search TERM, --sort idOp|tasa, --desc)")
	fmt.Println("  add                     Create a new rate record")
	fmt.Println("  update <operation-id>   Change the rate of an existing record")
	fmt.Println("  delete <operation-id>   Delete a rate record")
	fmt.Println("  ui                      Open the interactive rates table")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  rateadmin login")
	fmt.Println("  rateadmin list --search 105 --sort tasa --desc")
	fmt.Println("  rateadmin update 1052")
	fmt.Println("  rateadmin --server https://rates.example.com ui")
}
