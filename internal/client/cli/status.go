package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	// Проверяем наличие сохраненной сессии
	isAuth, err := c.auth.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	if !isAuth {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'rateadmin login' to authenticate.")
		return nil
	}

	session, err := c.auth.Session(ctx)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	// Срок действия токена клиент не проверяет: истекший токен
	// обнаружится по 401 при первом запросе
	c.io.Println("Status: Authenticated")
	c.io.Printf("Username: %s\n", session.Username)
	c.io.Printf("Logged in: %s\n", session.CreatedAt.Format(time.RFC3339))

	return nil
}
