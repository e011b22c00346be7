package cli

import (
	"context"
	"fmt"

	"rateadmin/internal/client/forms"
)

func (c *Cli) runAdd(ctx context.Context) error {
	c.io.Println("=== Add Rate ===")
	c.io.Println()

	if err := c.requireAuth(ctx); err != nil {
		return err
	}

	form := forms.NewCreateForm(c.engine)

	idOp, err := c.io.ReadInput("Operation ID: ")
	if err != nil {
		return fmt.Errorf("failed to read operation ID: %w", err)
	}
	form.SetOperationID(idOp)

	rate, err := c.io.ReadInput("Rate: ")
	if err != nil {
		return fmt.Errorf("failed to read rate: %w", err)
	}
	form.SetRate(rate)

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	form.SetEmail(email)

	c.io.Println()
	return form.Submit(ctx)
}
