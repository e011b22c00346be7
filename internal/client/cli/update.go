package cli

import (
	"context"
	"fmt"

	"rateadmin/internal/client/forms"
	"rateadmin/internal/validation"
	"rateadmin/pkg/api"
)

func (c *Cli) runUpdate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing operation ID. Usage: rateadmin update <operation-id>")
	}

	idOp, err := validation.ParseOperationID(args[0])
	if err != nil {
		return err
	}

	c.io.Println("=== Update Rate ===")
	c.io.Println()

	if err := c.requireAuth(ctx); err != nil {
		return err
	}

	record, err := c.findRate(ctx, idOp)
	if err != nil {
		return err
	}

	c.io.Printf("Operation ID: %d\n", record.IDOp)
	c.io.Printf("Email:        %s\n", record.Email)
	c.io.Printf("Current rate: %s\n", validation.FormatRate(record.Tasa))
	c.io.Println()

	form := forms.NewEditForm(c.engine, *record)

	input, err := c.io.ReadInput("New rate: ")
	if err != nil {
		return fmt.Errorf("failed to read rate: %w", err)
	}
	form.SetRate(input)
	form.Blur()

	c.io.Println()
	return form.Submit(ctx)
}

// findRate перечитывает список и ищет запись по ID операции
func (c *Cli) findRate(ctx context.Context, idOp int) (*api.Rate, error) {
	if err := c.engine.Load(ctx); err != nil {
		return nil, err
	}
	for _, r := range c.engine.Records() {
		if r.IDOp == idOp {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("rate not found for operation ID %d", idOp)
}
