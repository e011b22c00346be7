package cli

import (
	"context"
	"fmt"

	"rateadmin/internal/validation"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing operation ID. Usage: rateadmin delete <operation-id>")
	}

	idOp, err := validation.ParseOperationID(args[0])
	if err != nil {
		return err
	}

	c.io.Println("=== Delete Rate ===")
	c.io.Println()

	if err := c.requireAuth(ctx); err != nil {
		return err
	}

	record, err := c.findRate(ctx, idOp)
	if err != nil {
		return err
	}

	c.io.Println("About to delete:")
	c.io.Printf("  Operation ID: %d\n", record.IDOp)
	c.io.Printf("  Rate:         %s\n", validation.FormatRate(record.Tasa))
	c.io.Printf("  Email:        %s\n", record.Email)
	c.io.Println()

	confirmed, err := c.io.Confirm("Are you sure you want to delete this rate? (yes/no): ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !confirmed {
		c.io.Println()
		c.io.Println("Deletion cancelled.")
		return nil
	}

	c.io.Println()
	return c.engine.Delete(ctx, idOp)
}
