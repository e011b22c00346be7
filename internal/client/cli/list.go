package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"rateadmin/internal/client/rates"
	"rateadmin/internal/validation"
)

func (c *Cli) runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	search := fs.String("search", "", "filter by operation ID substring (digits only)")
	sortKey := fs.String("sort", "", "sort column: idOp or tasa")
	desc := fs.Bool("desc", false, "sort descending")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := c.requireAuth(ctx); err != nil {
		return err
	}

	if err := c.engine.Load(ctx); err != nil {
		return err
	}

	if *search != "" {
		if err := c.engine.SetSearchTerm(*search); err != nil {
			return err
		}
	}

	switch *sortKey {
	case "":
	case string(rates.SortKeyOperationID), string(rates.SortKeyRate):
		key := rates.SortKey(*sortKey)
		c.engine.SortBy(key)
		if *desc {
			// Повторное нажатие той же колонки переключает на убывание
			c.engine.SortBy(key)
		}
	default:
		return fmt.Errorf("unknown sort column %q (want idOp or tasa)", *sortKey)
	}

	state, errMsg := c.engine.State()
	if state == rates.StateFailed {
		return fmt.Errorf("%s", errMsg)
	}

	view := c.engine.View()
	if len(view) == 0 {
		if *search != "" && state == rates.StateReady {
			c.io.Printf("No rates match search term %q.\n", *search)
		} else {
			c.io.Println("No rates found.")
		}
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OPERATION ID\tRATE\tEMAIL")
	for _, r := range view {
		fmt.Fprintf(w, "%d\t%s\t%s\n", r.IDOp, validation.FormatRate(r.Tasa), r.Email)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	c.io.Printf("%s", sb.String())
	c.io.Printf("\nTotal: %d record(s)\n", len(view))

	return nil
}
