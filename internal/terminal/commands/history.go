package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"drivelog/internal/terminal/export"
)

type HistoryCmd struct {
	env   *Env
	limit int
}

func NewHistoryCmd(env *Env) *cobra.Command {
	hc := &HistoryCmd{env: env}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded days, most recent first",
		Args:  cobra.NoArgs,
		RunE:  hc.run,
	}
	cmd.Flags().IntVar(&hc.limit, "limit", 0, "Show only the most recent N days (0 shows all)")
	return cmd
}

func (hc *HistoryCmd) run(cmd *cobra.Command, _ []string) error {
	if hc.limit < 0 {
		return fmt.Errorf("--limit cannot be negative")
	}
	ctx, cancel := hc.env.context(cmd.Context())
	defer cancel()

	records, err := hc.env.Journal.History(ctx)
	if err != nil {
		return err
	}
	if hc.limit > 0 && len(records) > hc.limit {
		records = records[:hc.limit]
	}
	r := hc.env.reporter()
	rows := make([]export.HistoryRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, historyRow(r, rec))
	}
	return hc.env.Printer.History(rows)
}
