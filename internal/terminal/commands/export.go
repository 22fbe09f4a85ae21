package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

type ExportCmd struct {
	env *Env
	out string
}

func NewExportCmd(env *Env) *cobra.Command {
	ec := &ExportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "export [YYYY-MM]",
		Short: "Write the monthly PDF report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  ec.run,
	}
	cmd.Flags().StringVarP(&ec.out, "out", "o", "", "Output file or directory (default summary_<month>.pdf in the current directory)")
	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := ec.env.context(cmd.Context())
	defer cancel()

	options, err := ec.env.Journal.Months(ctx)
	if err != nil {
		return err
	}
	month := pick(args, options)
	if month == "" {
		return errors.New("no records yet: nothing to export")
	}

	doc, err := ec.env.Journal.MonthlyReportPDF(ctx, month)
	if err != nil {
		return err
	}

	path := doc.FileName
	if ec.out != "" {
		path = ec.out
		if info, err := os.Stat(ec.out); err == nil && info.IsDir() {
			path = filepath.Join(ec.out, doc.FileName)
		}
	}
	if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	ec.env.Printer.Line("Report for %s written to %s.", month, path)
	return nil
}
