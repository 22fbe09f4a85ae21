// Package terminal is the drivelogctl command tree.
package terminal

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"drivelog/internal/services"
	"drivelog/internal/terminal/commands"
	"drivelog/internal/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Env
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Journal *services.Journal
	Output  io.Writer
	// Now defaults the register date; nil means time.Now.
	Now func() time.Time
	// Timeout bounds each command; zero means no limit.
	Timeout time.Duration
}

func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	cli := &CLI{env: &commands.Env{
		Journal: opts.Journal,
		Printer: export.NewPrinter(opts.Output),
		Now:     opts.Now,
		Timeout: opts.Timeout,
	}}
	cli.rootCmd = cli.newRootCmd(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "drivelogctl",
		Short:         "Record driving days and summarise earnings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)

	cmd.AddCommand(commands.NewRegisterCmd(cli.env))
	cmd.AddCommand(commands.NewHistoryCmd(cli.env))
	cmd.AddCommand(commands.NewMonthCmd(cli.env))
	cmd.AddCommand(commands.NewYearCmd(cli.env))
	cmd.AddCommand(commands.NewCompareCmd(cli.env))
	cmd.AddCommand(commands.NewExportCmd(cli.env))

	return cmd
}
