package commands

import (
	"github.com/spf13/cobra"

	"drivelog/internal/terminal/export"
)

// NewMonthCmd shows the monthly summary; without an argument the most
// recent recorded month is used.
func NewMonthCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Summarise one month of worked days",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := env.context(cmd.Context())
			defer cancel()

			options, err := env.Journal.Months(ctx)
			if err != nil {
				return err
			}
			month := pick(args, options)
			if month == "" {
				return env.Printer.Summary(export.Summary{Title: "Monthly summary", Empty: "No records yet: no data."})
			}
			s, err := env.Journal.MonthlySummary(ctx, month)
			if err != nil {
				return err
			}
			r := env.reporter()
			pie := r.Pie(s.Breakdown)
			return env.Printer.Summary(export.Summary{
				Title:   "Monthly summary " + s.Month,
				Options: options,
				Sections: []export.Section{
					{Title: "Totals (worked days)", Metrics: r.Totals(s.Revenue, s.Expenses, s.Net)},
					{Title: "Days", Metrics: r.Indicators(s.Indicators)},
					{Title: "Efficiency", Metrics: r.Efficiency(s.Efficiency, s.DistanceKm, s.Hours)},
				},
				Pie: &pie,
			})
		},
	}
}

func NewYearCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "year [YYYY]",
		Short: "Summarise one year of worked days",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := env.context(cmd.Context())
			defer cancel()

			options, err := env.Journal.Years(ctx)
			if err != nil {
				return err
			}
			year := pick(args, options)
			if year == "" {
				return env.Printer.Summary(export.Summary{Title: "Annual summary", Empty: "No records yet: no data."})
			}
			s, err := env.Journal.AnnualSummary(ctx, year)
			if err != nil {
				return err
			}
			r := env.reporter()
			pie, bars := r.Pie(s.Breakdown), r.Bars(s.Series)
			return env.Printer.Summary(export.Summary{
				Title:   "Annual summary " + s.Year,
				Options: options,
				Sections: []export.Section{
					{Title: "Totals (worked days)", Metrics: r.Totals(s.Revenue, s.Expenses, s.Net)},
					{Title: "Days", Metrics: r.Indicators(s.Indicators)},
				},
				Bars: &bars,
				Pie:  &pie,
			})
		},
	}
}

func NewCompareCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare net profit across months",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := env.context(cmd.Context())
			defer cancel()

			c, err := env.Journal.CompareMonths(ctx)
			if err != nil {
				return err
			}
			r := env.reporter()
			bars := r.Bars(c.Series)
			return env.Printer.Summary(export.Summary{
				Title:    "Compare months",
				Sections: []export.Section{{Title: "All recorded days", Metrics: r.Indicators(c.Indicators)}},
				Bars:     &bars,
			})
		},
	}
}

func pick(args, options []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if len(options) > 0 {
		return options[0]
	}
	return ""
}
