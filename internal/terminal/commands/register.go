package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"drivelog/internal/core"
)

type RegisterCmd struct {
	env   *Env
	input core.RecordInput
	off   bool
}

func NewRegisterCmd(env *Env) *cobra.Command {
	rc := &RegisterCmd{env: env}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Record one day of work or a day off",
		Example: `  drivelogctl register --date 2024-01-05 --revenue 200 --fuel 50 --food 10 --km 120 --hours 8 --target 180
  drivelogctl register --date 2024-01-10 --off`,
		Args: cobra.NoArgs,
		RunE: rc.run,
	}

	f := cmd.Flags()
	f.StringVar(&rc.input.Date, "date", "", "Day in YYYY-MM-DD form (default today)")
	f.BoolVar(&rc.off, "off", false, "Record a day off; every amount is stored as zero")
	f.StringVar(&rc.input.Revenue, "revenue", "", "Money received")
	f.StringVar(&rc.input.DistanceKm, "km", "", "Kilometres driven")
	f.StringVar(&rc.input.HoursWorked, "hours", "", "Hours worked")
	f.StringVar(&rc.input.DailyTarget, "target", "", "Revenue target for the day")
	f.StringVar(&rc.input.FuelCost, "fuel", "", "Fuel expense")
	f.StringVar(&rc.input.FoodCost, "food", "", "Food expense")
	f.StringVar(&rc.input.AttendantCost, "attendant", "", "Attendant tip expense")
	f.StringVar(&rc.input.CarWashCost, "car-wash", "", "Car wash expense")
	f.StringVar(&rc.input.GarageCost, "garage", "", "Garage expense")
	f.StringVar(&rc.input.OtherCost, "other", "", "Any other expense")
	f.StringVar(&rc.input.OtherCostDescription, "other-desc", "", "What the other expense was")
	f.StringVar(&rc.input.Notes, "notes", "", "Free-text notes")

	return cmd
}

func (rc *RegisterCmd) run(cmd *cobra.Command, _ []string) error {
	in := rc.input
	in.Worked = "true"
	if rc.off {
		in.Worked = "false"
	}
	rec, err := in.Record(rc.env.today())
	if err != nil {
		return fmt.Errorf("invalid day: %w", err)
	}

	ctx, cancel := rc.env.context(cmd.Context())
	defer cancel()
	if _, err := rc.env.Journal.RegisterDay(ctx, rec); err != nil {
		return err
	}

	if !rec.Worked {
		rc.env.Printer.Line("Day off on %s recorded.", rec.Date)
		return nil
	}
	r := rc.env.reporter()
	rc.env.Printer.Line("Day %s saved: revenue %s, expenses %s, net %s.",
		rec.Date, r.Currency(rec.Revenue), r.Currency(rec.TotalExpenses()), r.Currency(rec.NetProfit()))
	return nil
}
