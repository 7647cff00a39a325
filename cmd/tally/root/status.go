package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/engine"
	"tally/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, experience, and the week at a glance",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, owner, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()

			progress, err := svc.Store().GetProgress(ctx, owner)
			if err != nil {
				return err
			}
			exp := 0
			if progress != nil {
				exp = progress.Experience
			}
			level := engine.LevelForExperience(exp)
			inLevel := exp - (level-1)*engine.ExpPerLevel
			if exp <= 0 {
				inLevel = 0
			}

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Status"))
			fmt.Fprintln(out, ui.LabelValue("Level", level))
			fmt.Fprintf(out, "%s %s %s\n",
				ui.Key.Render("Next:"),
				ui.Bar(inLevel, engine.ExpPerLevel, 20),
				ui.Muted.Render(fmt.Sprintf("%d/%d exp", inLevel, engine.ExpPerLevel)))

			receipts, err := svc.Store().ListReceipts(ctx, owner)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.LabelValue("Receipts", len(receipts)))
			fmt.Fprintln(out, "")

			week, err := svc.WeekMinutes(ctx, owner)
			if err != nil {
				return err
			}
			max := 0
			for _, m := range week {
				if m > max {
					max = m
				}
			}
			fmt.Fprintln(out, ui.H2.Render(ui.IconChart+" Last 7 days"))
			for i := 6; i >= 0; i-- {
				fmt.Fprintf(out, "%-7s %s %s\n",
					ui.Muted.Render(weekLabel(i)),
					ui.Bar(week[i], max, 16),
					engine.FormatDuration(week[i]))
			}
			return nil
		},
	}

	return cmd
}

// weekLabel names a rolling 24-hour bucket, i windows back from now.
// The buckets are not calendar days, so weekday names would mislabel
// late-evening sessions.
func weekLabel(i int) string {
	if i == 0 {
		return "today"
	}
	return fmt.Sprintf("%dd ago", i)
}
