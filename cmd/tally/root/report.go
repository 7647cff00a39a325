package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/engine"
	"tally/internal/ui"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize today's published sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, owner, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			today, err := svc.TodaySessions(ctx, owner)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconFlame, "Today"))
			if len(today) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing published today yet."))
				return nil
			}

			total := 0
			for i := range today {
				s := today[i]
				total += s.Minutes
				label := s.Subject
				if s.CategoryEmoji != nil {
					label = *s.CategoryEmoji + " " + label
				}
				fmt.Fprintf(out, "%s  %-28s %s\n",
					ui.Muted.Render(s.CreatedAt.Local().Format("15:04")),
					label,
					engine.FormatDuration(s.Minutes))
			}
			fmt.Fprintln(out, "")
			fmt.Fprintf(out, "%s %s across %d session(s)\n",
				ui.Key.Render("Total:"), ui.Lime.Render(engine.FormatDuration(total)), len(today))

			for _, st := range engine.CategoryStats(today) {
				name := st.CategoryID
				if st.Name != nil {
					name = *st.Name
				}
				if st.Emoji != nil {
					name = *st.Emoji + " " + name
				}
				fmt.Fprintf(out, "  %-24s %d× · %s\n", name, st.Count, st.Formatted)
			}
			return nil
		},
	}

	return cmd
}
