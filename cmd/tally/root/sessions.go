package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/engine"
	"tally/internal/ui"
)

func newSessionsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List published sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, owner, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := svc.Store().ListSessions(ctx, owner)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTimer, "Sessions"))
			if len(list) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No sessions yet. Open `tally desk` or `tally log` one."))
				return nil
			}
			if limit > 0 && len(list) > limit {
				list = list[:limit]
			}
			for i := range list {
				s := list[i]
				label := s.Subject
				if s.CategoryEmoji != nil {
					label = *s.CategoryEmoji + " " + label
				}
				fmt.Fprintf(out, "%s  %-28s %-8s %s\n",
					ui.Muted.Render(s.CreatedAt.Local().Format("01-02 15:04")),
					label,
					engine.FormatDuration(s.Minutes),
					ui.Muted.Render(s.ID))
				if s.KeyInsight != nil {
					fmt.Fprintln(out, "  "+ui.Muted.Render(ui.IconSparkle+" "+*s.KeyInsight))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Max sessions to show (0 for all)")

	return cmd
}
