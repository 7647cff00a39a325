package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/engine"
	"tally/internal/ui"
)

func newFeedCmd() *cobra.Command {
	var limit int
	var cheer string

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Show the square feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if cheer != "" {
				if err := svc.Store().CheerFeedItem(ctx, cheer); err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Good.Render("Cheered "+cheer))
			}

			items, err := svc.Store().ListFeed(ctx, limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Heading(ui.IconFeed, "Square"))
			if len(items) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Quiet in the square. Publish a receipt to post."))
				return nil
			}
			for i := range items {
				it := items[i]
				fmt.Fprintf(out, "%s  %s focused on %s for %s",
					ui.Muted.Render(it.CreatedAt.Local().Format("01-02 15:04")),
					ui.Key.Render(it.AuthorLabel),
					it.Subject,
					engine.FormatDuration(it.Minutes))
				if it.Reactions > 0 {
					fmt.Fprintf(out, "  %s %d", ui.IconFlame, it.Reactions)
				}
				fmt.Fprintf(out, "  %s\n", ui.Muted.Render(it.ID))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Max items to show (0 for default)")
	cmd.Flags().StringVar(&cheer, "cheer", "", "React to a feed item by id")

	return cmd
}
