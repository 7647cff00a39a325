package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/engine"
	"tally/internal/ui"
)

func newLogCmd() *cobra.Command {
	var minutes int
	var category string
	var insight string
	var note string

	cmd := &cobra.Command{
		Use:   "log <subject>",
		Short: "Record a session by hand onto the work period",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("subject is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, owner, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sess, err := svc.LogSession(ctx, owner, engine.LogSessionInput{
				Subject:    args[0],
				Minutes:    minutes,
				CategoryID: category,
				KeyInsight: insight,
				DailyNote:  note,
			})
			if err != nil {
				return err
			}

			label := sess.Subject
			if sess.CategoryEmoji != nil {
				label = *sess.CategoryEmoji + " " + label
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged %s — %s\n",
				ui.IconTimer, ui.Key.Render(label), engine.FormatDuration(sess.Minutes))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("On the work period. Publish with `tally publish`."))
			return nil
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Duration in minutes (required, >= 1)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category id (study|reading|exercise|work|art|other)")
	cmd.Flags().StringVar(&insight, "insight", "", "Key insight from the session")
	cmd.Flags().StringVar(&note, "note", "", "Daily note")
	_ = cmd.MarkFlagRequired("minutes")

	return cmd
}
