package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/engine"
	"tally/internal/ui"
)

func newProfileCmd() *cobra.Command {
	var nickname string
	var jobGoal string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the local profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, owner, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var nickPtr, goalPtr *string
			if cmd.Flags().Changed("nickname") {
				nickPtr = &nickname
			}
			if cmd.Flags().Changed("job-goal") {
				goalPtr = &jobGoal
			}
			if nickPtr != nil || goalPtr != nil {
				if err := svc.Store().UpdateProfile(ctx, owner, nickPtr, goalPtr); err != nil {
					return err
				}
			}

			p, err := svc.Store().GetProfile(ctx, owner)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconNote, "Profile"))
			if p == nil {
				fmt.Fprintln(out, ui.Muted.Render("No profile yet. Set one with --nickname / --job-goal."))
				return nil
			}

			nick := ""
			if p.Nickname != nil {
				nick = *p.Nickname
			}
			goal := "(unset)"
			if p.JobGoal != nil {
				goal = *p.JobGoal
			}
			shown := nick
			if shown == "" {
				shown = "(unset)"
			}
			fmt.Fprintln(out, ui.LabelValue("Nickname", shown))
			fmt.Fprintln(out, ui.LabelValue("Feed name", engine.MaskDisplayName(nick)))
			fmt.Fprintln(out, ui.LabelValue("Job goal", goal))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintln(out, ui.LabelValue("Experience", p.Experience))
			fmt.Fprintln(out, ui.LabelValue("Joined", p.JoinDate.Local().Format("2006-01-02")))
			return nil
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "", "Display name (masked on the feed)")
	cmd.Flags().StringVar(&jobGoal, "job-goal", "", "What you're working toward")

	return cmd
}
