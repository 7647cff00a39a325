package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tally/internal/commentary"
	"tally/internal/engine"
	"tally/internal/model"
	"tally/internal/ui"
)

func newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the work period as a receipt",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, owner, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			ws := engine.NewWorkshop(svc, owner)
			if err := ws.Restore(ctx); err != nil {
				return err
			}

			notes := collectNotes(ws.Sessions())

			res, err := ws.Publish(ctx)
			if err != nil {
				var empty engine.EmptyPublishError
				if errors.As(err, &empty) {
					return errors.New("nothing on the work period: log or run a session first")
				}
				return err
			}

			out := cmd.OutOrStdout()
			printReceipt(out, res.Receipt)

			profile, _ := svc.Store().GetProfile(ctx, owner)
			cmt := commentary.WithFallback(commentary.NewStatic())
			settle, _ := cmt.Settlement(ctx, notes, commentaryProfile(profile))
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.Muted.Render(settle.GrowthSummary))
			fmt.Fprintln(out, ui.Muted.Render(settle.ManagerNote))

			if res.ProgressErr != nil {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" experience not granted: "+res.ProgressErr.Error()))
			} else if res.LeveledUp {
				fmt.Fprintf(out, "\n%s %s — now level %d\n", ui.IconTrophy, ui.BadgeLevelUp, res.NewLevel)
			}
			return nil
		},
	}

	return cmd
}

func collectNotes(sessions []model.StudySession) []model.ThoughtNote {
	var notes []model.ThoughtNote
	for i := range sessions {
		notes = append(notes, sessions[i].ThoughtNotes...)
	}
	return notes
}

func commentaryProfile(p *model.Profile) *commentary.Profile {
	if p == nil {
		return nil
	}
	cp := &commentary.Profile{}
	if p.Nickname != nil {
		cp.Nickname = *p.Nickname
	}
	if p.JobGoal != nil {
		cp.JobGoal = *p.JobGoal
	}
	return cp
}

// printReceipt renders a receipt the way the desk previews it: one line
// per session, a dashed rule, the total, then the category breakdown.
func printReceipt(out io.Writer, rec model.Receipt) {
	var b strings.Builder
	b.WriteString(ui.Title.Render(ui.IconReceipt+" FLOW RECEIPT") + "\n")
	if !rec.CreatedAt.IsZero() {
		b.WriteString(ui.Muted.Render(rec.CreatedAt.Local().Format("2006-01-02 15:04")) + "\n")
	}
	b.WriteString("\n")
	for i := range rec.Sessions {
		s := rec.Sessions[i]
		label := s.Subject
		if s.CategoryEmoji != nil {
			label = *s.CategoryEmoji + " " + label
		}
		b.WriteString(fmt.Sprintf("%-28s %s\n", label, engine.FormatDuration(s.Minutes)))
		if s.KeyInsight != nil {
			b.WriteString(ui.Muted.Render("  "+ui.IconSparkle+" "+*s.KeyInsight) + "\n")
		}
	}
	b.WriteString(ui.Muted.Render(strings.Repeat("-", 36)) + "\n")
	b.WriteString(ui.Key.Render("TOTAL") + "  " + ui.Lime.Render(rec.TotalFormatted) + "\n")
	if len(rec.CategoryStats) > 0 {
		b.WriteString("\n")
		for _, st := range rec.CategoryStats {
			name := st.CategoryID
			if st.Name != nil {
				name = *st.Name
			}
			if st.Emoji != nil {
				name = *st.Emoji + " " + name
			}
			b.WriteString(fmt.Sprintf("%-24s %d× · %s\n", name, st.Count, st.Formatted))
		}
	}
	fmt.Fprintln(out, ui.ReceiptBody.Render(strings.TrimRight(b.String(), "\n")))
}
