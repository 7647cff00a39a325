package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/ui"
)

func newReceiptsCmd() *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "receipts [id]",
		Short: "List receipts, or print one in full",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, owner, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := svc.Store().ListReceipts(ctx, owner)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				for i := range list {
					if list[i].ID == args[0] {
						printReceipt(out, list[i])
						return nil
					}
				}
				return errors.New("receipt not found: " + args[0])
			}

			fmt.Fprintln(out, ui.Heading(ui.IconReceipt, "Receipts"))
			if len(list) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No receipts yet. Publish a work period first."))
				return nil
			}
			for i := range list {
				r := list[i]
				if full {
					printReceipt(out, r)
					fmt.Fprintln(out, "")
					continue
				}
				fmt.Fprintf(out, "%s  %d session(s) · %s  %s\n",
					ui.Muted.Render(r.CreatedAt.Local().Format("01-02 15:04")),
					len(r.Sessions),
					ui.Lime.Render(r.TotalFormatted),
					ui.Muted.Render(r.ID))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Print every receipt in full")

	return cmd
}
