package root

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tally/internal/ui"
)

const Version = "0.1.0"

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:           "tally",
	Short:         "Tally — local-first focus-session receipts",
	Long:          "Tally records focused sessions, prints them as immutable receipts, and feeds a level progression.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log the publish pipeline to stderr")

	rootCmd.AddCommand(
		newDeskCmd(),
		newLogCmd(),
		newPublishCmd(),
		newSessionsCmd(),
		newReceiptsCmd(),
		newRmCmd(),
		newStatusCmd(),
		newReportCmd(),
		newProfileCmd(),
		newFeedCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

func logger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
