// Package cli holds the chessterm commands.
package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qnkhuat/clickchess/pkg/config"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "chessterm",
		Short: "Play chess in the terminal with your mouse",
		Long: heredoc.Doc(`
			chessterm draws a chess board in the terminal. Click a piece and
			then the square it should go to. By default you play white against
			a computer that grabs whatever material it can.

			Running chessterm without a command starts a game.
		`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}
		},
		RunE: runPlay,
	}

	// global flags
	root.PersistentFlags().StringP("config", "c", "", "Path to the config file")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	addPlayFlags(root)

	root.AddCommand(Play())
	root.AddCommand(SelfPlay())
	root.AddCommand(Serve())

	return root
}

// loadConfig reads the file named by --config, or the default one.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// logLevel is the configured level unless --trace asks for more.
func logLevel(cmd *cobra.Command, cfg config.Config) logrus.Level {
	if f := cmd.Flag("trace"); f != nil && f.Changed {
		return logrus.TraceLevel
	}
	level, err := cfg.Level()
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
