package cli

import (
	"errors"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/qnkhuat/clickchess/pkg"
	"github.com/qnkhuat/clickchess/pkg/ai"
	"github.com/qnkhuat/clickchess/pkg/config"
)

var ErrNotTerminal = errors.New("chessterm needs an interactive terminal")

func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start a game",
		Long: heredoc.Doc(`
			play opens the board. Click one of your pieces to see where it can
			go, then click the destination. Pawns promote to queens.

			Keys: r starts a new game once the current one is over, q or Esc
			quits.
		`),
		Example: heredoc.Doc(`
			chessterm play --computer white
			chessterm play --computer none --fen "4k3/P7/8/8/8/8/8/4K3 w - - 0 1"
		`),
		Args: cobra.NoArgs,
		RunE: runPlay,
	}
	addPlayFlags(cmd)
	return cmd
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().String("computer", "", "Side the computer plays: white, black, both or none")
	cmd.Flags().Int64("seed", 0, "Seed for the computer's choices")
	cmd.Flags().Duration("think", 0, "How long the computer pretends to think")
	cmd.Flags().String("fen", "", "Start from this position")
}

// applyPlayFlags lets flags override the config file.
func applyPlayFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("computer") {
		cfg.Computer, _ = flags.GetString("computer")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("think") {
		cfg.ThinkTime, _ = flags.GetDuration("think")
	}
	return cfg.Validate()
}

func seedOf(cfg config.Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyPlayFlags(cmd, &cfg); err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	logFile, err := pkg.InitLog(cfg.LogFile, logLevel(cmd, cfg))
	if err != nil {
		return err
	}
	defer logFile.Close()

	theme, err := cfg.BoardTheme()
	if err != nil {
		return err
	}
	fen, _ := cmd.Flags().GetString("fen")
	board, err := pkg.NewBoard(fen)
	if err != nil {
		return err
	}
	white, black, err := pkg.Players(cfg.Computer)
	if err != nil {
		return err
	}

	cl := pkg.NewClient(board, pkg.Options{
		White:     white,
		Black:     black,
		ThinkTime: cfg.ThinkTime,
		Selector:  ai.NewSeededSelector(seedOf(cfg)),
	}, pkg.ClientOptions{
		Theme: theme,
		Sound: cfg.Sound,
	})
	return cl.Run()
}
