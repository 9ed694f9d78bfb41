package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/notnil/chess"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qnkhuat/clickchess/pkg"
	"github.com/qnkhuat/clickchess/pkg/ai"
	"github.com/qnkhuat/clickchess/pkg/rules"
)

const SPIN = 14

type gameResult struct {
	Outcome  rules.Outcome
	Finished bool
	Plies    int
	Final    string
}

func (r gameResult) String() string {
	if !r.Finished {
		return fmt.Sprintf("* unfinished after %d plies", r.Plies)
	}
	return fmt.Sprintf("%s %s in %d plies", r.Outcome.Result(), r.Outcome.Termination, r.Plies)
}

type summary struct {
	White, Black, Draws, Unfinished int
}

func (s *summary) add(r gameResult) {
	switch {
	case !r.Finished:
		s.Unfinished++
	case r.Outcome.Winner == chess.White:
		s.White++
	case r.Outcome.Winner == chess.Black:
		s.Black++
	default:
		s.Draws++
	}
}

// selfPlay plays one computer against itself through a Match, the same
// way a game on screen runs.
func selfPlay(sel pkg.MoveSelector, maxPlies int, log *logrus.Entry) gameResult {
	white, black, _ := pkg.Players("both")
	m := pkg.NewMatch(rules.NewGame(), pkg.Options{
		White:    white,
		Black:    black,
		Selector: sel,
		Logger:   log,
	})
	defer m.Close()

	m.Start()
	for m.State() == pkg.StateAutomatedTurnPending && len(m.Board().History()) < maxPlies {
		if !m.CompleteAutomatedMove(<-m.Results()) {
			break
		}
	}

	r := gameResult{Plies: len(m.Board().History()), Final: m.Board().FEN()}
	r.Outcome, r.Finished = m.Outcome()
	return r
}

func SelfPlay() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selfplay",
		Short: "Let the computer play itself without a board",
		Long: heredoc.Doc(`
			selfplay runs computer against computer games headlessly and
			prints how each one ended. Useful for checking that the rules
			and the computer player hold up over many games.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			games, _ := cmd.Flags().GetInt("games")
			maxPlies, _ := cmd.Flags().GetInt("max-plies")
			if cmd.Flags().Changed("seed") {
				cfg.Seed, _ = cmd.Flags().GetInt64("seed")
			}
			if games < 1 || maxPlies < 1 {
				return fmt.Errorf("games and max-plies must be positive")
			}
			return runSelfPlay(cmd.OutOrStdout(), cmd.ErrOrStderr(), games, maxPlies, seedOf(cfg))
		},
	}

	cmd.Flags().IntP("games", "n", 10, "Number of games to play")
	cmd.Flags().Int("max-plies", 400, "Stop a game after this many half moves")
	cmd.Flags().Int64("seed", 0, "Seed for the computer's choices")
	return cmd
}

func runSelfPlay(out, errOut io.Writer, games, maxPlies int, seed int64) error {
	sel := ai.NewSeededSelector(seed)
	log := logrus.WithField("component", "selfplay")

	s := spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond, spinner.WithWriter(errOut))
	var sum summary
	for i := 1; i <= games; i++ {
		s.Suffix = fmt.Sprintf(" playing game %d/%d", i, games)
		s.Start()
		r := selfPlay(sel, maxPlies, log)
		s.Stop()

		sum.add(r)
		log.WithFields(logrus.Fields{"game": i, "fen": r.Final}).Debug("game finished")
		fmt.Fprintf(out, "game %-3d %s\n", i, r)
	}

	fmt.Fprintln(out)
	color.New(color.FgGreen).Fprintf(out, "white %d  ", sum.White)
	color.New(color.FgRed).Fprintf(out, "black %d  ", sum.Black)
	color.New(color.FgYellow).Fprintf(out, "draws %d  ", sum.Draws)
	color.New(color.FgHiBlack).Fprintf(out, "unfinished %d\n", sum.Unfinished)
	return nil
}
