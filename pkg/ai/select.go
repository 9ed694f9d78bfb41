package ai

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/notnil/chess"

	"github.com/qnkhuat/clickchess/pkg/rules"
)

var ErrNoLegalMoves = errors.New("ai: no legal moves")

// Selector picks the move that leaves the best material balance for the
// side to move, looking one ply ahead. Ties are broken by shuffling the
// candidates first, so equal moves are chosen at random.
type Selector struct {
	rnd *rand.Rand
	mu  sync.Mutex
}

// NewSelector returns a Selector drawing randomness from src.
func NewSelector(src rand.Source) *Selector {
	return &Selector{rnd: rand.New(src)}
}

// NewSeededSelector is NewSelector with a math/rand source seeded by seed.
func NewSeededSelector(seed int64) *Selector {
	return NewSelector(rand.NewSource(seed))
}

// SelectMove chooses a move for the side to move on o. The board is used
// for look-ahead and is restored before returning.
func (s *Selector) SelectMove(o rules.Oracle) (rules.Move, error) {
	moves := o.LegalMoves()
	if len(moves) == 0 {
		return rules.Move{}, ErrNoLegalMoves
	}
	s.shuffle(moves)

	maximizing := o.Turn() == chess.White
	best := math.MinInt
	if !maximizing {
		best = math.MaxInt
	}

	var choice rules.Move
	found := false
	for _, m := range moves {
		if err := o.Apply(m); err != nil {
			return rules.Move{}, fmt.Errorf("ai: look ahead %s: %w", m, err)
		}
		score := Evaluate(o)
		if err := o.UndoLast(); err != nil {
			return rules.Move{}, fmt.Errorf("ai: undo %s: %w", m, err)
		}

		if (maximizing && score > best) || (!maximizing && score < best) {
			best = score
			choice = m
			found = true
		}
	}

	if !found {
		return moves[s.intn(len(moves))], nil
	}
	return choice, nil
}

func (s *Selector) shuffle(moves []rules.Move) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rnd.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })
}

func (s *Selector) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rnd.Intn(n)
}
