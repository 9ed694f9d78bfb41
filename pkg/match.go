package pkg

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/notnil/chess"
	"github.com/sirupsen/logrus"

	"github.com/qnkhuat/clickchess/pkg/ai"
	"github.com/qnkhuat/clickchess/pkg/gui"
	"github.com/qnkhuat/clickchess/pkg/rules"
)

const (
	DefaultThinkTime = 500 * time.Millisecond
	ResultQueueSize  = 4
)

type State int

const (
	StateIdle State = iota
	StatePieceSelected
	StateAutomatedTurnPending
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePieceSelected:
		return "PieceSelected"
	case StateAutomatedTurnPending:
		return "AutomatedTurnPending"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// MoveSelector picks a move for the side to move. ai.Selector is one.
type MoveSelector interface {
	SelectMove(o rules.Oracle) (rules.Move, error)
}

type Options struct {
	White     Player
	Black     Player
	ThinkTime time.Duration
	Selector  MoveSelector
	// OnEvent is called on the goroutine that changed the match.
	OnEvent func(Event)
	Logger  *logrus.Entry
}

// AutomatedMove is the result of a computer turn. Generation identifies the
// turn it was computed for.
type AutomatedMove struct {
	Generation uint64
	Move       rules.Move
	Err        error
}

// Match is the click driven state machine around a board. A Match is owned
// by one goroutine; the computer player works on a copy of the board and
// hands its move back through Results.
type Match struct {
	board    rules.Oracle
	white    Player
	black    Player
	think    time.Duration
	selector MoveSelector
	onEvent  func(Event)
	log      *logrus.Entry
	clock    *Clock

	state        State
	selected     chess.Square
	destinations []rules.Move
	sound        Sound
	status       string
	started      bool

	generation uint64
	results    chan AutomatedMove
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

func NewMatch(board rules.Oracle, opts Options) *Match {
	if opts.Selector == nil {
		opts.Selector = ai.NewSeededSelector(time.Now().UnixNano())
	}
	if opts.Logger == nil {
		opts.Logger = logrus.WithField("component", "match")
	}
	if opts.White.Color != chess.White || opts.Black.Color != chess.Black {
		opts.White.Color, opts.Black.Color = chess.White, chess.Black
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Match{
		board:    board,
		white:    opts.White,
		black:    opts.Black,
		think:    opts.ThinkTime,
		selector: opts.Selector,
		onEvent:  opts.OnEvent,
		log:      opts.Logger,
		clock:    NewClock(),
		state:    StateIdle,
		selected: chess.NoSquare,
		results:  make(chan AutomatedMove, ResultQueueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins the game: it starts the clock and, if the computer has the
// move, dispatches its turn.
func (m *Match) Start() {
	if m.started {
		return
	}
	m.started = true
	m.clock.Switch(m.board.Turn())
	m.advance()
}

// Close abandons any computer turn in progress and waits for it to stop.
func (m *Match) Close() {
	m.generation++
	m.cancel()
	m.wg.Wait()
	m.clock.Pause()
}

// Results delivers finished computer turns. Pass each to CompleteAutomatedMove
// on the goroutine that owns the match.
func (m *Match) Results() <-chan AutomatedMove {
	return m.results
}

// HandleClick feeds a click on sq to the state machine. chess.NoSquare is a
// click off the board.
func (m *Match) HandleClick(sq chess.Square) {
	switch m.state {
	case StateAutomatedTurnPending, StateGameOver:
		return
	case StateIdle:
		m.selectSquare(sq)
	case StatePieceSelected:
		if sq == chess.NoSquare {
			m.clearSelection()
			m.state = StateIdle
			return
		}
		if mv, ok := m.moveTo(sq); ok {
			m.applyMove(mv, Human)
			return
		}
		if !m.selectSquare(sq) {
			m.clearSelection()
			m.state = StateIdle
		}
	}
}

// selectSquare selects sq if it holds a piece of the side to move and that
// side is played by a person.
func (m *Match) selectSquare(sq chess.Square) bool {
	if sq == chess.NoSquare || m.player(m.board.Turn()).Kind != Human {
		return false
	}
	p := m.board.PieceAt(sq)
	if p == chess.NoPiece || p.Color() != m.board.Turn() {
		return false
	}
	var dests []rules.Move
	for _, mv := range m.board.LegalMoves() {
		if mv.From == sq {
			dests = append(dests, mv)
		}
	}
	m.selected = sq
	m.destinations = dests
	m.state = StatePieceSelected
	return true
}

// moveTo returns the legal move from the selected square to sq. Pawns
// reaching the last rank become queens.
func (m *Match) moveTo(sq chess.Square) (rules.Move, bool) {
	p := m.board.PieceAt(m.selected)
	if p.Type() == chess.Pawn && sq.Rank() == rules.LastRank(p.Color()) {
		mv := rules.Move{From: m.selected, To: sq, Promo: chess.Queen}
		if m.board.IsLegal(mv) {
			return mv, true
		}
	}
	mv := rules.Move{From: m.selected, To: sq}
	if m.board.IsLegal(mv) {
		return mv, true
	}
	return rules.Move{}, false
}

func (m *Match) clearSelection() {
	m.selected = chess.NoSquare
	m.destinations = nil
}

func (m *Match) applyMove(mv rules.Move, by PlayerKind) {
	color := m.board.Turn()
	san := m.board.SAN(mv)
	capture := m.board.IsCapture(mv)
	if err := m.board.Apply(mv); err != nil {
		m.fail(fmt.Errorf("apply %s: %w", mv, err))
		return
	}
	m.sound = classify(m.board.InCheck(), capture)
	m.clearSelection()
	m.clock.Switch(m.board.Turn())
	m.status = fmt.Sprintf("%s played %s", rules.ColorName(color), san)

	m.log.WithFields(logrus.Fields{
		"move":  mv.String(),
		"san":   san,
		"by":    by.String(),
		"sound": m.sound.String(),
	}).Debug("move applied")
	m.emit(EventMove{Move: mv, SAN: san, Color: color, By: by, Sound: m.sound})
	m.advance()
}

// advance picks the state that follows a change of position.
func (m *Match) advance() {
	if o, ok := m.board.Outcome(); ok {
		m.state = StateGameOver
		m.clock.Pause()
		m.status = o.Result()
		m.log.WithField("outcome", o.String()).Info("game over")
		m.emit(EventGameOver{Outcome: o})
		return
	}
	if m.player(m.board.Turn()).Kind == Computer {
		m.dispatch()
		return
	}
	m.state = StateIdle
}

// dispatch runs the computer's turn on a copy of the board.
func (m *Match) dispatch() {
	m.state = StateAutomatedTurnPending
	m.generation++
	gen := m.generation
	board := m.board.Clone()
	think := m.think
	selector := m.selector
	color := board.Turn()

	m.emit(EventThinking{Color: color, Generation: gen})

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		select {
		case <-m.ctx.Done():
			return
		case <-time.After(think):
		}
		r := AutomatedMove{Generation: gen}
		r.Move, r.Err = selector.SelectMove(board)
		select {
		case m.results <- r:
		case <-m.ctx.Done():
		}
	}()
}

// CompleteAutomatedMove applies a computer move received from Results. It
// reports false when the result belongs to a turn that is no longer
// pending, in which case nothing changes.
func (m *Match) CompleteAutomatedMove(r AutomatedMove) bool {
	if m.state != StateAutomatedTurnPending || r.Generation != m.generation {
		m.log.WithFields(logrus.Fields{
			"generation": r.Generation,
			"current":    m.generation,
			"state":      m.state.String(),
		}).Debug("discarding stale computer move")
		return false
	}
	if r.Err != nil {
		m.fail(fmt.Errorf("computer move: %w", r.Err))
		return true
	}
	m.applyMove(r.Move, Computer)
	return true
}

// fail reports an error. The match is left Idle, or GameOver if the game
// ended; if the computer has the move it stays stuck, since clicks only
// select pieces of a human side.
func (m *Match) fail(err error) {
	m.log.WithError(err).Error("match error")
	m.status = err.Error()
	m.clearSelection()
	if m.board.IsGameOver() {
		m.state = StateGameOver
	} else {
		m.state = StateIdle
	}
	m.emit(EventError{Err: err})
}

// Reset starts a new game. It is only allowed once the game is over.
func (m *Match) Reset() bool {
	if m.state != StateGameOver {
		return false
	}
	m.generation++
	m.board.Reset()
	m.clearSelection()
	m.sound = SoundNone
	m.status = ""
	m.clock.Reset()
	m.clock.Switch(m.board.Turn())
	m.log.Info("new game")
	m.emit(EventReset{})
	m.advance()
	return true
}

func (m *Match) emit(e Event) {
	if m.onEvent != nil {
		m.onEvent(e)
	}
}

func (m *Match) player(c chess.Color) Player {
	if c == chess.Black {
		return m.black
	}
	return m.white
}

func (m *Match) State() State {
	return m.state
}

// Selected is the selected square, or chess.NoSquare.
func (m *Match) Selected() chess.Square {
	return m.selected
}

// Destinations are the legal moves from the selected square.
func (m *Match) Destinations() []rules.Move {
	return m.destinations
}

func (m *Match) Outcome() (rules.Outcome, bool) {
	return m.board.Outcome()
}

// LastSound is the feedback for the most recent move.
func (m *Match) LastSound() Sound {
	return m.sound
}

func (m *Match) Turn() chess.Color {
	return m.board.Turn()
}

func (m *Match) Board() rules.Oracle {
	return m.board
}

func (m *Match) Clock() *Clock {
	return m.clock
}

// View copies out what the renderer draws.
func (m *Match) View() gui.View {
	v := gui.View{
		Pieces:     m.board.SquareMap(),
		Turn:       m.board.Turn(),
		Selected:   m.selected,
		Check:      m.board.InCheck(),
		Thinking:   m.state == StateAutomatedTurnPending,
		Moves:      m.board.History(),
		Material:   ai.Evaluate(m.board),
		Status:     m.status,
		WhiteName:  m.white.String(),
		BlackName:  m.black.String(),
		WhiteClock: m.clock.Format(chess.White),
		BlackClock: m.clock.Format(chess.Black),
	}
	for _, mv := range m.destinations {
		v.Destinations = append(v.Destinations, mv.To)
	}
	if last, ok := m.board.LastMove(); ok {
		v.LastMove = []chess.Square{last.From, last.To}
	}
	if o, ok := m.board.Outcome(); ok {
		v.Outcome = o.String()
	}
	return v
}
