package pkg

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"

	"github.com/qnkhuat/clickchess/pkg/gui"
	"github.com/qnkhuat/clickchess/pkg/rules"
)

const (
	pageBoard = "board"
	pageQuit  = "quit"

	clockRefresh = time.Second
)

// SoundPlayer gives feedback for a move.
type SoundPlayer interface {
	Play(s Sound)
}

// Bell rings the terminal bell for captures and checks. Quiet moves make no
// noise.
type Bell struct {
	mu     sync.Mutex
	screen tcell.Screen
}

func (b *Bell) setScreen(s tcell.Screen) {
	b.mu.Lock()
	b.screen = s
	b.mu.Unlock()
}

func (b *Bell) Play(s Sound) {
	if s != SoundCapture && s != SoundCheck {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if beeper, ok := b.screen.(interface{ Beep() error }); ok {
		beeper.Beep()
	}
}

type mute struct{}

func (mute) Play(Sound) {}

type ClientOptions struct {
	Theme  gui.Theme
	Layout gui.Layout
	Sound  bool
	// Screen replaces the terminal, e.g. with an SSH session or a simulation.
	Screen tcell.Screen
	Logger *logrus.Entry
}

// Client shows a Match in the terminal and turns mouse clicks into moves.
type Client struct {
	App   *tview.Application
	Pages *tview.Pages
	Board *tview.Box
	Match *Match

	theme    gui.Theme
	layout   gui.Layout
	bell     *Bell
	sound    SoundPlayer
	quitting bool
	log      *logrus.Entry
	done     chan struct{}
	once     sync.Once
}

func NewClient(board rules.Oracle, mo Options, co ClientOptions) *Client {
	if co.Logger == nil {
		co.Logger = logrus.WithField("component", "client")
	}
	if co.Layout.SquareWidth == 0 || co.Layout.SquareHeight == 0 {
		co.Layout = gui.DefaultLayout
	}
	if co.Theme.Name == "" {
		co.Theme = gui.ThemeBasic
	}

	app := tview.NewApplication()
	if co.Screen != nil {
		app.SetScreen(co.Screen)
	}

	cl := &Client{
		App:    app,
		Pages:  tview.NewPages(),
		Board:  tview.NewBox(),
		theme:  co.Theme,
		layout: co.Layout,
		bell:   &Bell{screen: co.Screen},
		sound:  mute{},
		log:    co.Logger,
		done:   make(chan struct{}),
	}
	if co.Sound {
		cl.sound = cl.bell
	}

	onEvent := mo.OnEvent
	mo.OnEvent = func(e Event) {
		cl.handleEvent(e)
		if onEvent != nil {
			onEvent(e)
		}
	}
	cl.Match = NewMatch(board, mo)

	cl.Board.SetDrawFunc(cl.draw)
	cl.Board.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action == tview.MouseLeftClick {
			x, y := event.Position()
			cl.click(x, y)
		}
		// Let the box consume the event so the app redraws
		return action, event
	})

	quit := tview.NewModal().
		SetText(string(ActionQuitPrompt)).
		AddButtons(Labels(ActionQuitYes, ActionQuitNo)).
		SetDoneFunc(func(_ int, label string) {
			if label == string(ActionQuitYes) {
				cl.Stop()
				return
			}
			cl.hideQuit()
		})

	cl.Pages.
		AddPage(pageBoard, cl.Board, true, true).
		AddPage(pageQuit, quit, true, false)

	app.SetRoot(cl.Pages, true).
		EnableMouse(true).
		SetInputCapture(cl.handleKey)

	return cl
}

func (cl *Client) handleEvent(e Event) {
	switch ev := e.(type) {
	case EventMove:
		cl.sound.Play(ev.Sound)
	case EventError:
		cl.log.WithError(ev.Err).Warn("match reported an error")
	}
}

// draw renders the match inside the board box.
func (cl *Client) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	cl.bell.setScreen(screen)
	cl.layout = cl.layout.At(x+1, y)
	gui.Render(screen, cl.layout, cl.theme, cl.Match.View())
	gui.DrawMsgLabel(screen, cl.layout.At(x+1, y+2), string(ActionHelp), cl.theme)
	return x, y, width, height
}

// click maps a screen cell to a square; cells off the board deselect.
// The board is inert while the quit prompt is open.
func (cl *Client) click(x, y int) {
	if cl.quitting {
		return
	}
	sq, ok := cl.layout.SquareAt(x, y)
	if !ok {
		sq = chess.NoSquare
	}
	cl.Match.HandleClick(sq)
}

func (cl *Client) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if cl.quitting {
		return event
	}
	switch event.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		cl.showQuit()
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			cl.showQuit()
			return nil
		case 'r':
			cl.Match.Reset()
			return nil
		}
	}
	return event
}

func (cl *Client) showQuit() {
	cl.quitting = true
	cl.Pages.ShowPage(pageQuit)
}

func (cl *Client) hideQuit() {
	cl.quitting = false
	cl.Pages.HidePage(pageQuit)
}

// forward hands computer moves to the event loop.
func (cl *Client) forward() {
	for {
		select {
		case r := <-cl.Match.Results():
			cl.App.QueueUpdateDraw(func() {
				cl.Match.CompleteAutomatedMove(r)
			})
		case <-cl.done:
			return
		}
	}
}

// tick redraws the clocks.
func (cl *Client) tick() {
	t := time.NewTicker(clockRefresh)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			cl.App.QueueUpdateDraw(func() {})
		case <-cl.done:
			return
		}
	}
}

// Run blocks until the player quits.
func (cl *Client) Run() error {
	cl.Match.Start()
	go cl.forward()
	go cl.tick()
	defer cl.close()

	cl.log.Info("client started")
	return cl.App.Run()
}

// Stop ends Run.
func (cl *Client) Stop() {
	cl.App.Stop()
}

func (cl *Client) close() {
	cl.once.Do(func() {
		close(cl.done)
		cl.Match.Close()
		cl.log.Info("client stopped")
	})
}
