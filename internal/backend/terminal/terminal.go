// Package terminal renders the menu grid in a terminal using tcell.
// One grid cell maps to one terminal cell; a side pane shows recent log
// output captured from slog.
package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"soundtest/internal/backend"
	"soundtest/internal/backend/terminal/render"
	"soundtest/internal/console"
	"soundtest/internal/input"
	"soundtest/internal/pad"
	"soundtest/internal/timing"
)

const (
	minTermWidth  = 40
	minTermHeight = console.Height + 2

	// Terminals deliver key repeats but no key-up events. A key counts
	// as held while repeats keep arriving within this window.
	keyTimeout = 100 * time.Millisecond
)

// dpadButtons are mutually exclusive: a new direction clears the others.
const dpadButtons = pad.Up | pad.Down | pad.Left | pad.Right

// Backend implements backend.Backend on a tcell screen.
type Backend struct {
	grid *console.Grid
	cfg  backend.Config

	screen    tcell.Screen
	logBuffer *render.LogBuffer
	logLevel  slog.Level
	limiter   timing.Limiter

	// keyStates holds the last time each button's key was seen.
	keyStates map[pad.Button]time.Time

	quit atomic.Bool
}

func New(grid *console.Grid, cfg backend.Config) *Backend {
	return &Backend{
		grid:      grid,
		cfg:       cfg,
		logLevel:  slog.LevelInfo,
		keyStates: make(map[pad.Button]time.Time),
	}
}

// Run initializes the terminal and drives the frame loop until the
// callback stops it or the user quits.
func (t *Backend) Run(frame backend.FrameFunc) error {
	if err := t.init(); err != nil {
		return err
	}

	for {
		in := t.pollInput()
		if err := frame(in); err != nil {
			if err == backend.ErrStop {
				return nil
			}
			return err
		}

		t.render()
		t.screen.Show()
		t.grid.ClearDirty()

		t.limiter.WaitForNextFrame()
	}
}

func (t *Backend) init() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	t.screen = screen

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	t.limiter = timing.NewTickerLimiter()

	// Route slog into the side pane; the terminal itself belongs to
	// tcell now.
	t.logBuffer = render.NewLogBuffer(100)
	handler := render.NewLogBufferHandler(t.logBuffer, slog.LevelDebug)
	slog.SetDefault(slog.New(handler))
	slog.Info("Terminal backend initialized")

	go t.handleSignals()

	return nil
}

// Cleanup restores the terminal.
func (t *Backend) Cleanup() error {
	if lim, ok := t.limiter.(*timing.TickerLimiter); ok {
		lim.Stop()
	}
	if t.screen != nil {
		t.screen.Fini()
	}
	return nil
}

func (t *Backend) handleSignals() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	<-signals
	t.quit.Store(true)
}

// pollInput drains pending tcell events and derives the buttons that
// are currently down.
func (t *Backend) pollInput() backend.Input {
	now := time.Now()

	for t.screen.HasPendingEvent() {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	var down pad.Button
	for b, lastSeen := range t.keyStates {
		if now.Sub(lastSeen) < keyTimeout {
			down |= b
		} else {
			delete(t.keyStates, b)
		}
	}

	return backend.Input{Buttons: down, Quit: t.quit.Load()}
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.quit.Store(true)
		return
	case tcell.KeyRune:
		r := ev.Rune()
		switch r {
		case 'q':
			t.quit.Store(true)
		case '+', '=':
			t.changeLogLevel(1)
		case '-', '_':
			t.changeLogLevel(-1)
		default:
			if b, ok := input.GetDefaultMapping(string(r)); ok {
				t.pressButton(b, now)
			}
		}
		return
	}

	if name, ok := tcellKeyNames[ev.Key()]; ok {
		if b, ok := input.GetDefaultMapping(name); ok {
			t.pressButton(b, now)
		}
	}
}

func (t *Backend) pressButton(b pad.Button, now time.Time) {
	if b&dpadButtons != 0 {
		// Exclusive directions, like a real d-pad.
		for held := range t.keyStates {
			if held&dpadButtons != 0 {
				delete(t.keyStates, held)
			}
		}
	}
	t.keyStates[b] = now
}

// changeLogLevel moves the log pane filter up or down one level.
func (t *Backend) changeLogLevel(direction int) {
	oldLevel := t.logLevel
	switch direction {
	case -1:
		switch t.logLevel {
		case slog.LevelDebug:
			t.logLevel = slog.LevelInfo
		case slog.LevelInfo:
			t.logLevel = slog.LevelWarn
		case slog.LevelWarn:
			t.logLevel = slog.LevelError
		}
	case 1:
		switch t.logLevel {
		case slog.LevelError:
			t.logLevel = slog.LevelWarn
		case slog.LevelWarn:
			t.logLevel = slog.LevelInfo
		case slog.LevelInfo:
			t.logLevel = slog.LevelDebug
		}
	}
	if oldLevel != t.logLevel {
		slog.Info("Log filter changed", "from", oldLevel, "to", t.logLevel)
	}
}

// tcellKeyNames converts tcell keys to the key names used by the
// default bindings.
var tcellKeyNames = map[tcell.Key]string{
	tcell.KeyUp:    "Up",
	tcell.KeyDown:  "Down",
	tcell.KeyLeft:  "Left",
	tcell.KeyRight: "Right",
	tcell.KeyEnter: "Enter",
}

var palStyles = map[console.Palette]tcell.Style{
	console.PalNormal:                  tcell.StyleDefault.Foreground(tcell.ColorWhite),
	console.PalSelected:                tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	console.PalState:                   tcell.StyleDefault.Foreground(tcell.ColorAqua),
	console.PalDisabledChannel:         tcell.StyleDefault.Foreground(tcell.ColorGray),
	console.PalSelectedEnabledChannel:  tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	console.PalSelectedDisabledChannel: tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
}

func (t *Backend) render() {
	termWidth, termHeight := t.screen.Size()
	if termWidth < minTermWidth || termHeight < minTermHeight {
		t.screen.Clear()
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		for i, ch := range msg {
			t.screen.SetContent(i, termHeight/2, ch, nil, style)
		}
		return
	}

	t.screen.Clear()

	dividerX := console.Width + 2
	logsX := dividerX + 1
	logsWidth := termWidth - logsX
	if logsWidth < 0 {
		logsWidth = 0
	}

	t.drawBorders(termWidth, termHeight, dividerX)
	t.drawGrid()
	if t.cfg.ShowLogs {
		t.drawLogs(logsX, 1, logsWidth, termHeight)
	}
}

func (t *Backend) drawBorders(termWidth, termHeight, dividerX int) {
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	for y := 0; y < termHeight; y++ {
		if dividerX < termWidth {
			t.screen.SetContent(dividerX, y, '│', nil, borderStyle)
		}
	}

	title := " " + t.cfg.Title + " "
	for i, ch := range title {
		if i+1 < dividerX {
			t.screen.SetContent(1+i, 0, ch, nil, titleStyle)
		}
	}

	if t.cfg.ShowLogs {
		title = " Logs "
		startX := dividerX + 2
		for i, ch := range title {
			if startX+i < termWidth {
				t.screen.SetContent(startX+i, 0, ch, nil, titleStyle)
			}
		}
	}

	helpText := " Arrows=move/adjust Z/X=select C=stop sfx Enter=pause Q=quit | Logs: +/- filter "
	for i, ch := range helpText {
		if i < termWidth {
			t.screen.SetContent(i, termHeight-1, ch, nil, borderStyle)
		}
	}
}

func (t *Backend) drawGrid() {
	for y := 0; y < console.Height; y++ {
		for x := 0; x < console.Width; x++ {
			ch := t.grid.CharAt(x, y)
			style, ok := palStyles[t.grid.Attr(x, y)]
			if !ok {
				style = tcell.StyleDefault
			}
			t.screen.SetContent(x+1, y+1, rune(ch), nil, style)
		}
	}
}

func (t *Backend) drawLogs(startX, startY, width, termHeight int) {
	if width <= 0 || startY >= termHeight {
		return
	}

	availableHeight := termHeight - startY - 1
	if availableHeight <= 0 {
		return
	}

	allLogs := t.logBuffer.GetRecent(availableHeight * 2)
	logs := make([]render.LogEntry, 0, availableHeight)
	for _, entry := range allLogs {
		if entry.Level >= t.logLevel {
			logs = append(logs, entry)
			if len(logs) >= availableHeight {
				break
			}
		}
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, logEntry := range logs {
		y := startY + i
		if y >= termHeight-1 {
			break
		}

		style := infoStyle
		switch logEntry.Level {
		case slog.LevelDebug:
			style = debugStyle
		case slog.LevelWarn:
			style = warnStyle
		case slog.LevelError:
			style = errStyle
		}

		logText := render.FormatLogEntry(logEntry)
		if len(logText) > width {
			if width > 3 {
				logText = logText[:width-3] + "..."
			} else {
				logText = logText[:width]
			}
		}

		x := startX
		for j, ch := range logText {
			if j >= width {
				break
			}
			t.screen.SetContent(x, y, ch, nil, style)
			x++
		}
	}
}
