// Package terminal renders the machine screen in a text terminal and
// translates keyboard input into keypad events.
package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/daemon"
	"golang.org/x/term"
)

const (
	frameRate       = 60
	keyReleaseDelay = 100 * time.Millisecond
	logPaneRows     = 8

	// smallest usable frame: bordered low resolution screen, two status
	// lines and one log line
	minColumns = chip8.LowResWidth + 2
	minRows    = chip8.LowResHeight/2 + 5

	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// Terminal drives the interactive UI: a render loop that draws the machine
// screen at the display refresh rate and a reader that feeds raw keyboard
// bytes into the machine keypad.
type Terminal struct {
	daemon *daemon.Daemon
	output io.Writer

	fd           int
	oldTermState *term.State
	nonblockSet  bool

	keyMu       sync.Mutex
	keyReleases map[uint8]*time.Timer

	logLines []string

	stopCh     chan struct{}
	stopOnce   sync.Once
	renderDone chan struct{}
	inputDone  chan struct{}

	quitCh   chan struct{}
	quitOnce sync.Once
}

// New creates a terminal UI for the given machine.
func New(d *daemon.Daemon) *Terminal {
	return &Terminal{
		daemon:      d,
		output:      os.Stdout,
		keyReleases: map[uint8]*time.Timer{},
		stopCh:      make(chan struct{}),
		renderDone:  make(chan struct{}),
		inputDone:   make(chan struct{}),
		quitCh:      make(chan struct{}),
	}
}

// Start puts the terminal into raw mode and starts the input reader and the
// render loop. Stop restores the terminal and must only be called after a
// successful Start.
func (t *Terminal) Start() error {
	t.fd = int(os.Stdin.Fd())

	columns, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return fmt.Errorf("querying terminal size: %w", err)
	}
	if columns < minColumns || rows < minRows {
		return fmt.Errorf("terminal size %dx%d is too small, the screen needs at least %dx%d",
			columns, rows, minColumns, minRows)
	}

	// Raw mode disables OS-level echo and line buffering, keypad input
	// arrives byte by byte.
	oldState, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("setting terminal raw mode: %w", err)
	}
	t.oldTermState = oldState

	if err := t.startInput(); err != nil {
		_ = term.Restore(t.fd, t.oldTermState)
		t.oldTermState = nil
		return err
	}

	fmt.Fprint(t.output, enterAltScreen+hideCursor+clearScreen)

	go t.renderLoop()
	return nil
}

// Stop terminates the input reader and the render loop and restores the
// terminal state.
func (t *Terminal) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopCh)
	})
	<-t.renderDone
	t.stopInput()
	t.cancelKeyReleases()

	if t.oldTermState != nil {
		fmt.Fprint(t.output, showCursor+leaveAltScreen)
		_ = term.Restore(t.fd, t.oldTermState)
		t.oldTermState = nil
	}
}

// Quit returns a channel that is closed once the user requested to leave
// the emulator.
func (t *Terminal) Quit() <-chan struct{} {
	return t.quitCh
}

func (t *Terminal) renderLoop() {
	defer close(t.renderDone)

	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.C:
			t.renderFrame()
		}
	}
}

func (t *Terminal) renderFrame() {
	t.drainDiagnostics()

	fb := t.daemon.ScreenFramebuffer()
	width, height := t.daemon.ScreenMode().Resolution()
	snap := t.daemon.Snapshot()
	instruction, _ := t.daemon.Disassemble(snap.PC)
	status := statusLines(snap, t.daemon.ClockHz(), instruction)

	fmt.Fprint(t.output, buildFrame(&fb, width, height, status, t.logLines))
}

// drainDiagnostics moves machine diagnostics into the log pane,
// keeping the most recent lines.
func (t *Terminal) drainDiagnostics() {
	for _, rec := range t.daemon.Sink().Drain() {
		line := fmt.Sprintf("%s %-5s %s", rec.Time.Format("15:04:05"), rec.Level, rec.Message)
		t.logLines = append(t.logLines, line)
	}
	if len(t.logLines) > logPaneRows {
		t.logLines = t.logLines[len(t.logLines)-logPaneRows:]
	}
}

func (t *Terminal) handleKey(b byte) {
	switch b {
	case keyCtrlC, keyEscape:
		t.quitOnce.Do(func() {
			close(t.quitCh)
		})
		return
	case 'p', 'P':
		t.togglePause()
		return
	}

	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	key, ok := keypadKey(b)
	if !ok {
		return
	}
	t.pressKey(key)
}

func (t *Terminal) togglePause() {
	if t.daemon.RunState() == daemon.Running {
		t.daemon.SetPaused()
	} else {
		t.daemon.SetRunning()
	}
}

// pressKey forwards a keypad key press to the machine. Terminals only
// report presses, the matching release is synthesized after a short delay
// and pushed back while the key keeps repeating.
func (t *Terminal) pressKey(key uint8) {
	t.daemon.SetKeyDown(key)

	t.keyMu.Lock()
	defer t.keyMu.Unlock()

	if timer, ok := t.keyReleases[key]; ok {
		timer.Stop()
	}
	t.keyReleases[key] = time.AfterFunc(keyReleaseDelay, func() {
		t.daemon.SetKeyUp(key)
	})
}

func (t *Terminal) cancelKeyReleases() {
	t.keyMu.Lock()
	defer t.keyMu.Unlock()

	for key, timer := range t.keyReleases {
		timer.Stop()
		delete(t.keyReleases, key)
	}
}
