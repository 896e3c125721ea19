// Package daemon runs a CHIP-8 machine on a dedicated execution goroutine.
// All machine mutation travels through a FIFO message queue that is drained
// completely before every instruction; reads go through query accessors
// that lock against the execution goroutine. A paused or key-waiting
// machine blocks on a condition variable and consumes no CPU.
package daemon

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/diagnostics"
)

const (
	// DefaultClockHz is the instruction rate used when the config does
	// not set one.
	DefaultClockHz = 500

	// timerRate is the fixed decrement rate of the delay and sound timers.
	timerRate = 60
)

// Config configures a daemon.
type Config struct {
	// ClockHz is the instruction execution rate, DefaultClockHz if not
	// positive.
	ClockHz int

	// Sink receives machine diagnostics. A private sink is created if nil.
	Sink *diagnostics.Sink
}

// Daemon owns a machine and executes it on a dedicated goroutine.
type Daemon struct {
	clockHz int
	sink    *diagnostics.Sink

	// stateMu guards the machine state and the run state. The execution
	// goroutine write-locks around message application and stepping, the
	// query accessors read-lock.
	stateMu  sync.RWMutex
	state    *chip8.State
	cpu      *chip8.CPU
	runState RunState

	// queueMu guards the message queue and the handler registry. cond
	// wakes the execution goroutine on message arrival and on stop.
	queueMu  sync.Mutex
	cond     *sync.Cond
	pending  []Message
	handlers map[MessageType][]func(Message)

	// pacer and the timer ticker exist only while Running and are
	// managed on the execution goroutine.
	pacer      *time.Ticker
	tickerStop chan struct{}
	tickerDone chan struct{}

	stopped  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// New creates a daemon and starts its execution goroutine in the Paused
// state: it processes messages but executes no instructions until
// MsgSetStateRunning arrives.
func New(cfg Config) *Daemon {
	if cfg.ClockHz <= 0 {
		cfg.ClockHz = DefaultClockHz
	}
	if cfg.Sink == nil {
		cfg.Sink = diagnostics.NewSink(0)
	}

	state := chip8.NewState()
	d := &Daemon{
		clockHz:  cfg.ClockHz,
		sink:     cfg.Sink,
		state:    state,
		cpu:      chip8.NewCPU(state, cfg.Sink),
		handlers: make(map[MessageType][]func(Message)),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	d.cond = sync.NewCond(&d.queueMu)

	d.RegisterHandler(MsgLoadROM, d.handleLoadROM)
	d.RegisterHandler(MsgSetStateRunning, d.handleSetRunning)
	d.RegisterHandler(MsgSetStateStopped, d.handleSetStopped)
	d.RegisterHandler(MsgSetKeyDown, d.handleKeyDown)
	d.RegisterHandler(MsgSetKeyUp, d.handleKeyUp)
	d.RegisterHandler(msgTimerTick, d.handleTimerTick)

	go d.run()
	return d
}

// Sink returns the diagnostics sink the machine reports into.
func (d *Daemon) Sink() *diagnostics.Sink {
	return d.sink
}

// ClockHz returns the configured instruction rate.
func (d *Daemon) ClockHz() int {
	return d.clockHz
}

// SendMessage enqueues a message for the execution goroutine. Messages
// are applied in arrival order before the next instruction executes.
func (d *Daemon) SendMessage(msg Message) {
	if d.stopped.Load() {
		return
	}

	d.queueMu.Lock()
	d.pending = append(d.pending, msg)
	d.cond.Broadcast()
	d.queueMu.Unlock()
}

// RegisterHandler adds a handler for a message type. A type can have any
// number of handlers, they run on the execution goroutine in registration
// order. The built-in machine behavior registers first, so external
// handlers observe the already applied message.
func (d *Daemon) RegisterHandler(typ MessageType, handler func(Message)) {
	d.queueMu.Lock()
	d.handlers[typ] = append(d.handlers[typ], handler)
	d.queueMu.Unlock()
}

// LoadROM enqueues a machine reset followed by a ROM copy to the program
// start address. The machine is paused afterwards.
func (d *Daemon) LoadROM(rom []byte) {
	d.SendMessage(Message{Type: MsgLoadROM, ROM: rom})
}

// SetRunning enqueues the transition to the Running state.
func (d *Daemon) SetRunning() {
	d.SendMessage(Message{Type: MsgSetStateRunning})
}

// SetPaused enqueues the transition to the Paused state.
func (d *Daemon) SetPaused() {
	d.SendMessage(Message{Type: MsgSetStateStopped})
}

// SetKeyDown enqueues a key press. Values outside the keypad are dropped.
func (d *Daemon) SetKeyDown(key uint8) {
	if key > 0x0F {
		d.sink.Publish(diagnostics.LevelWarn,
			fmt.Sprintf("key $%02X outside keypad", key))
		return
	}
	d.SendMessage(Message{Type: MsgSetKeyDown, Key: key})
}

// SetKeyUp enqueues a key release. Values outside the keypad are dropped.
func (d *Daemon) SetKeyUp(key uint8) {
	if key > 0x0F {
		d.sink.Publish(diagnostics.LevelWarn,
			fmt.Sprintf("key $%02X outside keypad", key))
		return
	}
	d.SendMessage(Message{Type: MsgSetKeyUp, Key: key})
}

// Stop terminates the execution goroutine and waits for it to exit. It is
// safe to call from any goroutine and more than once; every call returns
// only after the goroutine is gone.
func (d *Daemon) Stop() {
	d.stopOnce.Do(func() {
		d.stopped.Store(true)
		close(d.stopCh)

		d.queueMu.Lock()
		d.cond.Broadcast()
		d.queueMu.Unlock()
	})
	<-d.done
}

// run is the execution goroutine: drain the whole queue, execute one
// instruction if the machine is runnable, pace to the clock, repeat.
func (d *Daemon) run() {
	defer close(d.done)
	defer d.stopPacer()
	defer d.stopTimerTicker()

	for {
		d.queueMu.Lock()
		for len(d.pending) == 0 && !d.stopped.Load() && !d.stepPending() {
			d.cond.Wait()
		}
		if d.stopped.Load() {
			d.queueMu.Unlock()
			return
		}
		batch := d.pending
		d.pending = nil
		d.queueMu.Unlock()

		for _, msg := range batch {
			d.dispatch(msg)
		}

		if d.stopped.Load() {
			return
		}
		if d.stepPending() {
			d.stateMu.Lock()
			d.cpu.Step()
			d.stateMu.Unlock()
			d.pace()
		}
	}
}

// stepPending reports whether an instruction should execute. The involved
// fields are only ever written on the execution goroutine, reading them
// here without the state lock is safe.
func (d *Daemon) stepPending() bool {
	return d.runState == Running && !d.state.KeyWait
}

// dispatch runs all handlers of the message in registration order.
func (d *Daemon) dispatch(msg Message) {
	d.queueMu.Lock()
	handlers := d.handlers[msg.Type]
	d.queueMu.Unlock()

	for _, handler := range handlers {
		handler(msg)
	}
}

// pace waits for the next instruction slot or for stop.
func (d *Daemon) pace() {
	if d.pacer == nil {
		return
	}
	select {
	case <-d.stopCh:
	case <-d.pacer.C:
	}
}

// setRunStateLocked transitions the run state and manages the pacing and
// timer tickers. The caller holds the state write lock.
func (d *Daemon) setRunStateLocked(rs RunState) {
	if d.runState == rs {
		return
	}
	d.runState = rs
	if rs == Running {
		d.startPacer()
		d.startTimerTicker()
	} else {
		d.stopPacer()
		d.stopTimerTicker()
	}
}

func (d *Daemon) startPacer() {
	if d.pacer == nil {
		d.pacer = time.NewTicker(time.Second / time.Duration(d.clockHz))
	}
}

func (d *Daemon) stopPacer() {
	if d.pacer != nil {
		d.pacer.Stop()
		d.pacer = nil
	}
}

// startTimerTicker launches the 60 Hz goroutine that enqueues timer tick
// messages, so timer decrements happen on the execution goroutine like
// every other state change. The ticker only exists while Running, a
// paused machine's timers are frozen.
func (d *Daemon) startTimerTicker() {
	if d.tickerStop != nil {
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	d.tickerStop = stop
	d.tickerDone = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(time.Second / timerRate)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-d.stopCh:
				return
			case <-ticker.C:
				d.SendMessage(Message{Type: msgTimerTick})
			}
		}
	}()
}

// stopTimerTicker terminates the tick goroutine and waits for it.
func (d *Daemon) stopTimerTicker() {
	if d.tickerStop == nil {
		return
	}
	close(d.tickerStop)
	<-d.tickerDone
	d.tickerStop = nil
	d.tickerDone = nil
}

// handleLoadROM resets the machine, pauses it and copies the ROM to the
// program start address. A payload that does not fit is reported and
// leaves the freshly reset machine empty.
func (d *Daemon) handleLoadROM(msg Message) {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()

	d.setRunStateLocked(Paused)
	d.cpu.Reset()
	if !d.state.LoadROM(msg.ROM, chip8.ProgramStart) {
		d.sink.Publish(diagnostics.LevelError,
			fmt.Sprintf("rom of %d bytes does not fit into memory", len(msg.ROM)))
	}
}

func (d *Daemon) handleSetRunning(Message) {
	d.stateMu.Lock()
	d.setRunStateLocked(Running)
	d.stateMu.Unlock()
}

func (d *Daemon) handleSetStopped(Message) {
	d.stateMu.Lock()
	d.setRunStateLocked(Paused)
	d.stateMu.Unlock()
}

func (d *Daemon) handleKeyDown(msg Message) {
	d.stateMu.Lock()
	d.state.PressKey(msg.Key)
	d.stateMu.Unlock()
}

func (d *Daemon) handleKeyUp(msg Message) {
	d.stateMu.Lock()
	d.state.ReleaseKey(msg.Key)
	d.stateMu.Unlock()
}

// handleTimerTick counts active timers down. A tick that was in flight
// when the machine paused is dropped, paused timers do not move.
func (d *Daemon) handleTimerTick(Message) {
	d.stateMu.Lock()
	if d.runState == Running {
		d.state.TickTimers()
	}
	d.stateMu.Unlock()
}
