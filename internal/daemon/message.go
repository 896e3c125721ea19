package daemon

// MessageType identifies the kind of a queued daemon message.
type MessageType uint8

// Message types processed by the execution goroutine. All machine mutation
// goes through these, external goroutines never touch the state directly.
const (
	// MsgLoadROM resets the machine and loads the ROM payload at the
	// program start address.
	MsgLoadROM MessageType = iota

	// MsgSetStateRunning starts instruction execution at the clock rate.
	MsgSetStateRunning

	// MsgSetStateStopped pauses instruction execution.
	MsgSetStateStopped

	// MsgSetKeyDown marks a keypad key as pressed.
	MsgSetKeyDown

	// MsgSetKeyUp marks a keypad key as released.
	MsgSetKeyUp

	// msgTimerTick is the private 60 Hz tick that counts the timers down.
	msgTimerTick
)

// String implements the Stringer interface.
func (m MessageType) String() string {
	switch m {
	case MsgLoadROM:
		return "load-rom"
	case MsgSetStateRunning:
		return "set-state-running"
	case MsgSetStateStopped:
		return "set-state-stopped"
	case MsgSetKeyDown:
		return "set-key-down"
	case MsgSetKeyUp:
		return "set-key-up"
	case msgTimerTick:
		return "timer-tick"
	default:
		return "unknown"
	}
}

// Message is one queued command for the execution goroutine.
type Message struct {
	Type MessageType

	// ROM is the payload of MsgLoadROM.
	ROM []byte

	// Key is the payload of the key messages, a keypad value 0x0-0xF.
	Key uint8
}

// RunState is the execution state of the daemon.
type RunState uint8

// Run states.
const (
	// Paused means messages are processed but no instructions execute.
	Paused RunState = iota

	// Running means instructions execute at the configured clock rate.
	Running
)

// String implements the Stringer interface.
func (r RunState) String() string {
	if r == Running {
		return "running"
	}
	return "paused"
}
