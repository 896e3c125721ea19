package daemon

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMessageTypeString(t *testing.T) {
	tests := []struct {
		typ      MessageType
		expected string
	}{
		{MsgLoadROM, "load-rom"},
		{MsgSetStateRunning, "set-state-running"},
		{MsgSetStateStopped, "set-state-stopped"},
		{MsgSetKeyDown, "set-key-down"},
		{MsgSetKeyUp, "set-key-up"},
		{msgTimerTick, "timer-tick"},
		{MessageType(0xFF), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.typ.String())
		})
	}
}

func TestRunStateString(t *testing.T) {
	assert.Equal(t, "paused", Paused.String())
	assert.Equal(t, "running", Running.String())
}
