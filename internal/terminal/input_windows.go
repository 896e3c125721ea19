//go:build windows

package terminal

import (
	"os"
	"time"
)

// startInput starts the blocking stdin reader.
func (t *Terminal) startInput() error {
	go t.readInput()
	return nil
}

// stopInput returns without joining the reader, it blocks in os.Stdin.Read
// until the next keystroke and exits on its own.
func (t *Terminal) stopInput() {}

// readInput reads single bytes from stdin until the terminal is stopped.
func (t *Terminal) readInput() {
	defer close(t.inputDone)
	buf := make([]byte, 1)

	for {
		select {
		case <-t.stopCh:
			return
		default:
		}

		n, err := os.Stdin.Read(buf)
		if n > 0 {
			t.handleKey(buf[0])
		}
		if err != nil {
			return
		}
		if n == 0 {
			time.Sleep(5 * time.Millisecond)
		}
	}
}
