//go:build !windows

package terminal

import (
	"fmt"
	"syscall"
	"time"
)

// startInput switches stdin to non-blocking mode and starts the reader.
func (t *Terminal) startInput() error {
	if err := syscall.SetNonblock(t.fd, true); err != nil {
		return fmt.Errorf("setting stdin non-blocking: %w", err)
	}
	t.nonblockSet = true

	go t.readInput()
	return nil
}

// stopInput waits for the reader to exit and restores blocking mode.
func (t *Terminal) stopInput() {
	<-t.inputDone

	if t.nonblockSet {
		_ = syscall.SetNonblock(t.fd, false)
		t.nonblockSet = false
	}
}

// readInput polls stdin for single bytes until the terminal is stopped.
func (t *Terminal) readInput() {
	defer close(t.inputDone)
	buf := make([]byte, 1)

	for {
		select {
		case <-t.stopCh:
			return
		default:
		}

		n, err := syscall.Read(t.fd, buf)
		if n > 0 {
			t.handleKey(buf[0])
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return
		}
		if n == 0 {
			time.Sleep(5 * time.Millisecond)
		}
	}
}
