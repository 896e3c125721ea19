package terminal

import (
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/daemon"
	"github.com/retroenv/retrogolib/assert"
)

func TestRenderScreen(t *testing.T) {
	var fb [chip8.ScreenHeight][chip8.ScreenWidth]bool
	fb[0][0] = true // top pixel of the first cell
	fb[1][1] = true // bottom pixel of the second cell
	fb[0][2] = true // both pixels of the third cell
	fb[1][2] = true

	rows := renderScreen(&fb, chip8.LowResWidth, chip8.LowResHeight)
	assert.Equal(t, chip8.LowResHeight/2, len(rows))

	first := []rune(rows[0])
	assert.Equal(t, chip8.LowResWidth, len(first))
	assert.Equal(t, '▀', first[0])
	assert.Equal(t, '▄', first[1])
	assert.Equal(t, '█', first[2])
	assert.Equal(t, ' ', first[3])
}

func TestRenderScreenHighRes(t *testing.T) {
	var fb [chip8.ScreenHeight][chip8.ScreenWidth]bool
	fb[chip8.ScreenHeight-1][chip8.ScreenWidth-1] = true

	rows := renderScreen(&fb, chip8.ScreenWidth, chip8.ScreenHeight)
	assert.Equal(t, chip8.ScreenHeight/2, len(rows))

	last := []rune(rows[len(rows)-1])
	assert.Equal(t, chip8.ScreenWidth, len(last))
	assert.Equal(t, '▄', last[len(last)-1])
}

func TestBuildFrame(t *testing.T) {
	var fb [chip8.ScreenHeight][chip8.ScreenWidth]bool
	status := []string{"state line", "register line"}
	frame := buildFrame(&fb, chip8.LowResWidth, chip8.LowResHeight, status, []string{"log line"})

	lines := strings.Split(frame, "\r\n")
	// 2 border rows, 16 screen rows, 2 status lines, log line and the
	// trailing clear
	assert.Equal(t, chip8.LowResHeight/2+6, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], cursorHome+"┌"))
	assert.True(t, strings.HasPrefix(lines[1], "│"))
	assert.True(t, strings.Contains(frame, "state line"))
	assert.True(t, strings.Contains(frame, "register line"))
	assert.True(t, strings.Contains(frame, "log line"))
	assert.True(t, strings.HasSuffix(frame, clearBelow))
}

func TestStatusLines(t *testing.T) {
	snap := daemon.Snapshot{
		PC:         0x234,
		I:          0x123,
		SP:         0x2,
		DelayTimer: 0x10,
		SoundTimer: 0x02,
		RunState:   daemon.Running,
	}
	lines := statusLines(snap, 500, "ld VA, $02")

	assert.Equal(t, 2, len(lines))
	assert.Equal(t, "running  500 Hz  PC $234  ld VA, $02", lines[0])
	assert.Equal(t, "I $123  SP $2  DT $10  ST $02  [p]ause [esc] quit", lines[1])
}

func TestStatusLinesDataWord(t *testing.T) {
	snap := daemon.Snapshot{PC: 0x206, RunState: daemon.Paused}
	lines := statusLines(snap, 500, "")

	assert.Equal(t, "paused  500 Hz  PC $206", lines[0])
}
