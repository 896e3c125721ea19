package terminal

import (
	"fmt"
	"strings"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/daemon"
)

// ANSI control sequences used to drive the terminal.
const (
	enterAltScreen = "\x1b[?1049h"
	leaveAltScreen = "\x1b[?1049l"
	hideCursor     = "\x1b[?25l"
	showCursor     = "\x1b[?25h"
	clearScreen    = "\x1b[2J"
	cursorHome     = "\x1b[H"
	clearLine      = "\x1b[K"
	clearBelow     = "\x1b[J"
)

// renderScreen converts the framebuffer into text rows, each character cell
// covers two vertically stacked pixels using block characters.
func renderScreen(fb *[chip8.ScreenHeight][chip8.ScreenWidth]bool, width, height int) []string {
	rows := make([]string, 0, height/2)

	for y := 0; y < height; y += 2 {
		var b strings.Builder
		for x := range width {
			top := fb[y][x]
			bottom := fb[y+1][x]

			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		rows = append(rows, b.String())
	}
	return rows
}

// statusLines formats the machine state summary shown below the screen: the
// run state with the instruction at PC, and a register line with the key
// help. The instruction is empty while PC points at data.
func statusLines(snap daemon.Snapshot, clockHz int, instruction string) []string {
	state := fmt.Sprintf("%s  %d Hz  PC $%03X", snap.RunState, clockHz, snap.PC)
	if instruction != "" {
		state += "  " + instruction
	}
	registers := fmt.Sprintf("I $%03X  SP $%X  DT $%02X  ST $%02X  [p]ause [esc] quit",
		snap.I, snap.SP, snap.DelayTimer, snap.SoundTimer)
	return []string{state, registers}
}

// buildFrame assembles a complete frame update: the screen pane with a
// border, the status lines and the diagnostic log pane.
func buildFrame(fb *[chip8.ScreenHeight][chip8.ScreenWidth]bool, width, height int, status []string, logLines []string) string {
	var b strings.Builder
	b.WriteString(cursorHome)

	border := strings.Repeat("─", width)
	b.WriteString("┌" + border + "┐" + clearLine + "\r\n")
	for _, row := range renderScreen(fb, width, height) {
		b.WriteString("│" + row + "│" + clearLine + "\r\n")
	}
	b.WriteString("└" + border + "┘" + clearLine + "\r\n")

	for _, line := range status {
		b.WriteString(line + clearLine + "\r\n")
	}
	for _, line := range logLines {
		b.WriteString(line + clearLine + "\r\n")
	}

	b.WriteString(clearBelow)
	return b.String()
}
