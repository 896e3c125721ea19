// Package options contains the program options.
package options

// Program options of the emulator.
type Program struct {
	Input string // path of the ROM file to run

	ClockHz  int  // instruction execution rate of the machine
	Paused   bool // stay paused after loading instead of starting execution
	Headless bool // run without the terminal UI
	Dasm     bool // print a disassembly listing of the ROM and exit

	Debug bool
	Quiet bool
}
