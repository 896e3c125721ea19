package terminal

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypadKey(t *testing.T) {
	tests := []struct {
		input byte
		key   uint8
	}{
		{'1', 0x1}, {'2', 0x2}, {'3', 0x3}, {'4', 0xC},
		{'q', 0x4}, {'w', 0x5}, {'e', 0x6}, {'r', 0xD},
		{'a', 0x7}, {'s', 0x8}, {'d', 0x9}, {'f', 0xE},
		{'z', 0xA}, {'x', 0x0}, {'c', 0xB}, {'v', 0xF},
	}

	for _, tt := range tests {
		key, ok := keypadKey(tt.input)
		assert.True(t, ok)
		assert.Equal(t, tt.key, key)
	}
}

func TestKeypadKeyUnmapped(t *testing.T) {
	for _, b := range []byte{'5', 'g', 'y', ' ', keyEscape} {
		_, ok := keypadKey(b)
		assert.False(t, ok)
	}
}
