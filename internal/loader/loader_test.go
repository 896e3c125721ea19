package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestLoad(t *testing.T) {
	t.Run("load .ch8 file", func(t *testing.T) {
		rom := []byte{0x12, 0x00, 0x60, 0x0A}
		tmpFile := createTempFile(t, "game.ch8", rom)

		loader := New(log.NewTestLogger(t))
		data, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, 4, len(data))
		assert.Equal(t, rom[0], data[0])
		assert.Equal(t, rom[3], data[3])
	})

	t.Run("load raw binary file", func(t *testing.T) {
		tmpFile := createTempFile(t, "game.rom", []byte{0x00, 0xE0})

		loader := New(log.NewTestLogger(t))
		data, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, 2, len(data))
	})

	t.Run("load maximum size file", func(t *testing.T) {
		tmpFile := createTempFile(t, "big.ch8", make([]byte, MaxROMSize))

		loader := New(log.NewTestLogger(t))
		data, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, MaxROMSize, len(data))
	})

	t.Run("error on NES file", func(t *testing.T) {
		tmpFile := createTempFile(t, "game.nes", []byte{'N', 'E', 'S', 0x1A})

		loader := New(log.NewTestLogger(t))
		_, err := loader.Load(tmpFile)
		assert.Error(t, err)
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, "empty.ch8", nil)

		loader := New(log.NewTestLogger(t))
		_, err := loader.Load(tmpFile)
		assert.Error(t, err)
	})

	t.Run("error on oversized file", func(t *testing.T) {
		tmpFile := createTempFile(t, "big.ch8", make([]byte, MaxROMSize+1))

		loader := New(log.NewTestLogger(t))
		_, err := loader.Load(tmpFile)
		assert.Error(t, err)
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		loader := New(log.NewTestLogger(t))
		_, err := loader.Load("/nonexistent/game.ch8")
		assert.Error(t, err)
	})
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
