package emulator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestWriteListing(t *testing.T) {
	rom := []byte{
		0x00, 0xE0, // cls
		0x6A, 0x02, // ld VA, $02
		0x3A, 0x02, // se VA, $02
		0xDA, 0xB6, // drw VA, VB, $6
		0xFF, 0xFF, // data
		0x12, 0x00, // jp $200
		0x80, // trailing data byte
	}

	var buf bytes.Buffer
	err := WriteListing(&buf, rom)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, 7, len(lines))
	assert.Equal(t, "$200  00E0  cls", lines[0])
	assert.Equal(t, "$202  6A02  ld VA, $02", lines[1])
	assert.Equal(t, "$204  3A02  se VA, $02     ; skips to $208", lines[2])
	assert.Equal(t, "$206  DAB6  drw VA, VB, $6", lines[3])
	assert.Equal(t, "$208  FFFF  .byte $FF, $FF", lines[4])
	assert.Equal(t, "$20A  1200  jp $200", lines[5])
	assert.Equal(t, "$20C  80    .byte $80", lines[6])
}

func TestWriteListingEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteListing(&buf, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, buf.Len())
}

func TestWriteListingTooLarge(t *testing.T) {
	var buf bytes.Buffer
	err := WriteListing(&buf, make([]byte, 4096))
	assert.Error(t, err)
}
