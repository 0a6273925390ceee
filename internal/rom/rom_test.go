package rom

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestCheckHeader(t *testing.T) {
	assert.NoError(t, CheckHeader(bytes.NewReader([]byte{0x2E, 0x00, 0x00, 0xEA, 0x00})))

	err := CheckHeader(bytes.NewReader([]byte{0x00, 0x00, 0x00, 0x00}))
	assert.True(t, errors.Is(err, ErrNotGBA))

	assert.Error(t, CheckHeader(bytes.NewReader([]byte{0x2E})))
}

func TestReadPointerTable(t *testing.T) {
	data := []byte{
		0xAA, 0xBB,
		0x90, 0x15, 0xFC, 0x08,
		0x94, 0x15, 0xFC, 0x08,
	}

	pointers, err := ReadPointerTable(bytes.NewReader(data), 2, 2)
	assert.NoError(t, err)
	assert.Equal(t, []uint32{0x08FC1590, 0x08FC1594}, pointers)

	_, err = ReadPointerTable(bytes.NewReader(data), 2, 3)
	assert.Error(t, err)
}

func TestDefaultLayout(t *testing.T) {
	layout := DefaultLayout()
	assert.Equal(t, uint32(0xFC1590), layout.BlobOffset())
	assert.Equal(t, 616, layout.Lines)
}

func TestImagePatcher(t *testing.T) {
	layout := Layout{
		PointerTable: 4,
		Base:         0x08000010,
		Mask:         0x00FFFFFF,
	}
	image := make([]byte, 0x18)
	patcher := NewImagePatcher(image, layout)

	err := patcher.Accept([]byte{1, 2, 3, 4}, []byte{0x82, 0x60, 0, 0}, 0x08000010)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, patcher.Image()[4:8])
	assert.Equal(t, []byte{0x82, 0x60, 0, 0}, patcher.Image()[0x10:0x14])

	err = patcher.Accept(nil, make([]byte, 16), 0x08000010)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	err = patcher.Accept(nil, nil, 0x08000000)
	assert.ErrorContains(t, err, "does not match layout base")
}

func TestFileSink(t *testing.T) {
	dir := t.TempDir()
	sink := FileSink{Path: filepath.Join(dir, "out", "script")}

	assert.NoError(t, sink.Accept([]byte{1, 2, 3, 4}, []byte{5, 6, 0, 0}, 0))

	ptr, err := os.ReadFile(filepath.Join(dir, "out", "script.ptr"))
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, ptr)

	blob, err := os.ReadFile(filepath.Join(dir, "out", "script.bin"))
	assert.NoError(t, err)
	assert.Equal(t, []byte{5, 6, 0, 0}, blob)
}
