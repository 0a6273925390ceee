// Package rom places script containers into a GBA ROM image and reads
// pointer tables from it.
package rom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// EntryBranch is the ARM branch instruction every GBA ROM starts with.
const EntryBranch = 0xEA00002E

// MinImageSize is the size of the game ROM.
const MinImageSize = 16 * 1024 * 1024

var (
	// ErrOutOfRange is returned when data does not fit into the image.
	ErrOutOfRange = errors.New("data does not fit into the image")
	// ErrNotGBA is returned when the image does not start with the GBA entry branch.
	ErrNotGBA = errors.New("image is not a GBA ROM")
)

// Layout describes where the script lives in the ROM.
type Layout struct {
	PointerTable uint32 // file offset of the pointer table
	Lines        int    // pointer table entries of the game script
	Base         uint32 // bus address of the blob
	Mask         uint32 // mask converting bus addresses to file offsets
}

// DefaultLayout returns the layout of the Dream Tag Tournament script.
func DefaultLayout() Layout {
	return Layout{
		PointerTable: 0xFAFA94,
		Lines:        616,
		Base:         0x08FC1590,
		Mask:         0x00FFFFFF,
	}
}

// BlobOffset returns the file offset of the blob.
func (l Layout) BlobOffset() uint32 {
	return l.Base & l.Mask
}

// CheckHeader verifies that the image starts with the GBA entry branch.
func CheckHeader(src io.ReaderAt) error {
	var buf [4]byte
	if _, err := src.ReadAt(buf[:], 0); err != nil {
		return fmt.Errorf("reading ROM header: %w", err)
	}
	if entry := binary.LittleEndian.Uint32(buf[:]); entry != EntryBranch {
		return fmt.Errorf("%w: entry instruction 0x%08X", ErrNotGBA, entry)
	}
	return nil
}

// ReadPointerTable reads count little endian pointers at offset.
func ReadPointerTable(src io.ReaderAt, offset int64, count int) ([]uint32, error) {
	section := io.NewSectionReader(src, offset, int64(count)*4)
	pointers := make([]uint32, count)
	if err := binary.Read(section, binary.LittleEndian, pointers); err != nil {
		return nil, fmt.Errorf("reading pointer table at 0x%X: %w", offset, err)
	}
	return pointers, nil
}
