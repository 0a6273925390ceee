package rom

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink consumes an encoded container. It owns the knowledge where the
// pointer table and blob end up.
type Sink interface {
	Accept(pointerTable, blob []byte, base uint32) error
}

// ImagePatcher writes the container into a ROM image at the layout offsets.
type ImagePatcher struct {
	image  []byte
	layout Layout
}

// NewImagePatcher returns a patcher for the image. The image is modified in
// place.
func NewImagePatcher(image []byte, layout Layout) *ImagePatcher {
	return &ImagePatcher{
		image:  image,
		layout: layout,
	}
}

// Accept copies the pointer table and the blob into the image. The blob is
// placed at the masked base address.
func (p *ImagePatcher) Accept(pointerTable, blob []byte, base uint32) error {
	if base != p.layout.Base {
		return fmt.Errorf("container base 0x%08X does not match layout base 0x%08X", base, p.layout.Base)
	}

	if err := p.write(int64(p.layout.PointerTable), pointerTable, "pointer table"); err != nil {
		return err
	}
	return p.write(int64(p.layout.BlobOffset()), blob, "blob")
}

func (p *ImagePatcher) write(offset int64, data []byte, name string) error {
	end := offset + int64(len(data))
	if offset < 0 || end > int64(len(p.image)) {
		return fmt.Errorf("%w: %s 0x%X-0x%X, image size 0x%X", ErrOutOfRange, name, offset, end, len(p.image))
	}
	copy(p.image[offset:end], data)
	return nil
}

// Image returns the patched image.
func (p *ImagePatcher) Image() []byte {
	return p.image
}

// FileSink writes the pointer table and blob into separate files next to
// each other, <name>.ptr and <name>.bin.
type FileSink struct {
	Path string // output path without extension
}

// Accept writes the files.
func (s FileSink) Accept(pointerTable, blob []byte, _ uint32) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory '%s': %w", dir, err)
	}

	ptrFile := s.Path + ".ptr"
	if err := os.WriteFile(ptrFile, pointerTable, 0o644); err != nil {
		return fmt.Errorf("writing file '%s': %w", ptrFile, err)
	}
	binFile := s.Path + ".bin"
	if err := os.WriteFile(binFile, blob, 0o644); err != nil {
		return fmt.Errorf("writing file '%s': %w", binFile, err)
	}
	return nil
}
