package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/SuperrSonic/dreamtagtournament-tools/internal/options"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/report"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/rom"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/script"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

const testScript = `ln: 2

1
en: Hello\NWorld

2
en: "Bye" \HEART
`

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.detector)
	assert.NotNil(t, p.loader)
}

// testCodec returns codec options for a small ROM image: the pointer table at
// 0x10 and the blob at 0x20 of a 0x60 byte image.
func testCodec() options.Codec {
	codec := options.NewCodec()
	codec.Language = script.English
	codec.Layout = rom.Layout{
		PointerTable: 0x10,
		Lines:        2,
		Base:         0x08000020,
		Mask:         0x00FFFFFF,
	}
	return codec
}

func testImage() []byte {
	image := make([]byte, 0x60)
	copy(image, []byte{0x2E, 0x00, 0x00, 0xEA})
	return image
}

//nolint:funlen // test functions can be long
func TestEncodeAndStore(t *testing.T) {
	dir := t.TempDir()
	input := createTempFile(t, dir, "script.txt", []byte(testScript))

	t.Run("write pointer table and blob files", func(t *testing.T) {
		p := New(log.NewTestLogger(t))
		opts := options.Program{
			Parameters: options.Parameters{Input: input, Output: filepath.Join(dir, "out", "script.bin")},
			Flags:      options.Flags{Quiet: true, Verify: true},
		}

		result, err := p.Encode(context.Background(), opts, testCodec())
		assert.NoError(t, err)
		assert.Equal(t, 0, result.Report.Len())
		assert.Len(t, result.Container.Pointers, 2)

		assert.NoError(t, p.Store(opts, testCodec(), result.Container))

		blob, err := os.ReadFile(filepath.Join(dir, "out", "script.bin"))
		assert.NoError(t, err)
		assert.Equal(t, result.Container.Blob, blob)

		ptr, err := os.ReadFile(filepath.Join(dir, "out", "script.ptr"))
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x20, 0x00, 0x00, 0x08}, ptr[:4])
	})

	t.Run("patch ROM and decode it", func(t *testing.T) {
		romFile := createTempFile(t, dir, "game.gba", testImage())
		patched := filepath.Join(dir, "game_patched.gba")

		p := New(log.NewTestLogger(t))
		opts := options.Program{
			Parameters: options.Parameters{Input: input, Output: patched, ROM: romFile},
			Flags:      options.Flags{Quiet: true},
		}

		result, err := p.Encode(context.Background(), opts, testCodec())
		assert.NoError(t, err)
		assert.NoError(t, p.Store(opts, testCodec(), result.Container))

		opts = options.Program{
			Parameters: options.Parameters{Input: patched},
			Flags:      options.Flags{Quiet: true},
		}
		decoded, err := p.Decode(context.Background(), opts, testCodec())
		assert.NoError(t, err)
		assert.Equal(t, 0, decoded.Report.Len())
		assert.Equal(t, []script.SourceLine{
			{Index: 1, Language: script.English, Text: `Hello\NWorld`},
			{Index: 2, Language: script.English, Text: `"Bye" \HEART`},
		}, decoded.Lines)
	})

	t.Run("container does not fit into ROM", func(t *testing.T) {
		romFile := createTempFile(t, dir, "small.gba", testImage()[:0x24])

		p := New(log.NewTestLogger(t))
		opts := options.Program{
			Parameters: options.Parameters{Input: input, Output: filepath.Join(dir, "small_patched.gba"), ROM: romFile},
			Flags:      options.Flags{Quiet: true},
		}

		result, err := p.Encode(context.Background(), opts, testCodec())
		assert.NoError(t, err)
		err = p.Store(opts, testCodec(), result.Container)
		assert.True(t, errors.Is(err, rom.ErrOutOfRange))
	})
}

func TestEncodeStrictFailure(t *testing.T) {
	dir := t.TempDir()
	input := createTempFile(t, dir, "script.txt", []byte("ln: 1\n\n1\nen: a=b\n"))

	p := New(log.NewTestLogger(t))
	opts := options.Program{
		Parameters: options.Parameters{Input: input},
		Flags:      options.Flags{Quiet: true},
	}

	_, err := p.Encode(context.Background(), opts, testCodec())
	var encErr *report.Error
	assert.True(t, errors.As(err, &encErr))

	codec := testCodec()
	codec.Strict = false
	result, err := p.Encode(context.Background(), opts, codec)
	assert.NoError(t, err)
	assert.Len(t, result.Report.Filter(report.UnmappableGlyph), 1)
}

func TestEncodeCanceled(t *testing.T) {
	p := New(log.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lines := []script.SourceLine{{Index: 1, Language: script.English, Text: "a"}}
	_, err := p.EncodeLines(ctx, options.Program{}, testCodec(), lines, 1, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	p := New(log.NewTestLogger(t))

	opts := options.Program{
		Parameters: options.Parameters{Input: createTempFile(t, dir, "bad.gba", make([]byte, 0x40))},
	}
	_, err := p.Decode(context.Background(), opts, testCodec())
	assert.True(t, errors.Is(err, rom.ErrNotGBA))

	opts.Input = filepath.Join(dir, "missing.gba")
	_, err = p.Decode(context.Background(), opts, testCodec())
	assert.Error(t, err)
}

func TestMode(t *testing.T) {
	p := New(log.NewTestLogger(t))

	assert.Equal(t, options.ModeDecode, p.Mode(options.Program{Parameters: options.Parameters{Input: "game.gba"}}))
	assert.Equal(t, options.ModeEncode, p.Mode(options.Program{Parameters: options.Parameters{Input: "script.yaml"}}))
}

func createTempFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(dir, name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
