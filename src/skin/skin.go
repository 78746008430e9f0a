package skin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"sync"

	"golang.design/x/clipboard"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	// ErrNoSelection means the chooser was dismissed without a file.
	ErrNoSelection = errors.New("no skin selected")
	// ErrUnsupported means this platform has no chooser.
	ErrUnsupported = errors.New("skin chooser not supported on this platform")
	// ErrNoClipboardImage means the clipboard holds no image.
	ErrNoClipboardImage = errors.New("clipboard holds no image")
)

// Decode reads a skin image in any registered format. PNG keeps its alpha
// channel, which gives the overlay its silhouette.
func Decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode skin: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("failed to decode skin: %s image has no pixels", format)
	}
	return img, nil
}

// Load opens and decodes the skin at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open skin: %w", err)
	}
	defer f.Close()
	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// FileLoader returns a worker load function for path.
func FileLoader(path string) func(ctx context.Context) (image.Image, error) {
	return func(ctx context.Context) (image.Image, error) {
		img, err := Load(path)
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return img, nil
	}
}

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// readClipboardImage is swapped in tests.
var readClipboardImage = func() ([]byte, error) {
	clipboardOnce.Do(func() { clipboardErr = clipboard.Init() })
	if clipboardErr != nil {
		return nil, fmt.Errorf("failed to initialize clipboard: %w", clipboardErr)
	}
	return clipboard.Read(clipboard.FmtImage), nil
}

// FromClipboard decodes the PNG image currently on the clipboard.
func FromClipboard(ctx context.Context) (image.Image, error) {
	data, err := readClipboardImage()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNoClipboardImage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(data))
}

// Chooser is the external file-selection surface. Choose blocks until the
// user picks a file (path) or dismisses it (ErrNoSelection).
type Chooser interface {
	Choose() (string, error)
}
