//go:build !windows

package input

import (
	"image"
	"runtime"

	"face-overlay/src/hotkey"

	"github.com/go-vgo/robotgo"
)

// hookSource reads the cursor through robotgo and the key level from a
// gohook-fed tracker. Wayland sessions report no usable global state.
type hookSource struct {
	tracker *hotkey.Tracker
}

// NewPlatform starts the global key hook for combo.
func NewPlatform(combo string) (Source, error) {
	tr, err := hotkey.Listen(combo)
	if err != nil {
		return nil, err
	}
	return &hookSource{tracker: tr}, nil
}

func (s *hookSource) CursorPosition() (image.Point, error) {
	x, y := robotgo.Location()
	return image.Pt(x, y), nil
}

// PhysicalPixels reports X11 pixels as physical. macOS reports points,
// which already match the window's units.
func (s *hookSource) PhysicalPixels() bool { return runtime.GOOS != "darwin" }

func (s *hookSource) HotkeyPressed() (bool, error) {
	return s.tracker.Pressed(), nil
}

func (s *hookSource) Close() { s.tracker.Close() }
