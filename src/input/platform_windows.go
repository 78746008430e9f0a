//go:build windows

package input

import (
	"fmt"
	"image"

	"face-overlay/src/hotkey"

	"github.com/lxn/win"
)

// win32Source polls GetAsyncKeyState and GetCursorPos; no hook thread needed.
type win32Source struct {
	combo [][]uint16
}

// NewPlatform returns the Win32 polling source for combo.
func NewPlatform(combo string) (Source, error) {
	codes, err := hotkey.ComboVirtualKeys(combo)
	if err != nil {
		return nil, err
	}
	return &win32Source{combo: codes}, nil
}

func (s *win32Source) CursorPosition() (image.Point, error) {
	var pt win.POINT
	if !win.GetCursorPos(&pt) {
		return image.Point{}, fmt.Errorf("GetCursorPos: %w", ErrUnavailable)
	}
	return image.Pt(int(pt.X), int(pt.Y)), nil
}

// PhysicalPixels is true: ebiten makes the process per-monitor DPI aware,
// so GetCursorPos is not virtualized.
func (s *win32Source) PhysicalPixels() bool { return true }

func (s *win32Source) HotkeyPressed() (bool, error) {
	for _, variants := range s.combo {
		down := false
		for _, vk := range variants {
			// High bit set means the key is down right now.
			if uint16(win.GetAsyncKeyState(int32(vk)))&0x8000 != 0 {
				down = true
				break
			}
		}
		if !down {
			return false, nil
		}
	}
	return true, nil
}

func (s *win32Source) Close() {}
