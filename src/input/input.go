package input

import (
	"errors"
	"image"
	"log"

	"face-overlay/src/screen"
)

// ErrUnavailable is returned by a Source that cannot read global input.
var ErrUnavailable = errors.New("global input state unavailable")

// Source reads OS-global input independent of window focus. The hotkey is
// bound when the source is created.
type Source interface {
	CursorPosition() (image.Point, error)
	HotkeyPressed() (bool, error)
	Close()
}

// Disabled is the inert Source selected when global input is denied or
// switched off. Every read fails with ErrUnavailable.
type Disabled struct{}

func (Disabled) CursorPosition() (image.Point, error) { return image.Point{}, ErrUnavailable }
func (Disabled) HotkeyPressed() (bool, error)        { return false, ErrUnavailable }
func (Disabled) Close()                              {}

// PhysicalPixels is implemented by sources whose cursor is reported in
// physical pixels rather than the window's device-independent pixels.
type PhysicalPixels interface {
	PhysicalPixels() bool
}

// Sampler turns Source failures into fixed degraded values so the render
// loop never sees an error. Failures are logged once per transition.
// Not safe for concurrent use; it belongs to the loop goroutine.
type Sampler struct {
	src           Source
	cursorFailing bool
	keyFailing    bool

	// Scale returns the monitor's device scale factor. Physical cursor
	// positions are divided by it so they share the overlay's units.
	// Nil means 1.
	Scale func() float64
}

func NewSampler(src Source) *Sampler {
	if src == nil {
		src = Disabled{}
	}
	return &Sampler{src: src}
}

// Cursor returns the global cursor position, or fallback (the window center)
// when the source fails.
func (s *Sampler) Cursor(fallback image.Point) image.Point {
	p, err := s.src.CursorPosition()
	if err != nil {
		if !s.cursorFailing {
			log.Printf("WARNING: cursor position unavailable, overlay will not rotate: %v", err)
			s.cursorFailing = true
		}
		return fallback
	}
	if s.cursorFailing {
		log.Printf("Cursor position available again")
		s.cursorFailing = false
	}
	if pp, ok := s.src.(PhysicalPixels); ok && pp.PhysicalPixels() && s.Scale != nil {
		p = screen.ToLogical(p, s.Scale())
	}
	return p
}

// HotkeyPressed returns the current hotkey level, false when the source fails.
func (s *Sampler) HotkeyPressed() bool {
	pressed, err := s.src.HotkeyPressed()
	if err != nil {
		if !s.keyFailing {
			log.Printf("WARNING: hotkey state unavailable, toggle hotkey will not work: %v", err)
			s.keyFailing = true
		}
		return false
	}
	if s.keyFailing {
		log.Printf("Hotkey state available again")
		s.keyFailing = false
	}
	return pressed
}
