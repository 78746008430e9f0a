package overlay

import (
	"errors"
	"image"
)

// ErrEmptyImage is returned when a skin has no pixels.
var ErrEmptyImage = errors.New("overlay: empty base image")

// Window is the overlay's state: the base sprite, the frame on screen, the
// top-left screen position and the drag state.
//
// It MUST be used only from the single loop goroutine (ticks and pointer
// events are serialized there). The center-preserving resize in ApplyFrame
// reads a position the drag path may have written, which is only safe
// because both run on that goroutine.
type Window struct {
	base    image.Image
	frame   image.Image
	pos     image.Point
	size    image.Point
	visible bool

	dragging   bool
	dragOffset image.Point

	stale    bool
	revision uint64
}

// New creates a visible window showing base at its natural size with its
// top-left corner at topLeft.
func New(base image.Image, topLeft image.Point) (*Window, error) {
	if base == nil || base.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	w := &Window{pos: topLeft, visible: true}
	w.setBase(base)
	return w, nil
}

func (w *Window) setBase(img image.Image) {
	w.base = img
	w.frame = img
	w.size = img.Bounds().Size()
	w.stale = true
	w.revision++
}

// SetBaseImage replaces the skin, shows it at its natural size immediately
// (top-left kept) and marks the frame stale so the next tick re-renders.
func (w *Window) SetBaseImage(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return ErrEmptyImage
	}
	w.setBase(img)
	return nil
}

// Base returns the skin.
func (w *Window) Base() image.Image { return w.base }

// Frame returns the image currently displayed. It is the base image until
// the first ApplyFrame after a skin change.
func (w *Window) Frame() image.Image { return w.frame }

// Stale reports whether the displayed frame predates the current skin.
func (w *Window) Stale() bool { return w.stale }

// Revision changes whenever the frame, size, position or visibility changes.
func (w *Window) Revision() uint64 { return w.revision }

func (w *Window) Visible() bool { return w.visible }

// SetVisible shows or hides the window. A drag in progress survives hiding.
func (w *Window) SetVisible(v bool) {
	if w.visible == v {
		return
	}
	w.visible = v
	w.revision++
}

// ToggleVisible inverts visibility and returns the new state.
func (w *Window) ToggleVisible() bool {
	w.SetVisible(!w.visible)
	return w.visible
}

func (w *Window) TopLeft() image.Point { return w.pos }
func (w *Window) Size() image.Point    { return w.size }

// Bounds is the window rectangle in screen coordinates.
func (w *Window) Bounds() image.Rectangle {
	return image.Rectangle{Min: w.pos, Max: w.pos.Add(w.size)}
}

// Center is the rotation pivot in screen coordinates.
func (w *Window) Center() image.Point {
	return w.pos.Add(w.size.Div(2))
}

// ApplyFrame displays frame and resizes the window to it, keeping the
// center fixed so the sprite does not walk as the bounding box changes.
func (w *Window) ApplyFrame(frame image.Image) {
	if frame == nil || frame.Bounds().Empty() {
		return
	}
	c := w.Center()
	w.frame = frame
	w.size = frame.Bounds().Size()
	w.pos = c.Sub(w.size.Div(2))
	w.stale = false
	w.revision++
}

// OnPressStart begins a drag at the screen point p. Ignored while hidden.
func (w *Window) OnPressStart(p image.Point) {
	if !w.visible {
		return
	}
	w.dragging = true
	w.dragOffset = p.Sub(w.pos)
}

// OnPressMove moves the window so the grabbed point follows p. No-op
// without an active drag.
func (w *Window) OnPressMove(p image.Point) {
	if !w.dragging {
		return
	}
	np := p.Sub(w.dragOffset)
	if np == w.pos {
		return
	}
	w.pos = np
	w.revision++
}

// OnPressEnd ends the drag. No-op without an active drag.
func (w *Window) OnPressEnd() {
	w.dragging = false
	w.dragOffset = image.Point{}
}

// DragOffset returns the grab offset and whether a drag is active.
func (w *Window) DragOffset() (image.Point, bool) {
	return w.dragOffset, w.dragging
}
