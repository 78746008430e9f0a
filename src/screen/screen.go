package screen

import (
	"fmt"
	"image"
	"math"

	"github.com/kbinani/screenshot"
)

// DefaultTopLeft is used when no display geometry is available.
var DefaultTopLeft = image.Pt(100, 100)

// displayBounds is swapped in tests. Bounds are physical pixels.
var displayBounds = func() (image.Rectangle, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return image.Rectangle{}, fmt.Errorf("no active displays found")
	}
	return screenshot.GetDisplayBounds(0), nil
}

// PrimaryBounds returns the bounds of the primary display in physical pixels
func PrimaryBounds() (image.Rectangle, error) {
	return displayBounds()
}

// ToLogical converts a physical pixel point into device-independent pixels,
// the unit of the overlay window. A scale <= 0 is treated as 1.
func ToLogical(p image.Point, scale float64) image.Point {
	if scale <= 0 || scale == 1 {
		return p
	}
	return image.Pt(int(math.Round(float64(p.X)/scale)), int(math.Round(float64(p.Y)/scale)))
}

// CenteredTopLeft returns the top-left corner, in device-independent pixels,
// that centers a window of the given size on the primary display, or
// DefaultTopLeft.
func CenteredTopLeft(size image.Point, scale float64) image.Point {
	b, err := PrimaryBounds()
	if err != nil || b.Empty() {
		return DefaultTopLeft
	}
	return centerIn(image.Rectangle{Min: ToLogical(b.Min, scale), Max: ToLogical(b.Max, scale)}, size)
}

func centerIn(b image.Rectangle, size image.Point) image.Point {
	c := b.Min.Add(b.Size().Div(2))
	return c.Sub(size.Div(2))
}
