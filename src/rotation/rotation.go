package rotation

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// OffsetDegrees turns the sprite's authored "up" toward the cursor instead of its "right".
const OffsetDegrees = 90

// MaxPixels bounds a single rotated frame allocation.
const MaxPixels = 4096 * 4096

var (
	ErrEmptyImage = errors.New("image has no pixels")
	ErrTooLarge   = errors.New("rotated frame too large")
)

// Angle returns the clockwise screen-space angle in degrees that points the
// sprite's up direction from center at cursor. atan2(0,0) is 0, so a cursor
// exactly on the center yields OffsetDegrees.
func Angle(center, cursor image.Point) float64 {
	dx := float64(cursor.X - center.X)
	dy := float64(cursor.Y - center.Y)
	return math.Atan2(dy, dx)*180/math.Pi + OffsetDegrees
}

// BoundingSize returns the size of the box that encloses a w×h rectangle
// rotated by deg about its center.
func BoundingSize(w, h int, deg float64) image.Point {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	sin, cos = math.Abs(sin), math.Abs(cos)
	fw := float64(w)*cos + float64(h)*sin
	fh := float64(w)*sin + float64(h)*cos
	return image.Pt(snapCeil(fw), snapCeil(fh))
}

// snapCeil rounds up, ignoring float noise so 90° multiples stay exact.
func snapCeil(v float64) int {
	return int(math.Ceil(math.Round(v*1e6) / 1e6))
}

// Engine rotates images with Interpolator (bilinear when nil).
type Engine struct {
	Interpolator draw.Interpolator
}

// Rotate returns a new RGBA image holding base rotated clockwise by deg about
// its center. The result bounds exactly enclose the rotated content and start
// at (0,0); uncovered pixels are transparent.
func (e Engine) Rotate(base image.Image, deg float64) (*image.RGBA, error) {
	sb := base.Bounds()
	if sb.Empty() {
		return nil, ErrEmptyImage
	}
	size := BoundingSize(sb.Dx(), sb.Dy(), deg)
	if size.X <= 0 || size.Y <= 0 {
		return nil, ErrEmptyImage
	}
	if size.X*size.Y > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, size.X, size.Y)
	}

	dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	interp := e.Interpolator
	if interp == nil {
		interp = draw.BiLinear
	}

	sin, cos := math.Sincos(deg * math.Pi / 180)
	sx := float64(sb.Min.X) + float64(sb.Dx())/2
	sy := float64(sb.Min.Y) + float64(sb.Dy())/2
	dx := float64(size.X) / 2
	dy := float64(size.Y) / 2
	// dst = R·(src - srcCenter) + dstCenter
	s2d := f64.Aff3{
		cos, -sin, dx - (cos*sx - sin*sy),
		sin, cos, dy - (sin*sx + cos*sy),
	}
	interp.Transform(dst, s2d, base, sb, draw.Src, nil)
	return dst, nil
}

// Rotate uses the default bilinear Engine.
func Rotate(base image.Image, deg float64) (*image.RGBA, error) {
	return Engine{}.Rotate(base, deg)
}
