package screen

import (
	"errors"
	"image"
	"testing"
)

func TestCenteredTopLeft(t *testing.T) {
	orig := displayBounds
	defer func() { displayBounds = orig }()

	displayBounds = func() (image.Rectangle, error) { return image.Rect(0, 0, 1920, 1080), nil }
	if got := CenteredTopLeft(image.Pt(100, 100), 1); got != image.Pt(910, 490) {
		t.Errorf("Expected (910,490), got %v", got)
	}

	displayBounds = func() (image.Rectangle, error) { return image.Rect(-1280, 0, 0, 1024), nil }
	if got := CenteredTopLeft(image.Pt(64, 64), 1); got != image.Pt(-672, 480) {
		t.Errorf("Expected (-672,480), got %v", got)
	}

	displayBounds = func() (image.Rectangle, error) { return image.Rectangle{}, errors.New("headless") }
	if got := CenteredTopLeft(image.Pt(64, 64), 1); got != DefaultTopLeft {
		t.Errorf("Expected default %v, got %v", DefaultTopLeft, got)
	}
}

func TestCenteredTopLeftScaledDisplay(t *testing.T) {
	orig := displayBounds
	defer func() { displayBounds = orig }()

	// 2560x1440 physical at 150% is 1707x960 device-independent pixels.
	displayBounds = func() (image.Rectangle, error) { return image.Rect(0, 0, 2560, 1440), nil }
	if got := CenteredTopLeft(image.Pt(100, 100), 1.5); got != image.Pt(803, 430) {
		t.Errorf("Expected (803,430), got %v", got)
	}
}

func TestToLogical(t *testing.T) {
	tests := []struct {
		name  string
		p     image.Point
		scale float64
		want  image.Point
	}{
		{"unscaled", image.Pt(975, 400), 1, image.Pt(975, 400)},
		{"150 percent", image.Pt(975, 525), 1.5, image.Pt(650, 350)},
		{"200 percent", image.Pt(-200, 300), 2, image.Pt(-100, 150)},
		{"zero scale", image.Pt(7, 9), 0, image.Pt(7, 9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToLogical(tt.p, tt.scale); got != tt.want {
				t.Errorf("ToLogical(%v, %v) = %v, expected %v", tt.p, tt.scale, got, tt.want)
			}
		})
	}
}

func TestPrimaryBounds(t *testing.T) {
	// May fail in a headless environment; must not panic.
	if _, err := PrimaryBounds(); err != nil {
		t.Logf("Failed to get display bounds (expected in headless environment): %v", err)
	}
}
