package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"testing"
)

func TestScaledPNG(t *testing.T) {
	data, err := scaledPNG(image.NewRGBA(image.Rect(0, 0, 200, 100)), IconSize)
	if err != nil {
		t.Fatalf("scaledPNG failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Expected valid PNG: %v", err)
	}
	if img.Bounds().Size() != image.Pt(IconSize, IconSize) {
		t.Errorf("Expected %dx%d icon, got %v", IconSize, IconSize, img.Bounds().Size())
	}

	if _, err := scaledPNG(image.NewRGBA(image.Rectangle{}), IconSize); err == nil {
		t.Error("Expected error for empty image")
	}
}

func TestWrapICO(t *testing.T) {
	payload := []byte("\x89PNGfake")
	ico := wrapICO(payload, 32)
	if len(ico) != 22+len(payload) {
		t.Fatalf("Expected %d bytes, got %d", 22+len(payload), len(ico))
	}
	var hdr [3]uint16
	_ = binary.Read(bytes.NewReader(ico[:6]), binary.LittleEndian, &hdr)
	if hdr != [3]uint16{0, 1, 1} {
		t.Errorf("Expected ICONDIR {0,1,1}, got %v", hdr)
	}
	if ico[6] != 32 || ico[7] != 32 {
		t.Errorf("Expected 32x32 entry, got %dx%d", ico[6], ico[7])
	}
	if size := binary.LittleEndian.Uint32(ico[14:18]); size != uint32(len(payload)) {
		t.Errorf("Expected payload size %d, got %d", len(payload), size)
	}
	if off := binary.LittleEndian.Uint32(ico[18:22]); off != 22 {
		t.Errorf("Expected payload offset 22, got %d", off)
	}
	if !bytes.Equal(ico[22:], payload) {
		t.Error("Expected payload after header")
	}
	if wrapICO(payload, 256)[6] != 0 {
		t.Error("Expected 256 to encode as 0")
	}
}

func TestIconFromImage(t *testing.T) {
	icon, err := IconFromImage(image.NewRGBA(image.Rect(0, 0, 10, 40)))
	if err != nil {
		t.Fatalf("IconFromImage failed: %v", err)
	}
	if len(icon) == 0 {
		t.Fatal("Expected icon bytes")
	}
}
