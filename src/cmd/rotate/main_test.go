package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func squarePNG(t *testing.T, n int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRotateJSONFromStdin(t *testing.T) {
	var out bytes.Buffer
	args := []string{"face-rotate", "--file", "-", "--dx", "50", "--dy", "-50", "--json"}
	if err := runWithArgs(args, bytes.NewReader(squarePNG(t, 100)), &out); err != nil {
		t.Fatalf("runWithArgs failed: %v", err)
	}

	var result FrameResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\n%s", err, out.String())
	}
	if result.Angle < 44.999 || result.Angle > 45.001 {
		t.Errorf("Expected angle 45, got %v", result.Angle)
	}
	if result.Width != 142 || result.Height != 142 {
		t.Errorf("Expected 142x142, got %dx%d", result.Width, result.Height)
	}
}

func TestRotateWritesPNG(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "head.png")
	outPath := filepath.Join(dir, "frame.png")
	if err := os.WriteFile(in, squarePNG(t, 100), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runWithArgs([]string{"face-rotate", "--file", in, "--out", outPath}, nil, &out); err != nil {
		t.Fatalf("runWithArgs failed: %v", err)
	}
	if !strings.Contains(out.String(), "size=100x100") {
		t.Errorf("Expected default upward frame, got %q", out.String())
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("Expected output file: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Expected valid PNG: %v", err)
	}
	if img.Bounds().Size() != image.Pt(100, 100) {
		t.Errorf("Expected 100x100 output, got %v", img.Bounds().Size())
	}
}

func TestRotateInputErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin []byte
	}{
		{"missing file flag", []string{"face-rotate"}, nil},
		{"empty stdin", []string{"face-rotate", "--file", "-"}, []byte{}},
		{"not an image", []string{"face-rotate", "--file", "-"}, []byte("hello")},
		{"missing path", []string{"face-rotate", "--file", filepath.Join(t.TempDir(), "nope.png")}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := runWithArgs(tt.args, bytes.NewReader(tt.stdin), &out); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
