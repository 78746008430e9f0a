package tray

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// IconSize is the edge length of the generated tray icon.
const IconSize = 32

// IconFromImage scales img into a square tray icon, keeping aspect ratio,
// in the byte format the platform tray expects.
func IconFromImage(img image.Image) ([]byte, error) {
	data, err := scaledPNG(img, IconSize)
	if err != nil {
		return nil, err
	}
	return platformIcon(data, IconSize), nil
}

func scaledPNG(img image.Image, edge int) ([]byte, error) {
	sb := img.Bounds()
	if sb.Empty() {
		return nil, fmt.Errorf("icon source has no pixels")
	}
	w, h := edge, edge
	if sb.Dx() > sb.Dy() {
		h = max(1, edge*sb.Dy()/sb.Dx())
	} else if sb.Dy() > sb.Dx() {
		w = max(1, edge*sb.Dx()/sb.Dy())
	}
	dst := image.NewNRGBA(image.Rect(0, 0, edge, edge))
	off := image.Pt((edge-w)/2, (edge-h)/2)
	draw.CatmullRom.Scale(dst, image.Rectangle{Min: off, Max: off.Add(image.Pt(w, h))}, img, sb, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode icon as PNG: %v", err)
	}
	return buf.Bytes(), nil
}

// wrapICO puts a PNG into a single-entry .ico container (Vista+ format).
func wrapICO(pngData []byte, edge int) []byte {
	var buf bytes.Buffer
	// ICONDIR
	_ = binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1})
	// ICONDIRENTRY; 0 encodes 256.
	dim := byte(edge)
	if edge >= 256 {
		dim = 0
	}
	buf.Write([]byte{dim, dim, 0, 0})
	_ = binary.Write(&buf, binary.LittleEndian, [2]uint16{1, 32})
	_ = binary.Write(&buf, binary.LittleEndian, [2]uint32{uint32(len(pngData)), 6 + 16})
	buf.Write(pngData)
	return buf.Bytes()
}
