//go:build windows

package tray

// The Windows tray loads icons from .ico data.
func platformIcon(pngData []byte, edge int) []byte { return wrapICO(pngData, edge) }
