//go:build !windows

package tray

func platformIcon(pngData []byte, edge int) []byte { return pngData }
