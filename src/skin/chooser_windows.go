//go:build windows

package skin

import (
	"fmt"
	"os"
	"syscall"
	"unicode/utf16"
	"unsafe"

	"github.com/lxn/win"
)

type openFileChooser struct{}

// NewChooser returns the Win32 open-file dialog.
func NewChooser() Chooser { return openFileChooser{} }

func (openFileChooser) Choose() (string, error) {
	buf := make([]uint16, win.MAX_PATH)
	// Filter pairs are NUL-separated and the list ends with two NULs.
	filter := utf16.Encode([]rune("Image Files (*.png)\x00*.png\x00All Files (*.*)\x00*.*\x00\x00"))
	title, _ := syscall.UTF16PtrFromString("Select Skin PNG")
	var initialDir *uint16
	if wd, err := os.Getwd(); err == nil {
		initialDir, _ = syscall.UTF16PtrFromString(wd)
	}

	ofn := win.OPENFILENAME{
		LpstrFilter:     &filter[0],
		LpstrFile:       &buf[0],
		NMaxFile:        uint32(len(buf)),
		LpstrInitialDir: initialDir,
		LpstrTitle:      title,
		Flags:           win.OFN_FILEMUSTEXIST | win.OFN_PATHMUSTEXIST | win.OFN_NOCHANGEDIR,
	}
	ofn.LStructSize = uint32(unsafe.Sizeof(ofn))

	if !win.GetOpenFileName(&ofn) {
		if code := win.CommDlgExtendedError(); code != 0 {
			return "", fmt.Errorf("open file dialog failed: code %d", code)
		}
		return "", ErrNoSelection
	}
	return syscall.UTF16ToString(buf), nil
}
