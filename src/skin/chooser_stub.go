//go:build !windows

package skin

type stubChooser struct{}

// NewChooser is a stub for non-Windows platforms
func NewChooser() Chooser { return stubChooser{} }

func (stubChooser) Choose() (string, error) { return "", ErrUnsupported }
