package runtimeinit

import (
	"fmt"
	"image"
	"io"
	"log"

	"face-overlay/src/config"
	"face-overlay/src/input"
	"face-overlay/src/notification"
	"face-overlay/src/skin"
)

type Options struct {
	LoadOptions           config.LoadOptions
	SetupLogging          func(bool) io.Closer
	ShowBlockingSkinError bool
	// NewPlatform opens the global input backend; input.NewPlatform when nil.
	NewPlatform func(combo string) (input.Source, error)
}

// Runtime is everything the overlay needs before the window opens.
type Runtime struct {
	Config *config.Config
	Skin   image.Image
	Input  input.Source

	logCloser io.Closer
}

// Close releases the input source and the log file.
func (r *Runtime) Close() {
	r.Input.Close()
	if r.logCloser != nil {
		_ = r.logCloser.Close()
	}
}

// Bootstrap loads configuration, sets up logging, loads the startup skin
// (fatal on failure) and selects the input source (degrades on failure).
func Bootstrap(opts Options) (*Runtime, error) {
	cfg, err := config.LoadWithOptions(opts.LoadOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var logCloser io.Closer
	if opts.SetupLogging != nil {
		logCloser = opts.SetupLogging(cfg.EnableFileLogging)
	}

	base, err := skin.Load(cfg.SkinPath)
	if err != nil {
		if opts.ShowBlockingSkinError {
			notification.ShowBlockingError("Skin unavailable", fmt.Sprintf("Could not load the overlay image:\n%v", err))
		}
		if logCloser != nil {
			_ = logCloser.Close()
		}
		return nil, fmt.Errorf("startup skin: %w", err)
	}
	log.Printf("Startup skin %s loaded (%dx%d)", cfg.SkinPath, base.Bounds().Dx(), base.Bounds().Dy())

	newPlatform := opts.NewPlatform
	if newPlatform == nil {
		newPlatform = input.NewPlatform
	}

	return &Runtime{
		Config: cfg,
		Skin:   base,
		Input:  SelectSource(cfg.DisableGlobalInput, newPlatform),

		logCloser: logCloser,
	}, nil
}

// SelectSource picks the global input backend. A missing hotkey capability
// degrades to the disabled source instead of failing startup.
func SelectSource(disabled bool, newPlatform func(combo string) (input.Source, error)) input.Source {
	if disabled {
		log.Printf("Global input disabled by configuration; overlay will not rotate or toggle")
		return input.Disabled{}
	}
	src, err := newPlatform(config.ToggleHotkey)
	if err != nil {
		log.Printf("WARNING: global input unavailable (%v); %s toggle and cursor tracking are disabled", err, config.ToggleHotkey)
		return input.Disabled{}
	}
	return src
}
