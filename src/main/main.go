package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"face-overlay/src/config"
	"face-overlay/src/display"
	"face-overlay/src/input"
	"face-overlay/src/logutil"
	"face-overlay/src/overlay"
	"face-overlay/src/renderloop"
	"face-overlay/src/rotation"
	"face-overlay/src/runtimeinit"
	"face-overlay/src/screen"
	"face-overlay/src/skin"
	"face-overlay/src/tray"
)

const appTitle = "Face Overlay"

type mainOptions struct {
	skinPath    string
	noInput     bool
	fileLogging bool
	noTray      bool
}

func main() {
	if err := newRootCmd(&mainOptions{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(opts *mainOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "face-overlay [skin.png]",
		Short:         "Always-on-top sprite that turns to face the mouse cursor",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.skinPath = args[0]
			}
			return run(*opts)
		},
	}

	cmd.Flags().StringVar(&opts.skinPath, "skin", "", "Path to the skin image (PNG with alpha)")
	cmd.Flags().BoolVar(&opts.noInput, "no-input", false, "Do not read global cursor/hotkey state")
	cmd.Flags().BoolVar(&opts.fileLogging, "log-file", false, "Also write logs to face_overlay.log")
	cmd.Flags().BoolVar(&opts.noTray, "no-tray", false, "Do not show the tray menu")

	return cmd
}

func run(opts mainOptions) error {
	rt, err := runtimeinit.Bootstrap(runtimeinit.Options{
		LoadOptions: config.LoadOptions{
			SkinPathOverride:   opts.skinPath,
			DisableGlobalInput: opts.noInput,
			EnableFileLogging:  opts.fileLogging,
			DisableTray:        opts.noTray,
		},
		SetupLogging:          logutil.Setup,
		ShowBlockingSkinError: true,
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	scale := display.ScaleFactor()
	log.Printf("Display: device scale factor %.2f", scale)
	win, err := overlay.New(rt.Skin, screen.CenteredTopLeft(rt.Skin.Bounds().Size(), scale))
	if err != nil {
		return err
	}
	sampler := input.NewSampler(rt.Input)
	// Re-read every tick so the cursor follows the monitor the overlay is on.
	sampler.Scale = display.ScaleFactor
	loop := renderloop.New(win, sampler, rotation.Engine{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer loop.Close()

	if rt.Config.EnableTray {
		t := startTray(ctx, cancel, loop, rt.Skin)
		defer t.Destroy()
	}

	// Handle SIGINT/SIGTERM
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-ch:
			log.Printf("Signal received, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	log.Printf("Face overlay started: skin=%s hotkey=%s tick=%v", rt.Config.SkinPath, config.ToggleHotkey, config.TickInterval)
	err = display.Run(ctx, loop, display.Options{Title: appTitle, TPS: config.TicksPerSecond()})
	cancel()
	if err != nil {
		return fmt.Errorf("display stopped: %w", err)
	}
	log.Printf("Face overlay stopped")
	return nil
}

func startTray(ctx context.Context, cancel context.CancelFunc, loop *renderloop.Loop, base image.Image) *tray.Tray {
	chooser := skin.NewChooser()
	icon, err := tray.IconFromImage(base)
	if err != nil {
		log.Printf("Tray icon unavailable: %v", err)
	}

	t := tray.New(tray.Config{
		Title:    appTitle,
		Tooltip:  fmt.Sprintf("%s - Press %s to show/hide", appTitle, config.ToggleHotkey),
		Icon:     icon,
		OnToggle: loop.RequestToggle,
		OnChooseSkin: func() {
			path, err := chooser.Choose()
			switch {
			case errors.Is(err, skin.ErrNoSelection):
				return
			case err != nil:
				log.Printf("Skin chooser failed: %v", err)
				return
			}
			loop.LoadSkin(ctx, path, skin.FileLoader(path))
		},
		OnPasteSkin: func() {
			loop.LoadSkin(ctx, "clipboard", skin.FromClipboard)
		},
		OnExit: cancel,
	})

	// Runs on the loop goroutine; the tray call itself is goroutine-safe.
	loop.OnSkinApplied = func(img image.Image) {
		if icon, err := tray.IconFromImage(img); err == nil {
			t.SetIcon(icon)
		}
	}

	go t.Run()
	return t
}
