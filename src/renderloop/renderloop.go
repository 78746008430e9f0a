package renderloop

import (
	"context"
	"fmt"
	"image"
	"log"
	"runtime/debug"

	"face-overlay/src/edge"
	"face-overlay/src/overlay"
	"face-overlay/src/rotation"
	"face-overlay/src/worker"
)

// Sampler is the degrading global input reader (input.Sampler).
type Sampler interface {
	Cursor(fallback image.Point) image.Point
	HotkeyPressed() bool
}

// Rotator produces a rotated frame from the skin (rotation.Engine).
type Rotator interface {
	Rotate(base image.Image, deg float64) (*image.RGBA, error)
}

// Loop is the single-threaded tick coordinator. Tick and every Window
// method run on one goroutine; other goroutines talk to it only through
// RequestToggle and the skin loaders, which post into buffered channels.
type Loop struct {
	win     *overlay.Window
	sampler Sampler
	rotator Rotator
	keyEdge edge.State
	pool    *worker.Pool

	toggleCh chan struct{}
	skins    chan skinResult

	renderFailing bool

	// OnSkinApplied is called on the loop goroutine after a skin change.
	OnSkinApplied func(img image.Image)
}

type skinResult struct {
	name string
	img  image.Image
	err  error
}

// New creates a loop driving win.
func New(win *overlay.Window, sampler Sampler, rotator Rotator) *Loop {
	if rotator == nil {
		rotator = rotation.Engine{}
	}
	return &Loop{
		win:      win,
		sampler:  sampler,
		rotator:  rotator,
		pool:     worker.New(1),
		toggleCh: make(chan struct{}, 4),
		skins:    make(chan skinResult, 1),
	}
}

// Window returns the overlay; use it only from the loop goroutine.
func (l *Loop) Window() *overlay.Window { return l.win }

// RequestToggle asks the next tick to invert visibility. Safe from any goroutine.
func (l *Loop) RequestToggle() {
	select {
	case l.toggleCh <- struct{}{}:
	default:
	}
}

// LoadSkin decodes a skin on the worker pool and applies it on a later
// tick. Returns false when a load is already queued. Safe from any goroutine.
func (l *Loop) LoadSkin(ctx context.Context, name string, load worker.LoadFunc) bool {
	ok := l.pool.Submit(ctx, name, load, func(img image.Image, err error) {
		select {
		case l.skins <- skinResult{name: name, img: img, err: err}:
		case <-ctx.Done():
		}
	})
	if !ok {
		log.Printf("Skin load %s dropped: loader busy", name)
	}
	return ok
}

// Close stops the skin pool.
func (l *Loop) Close() { l.pool.Close() }

// Tick runs one frame: pending requests, hotkey edge, then (if visible)
// cursor sample, angle, rotation and frame apply. It never panics.
func (l *Loop) Tick() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC in tick, skipping frame: %v\n%s", r, debug.Stack())
		}
	}()

	l.drain()

	if edge.Detect(l.sampler.HotkeyPressed(), &l.keyEdge) {
		l.toggle("hotkey")
	}
	if !l.win.Visible() {
		return
	}

	center := l.win.Center()
	cursor := l.sampler.Cursor(center)
	frame, err := l.render(l.win.Base(), rotation.Angle(center, cursor))
	if err != nil {
		if !l.renderFailing {
			log.Printf("Render failed, keeping previous frame: %v", err)
			l.renderFailing = true
		}
		return
	}
	if l.renderFailing {
		log.Printf("Render recovered")
		l.renderFailing = false
	}
	l.win.ApplyFrame(frame)
}

func (l *Loop) render(base image.Image, deg float64) (frame *image.RGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rotate panicked: %v", r)
		}
	}()
	return l.rotator.Rotate(base, deg)
}

func (l *Loop) toggle(source string) {
	visible := l.win.ToggleVisible()
	log.Printf("Visibility toggled by %s: visible=%v", source, visible)
}

func (l *Loop) drain() {
	for {
		select {
		case <-l.toggleCh:
			l.toggle("request")
		case res := <-l.skins:
			l.applySkin(res)
		default:
			return
		}
	}
}

func (l *Loop) applySkin(res skinResult) {
	if res.err != nil {
		log.Printf("Skin %s failed to load, keeping current skin: %v", res.name, res.err)
		return
	}
	if err := l.win.SetBaseImage(res.img); err != nil {
		log.Printf("Skin %s rejected, keeping current skin: %v", res.name, err)
		return
	}
	log.Printf("Skin %s applied (%dx%d)", res.name, res.img.Bounds().Dx(), res.img.Bounds().Dy())
	if l.OnSkinApplied != nil {
		l.OnSkinApplied(res.img)
	}
}
