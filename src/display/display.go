package display

import (
	"context"
	"image"
	"log"
	"math"

	"face-overlay/src/overlay"
	"face-overlay/src/renderloop"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Options configures the OS window.
type Options struct {
	Title string
	// TPS is the tick rate; ebiten calls Update this many times a second.
	TPS int
}

// Game adapts the render loop to ebiten. Update is the tick: pointer
// events and the loop's Tick both run there, on ebiten's game goroutine,
// so drag and rotation never interleave.
type Game struct {
	ctx  context.Context
	loop *renderloop.Loop

	sprite   *ebiten.Image
	revision uint64
	size     image.Point
	pos      image.Point
	shown    bool
	synced   bool
}

// NewGame wraps loop. Update returns ebiten.Termination once ctx is done.
func NewGame(ctx context.Context, loop *renderloop.Loop) *Game {
	return &Game{ctx: ctx, loop: loop}
}

// Run opens a frameless, floating, transparent window with no taskbar entry
// and blocks until ctx is cancelled or the window is closed.
func Run(ctx context.Context, loop *renderloop.Loop, opts Options) error {
	win := loop.Window()
	size, pos := win.Size(), win.TopLeft()

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetWindowSize(size.X, size.Y)
	ebiten.SetWindowPosition(pos.X, pos.Y)
	if opts.TPS > 0 {
		ebiten.SetTPS(opts.TPS)
	}

	g := NewGame(ctx, loop)
	log.Printf("Display: opening %dx%d overlay at (%d,%d), %d TPS", size.X, size.Y, pos.X, pos.Y, ebiten.TPS())
	return ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{
		ScreenTransparent: true,
		SkipTaskbar:       true,
		InitUnfocused:     true,
	})
}

// ScaleFactor is the device scale factor of the monitor the overlay is on,
// 1 when unknown. ebiten owns process DPI awareness; window positions and
// sizes are device-independent pixels, physical pixels divided by this.
func ScaleFactor() float64 {
	m := ebiten.Monitor()
	if m == nil {
		return 1
	}
	return normalizeScale(m.DeviceScaleFactor())
}

func normalizeScale(s float64) float64 {
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return 1
	}
	return s
}

// Update implements ebiten.Game
func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}

	wx, wy := ebiten.WindowPosition()
	cx, cy := ebiten.CursorPosition()
	dispatchPointer(g.loop.Window(), image.Pt(wx+cx, wy+cy), pointerState{
		justPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		held:         ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		justReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	})

	g.loop.Tick()
	g.sync()
	return nil
}

type pointerState struct {
	justPressed  bool
	held         bool
	justReleased bool
}

// dispatchPointer feeds one frame of left-button state into the drag state
// machine. p is in screen coordinates.
func dispatchPointer(win *overlay.Window, p image.Point, st pointerState) {
	switch {
	case st.justPressed:
		win.OnPressStart(p)
	case st.held:
		win.OnPressMove(p)
	}
	if st.justReleased {
		win.OnPressEnd()
	}
}

// sync pushes window changes to the OS window and the GPU sprite.
func (g *Game) sync() {
	win := g.loop.Window()
	if g.synced && win.Revision() == g.revision {
		return
	}
	g.revision = win.Revision()

	if win.Visible() != g.shown || !g.synced {
		g.shown = win.Visible()
		// Hidden overlays let clicks fall through to whatever is below.
		ebiten.SetWindowMousePassthrough(!g.shown)
	}
	if !g.shown {
		g.synced = true
		return
	}

	if sz := win.Size(); sz != g.size {
		g.size = sz
		ebiten.SetWindowSize(sz.X, sz.Y)
	}
	if p := win.TopLeft(); p != g.pos {
		g.pos = p
		ebiten.SetWindowPosition(p.X, p.Y)
	}
	if g.sprite != nil {
		g.sprite.Deallocate()
	}
	g.sprite = ebiten.NewImageFromImage(win.Frame())
	g.synced = true
}

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	if !g.shown || g.sprite == nil {
		return
	}
	screen.DrawImage(g.sprite, nil)
}

// Layout implements ebiten.Game. The screen matches the frame pixel for pixel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return layoutSize(g.size, outsideWidth, outsideHeight)
}

func layoutSize(frame image.Point, outsideWidth, outsideHeight int) (int, int) {
	if frame.X <= 0 || frame.Y <= 0 {
		return max(outsideWidth, 1), max(outsideHeight, 1)
	}
	return frame.X, frame.Y
}
