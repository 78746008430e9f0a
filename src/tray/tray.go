package tray

import (
	"log"
	"sync"

	"github.com/getlantern/systray"
)

// Config wires menu clicks to the overlay. Callbacks run on the tray
// goroutine and must only post requests into the render loop.
type Config struct {
	Title        string
	Tooltip      string
	Icon         []byte
	OnToggle     func()
	OnChooseSkin func()
	OnPasteSkin  func()
	OnExit       func()
}

// Tray is the notification-area menu.
type Tray struct {
	cfg   Config
	mu    sync.Mutex
	ready chan struct{}
	once  sync.Once
}

func New(cfg Config) *Tray {
	return &Tray{cfg: cfg, ready: make(chan struct{})}
}

// Run blocks running the native tray loop. Start it on its own goroutine.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	t.mu.Lock()
	if len(t.cfg.Icon) > 0 {
		systray.SetIcon(t.cfg.Icon)
	}
	close(t.ready)
	t.mu.Unlock()
	systray.SetTitle(t.cfg.Title)
	systray.SetTooltip(t.cfg.Tooltip)

	mToggle := systray.AddMenuItem("Show/Hide", "Toggle the overlay")
	mChoose := systray.AddMenuItem("Choose skin...", "Load a new skin image")
	mPaste := systray.AddMenuItem("Paste skin from clipboard", "Use the clipboard image as skin")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Close the overlay")
	log.Printf("Tray ready")

	go func() {
		for {
			select {
			case <-mToggle.ClickedCh:
				call(t.cfg.OnToggle)
			case <-mChoose.ClickedCh:
				// The chooser blocks; keep the menu responsive.
				go call(t.cfg.OnChooseSkin)
			case <-mPaste.ClickedCh:
				call(t.cfg.OnPasteSkin)
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {
	t.once.Do(func() {
		log.Printf("Tray exited")
		call(t.cfg.OnExit)
	})
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// SetIcon replaces the tray icon once the tray is ready. Safe from any goroutine.
func (t *Tray) SetIcon(icon []byte) {
	if len(icon) == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	select {
	case <-t.ready:
		systray.SetIcon(icon)
	default:
		t.cfg.Icon = icon
	}
}

// Destroy quits the tray loop.
func (t *Tray) Destroy() {
	systray.Quit()
}
