package hotkey

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	gohook "github.com/robotn/gohook"
)

// ErrUnknownKey is returned when a key name has no mapping.
var ErrUnknownKey = errors.New("unknown key name")

// Tracker keeps the held/released level of one key combination, fed by the
// global gohook event stream. Pressed is safe to call from any goroutine.
type Tracker struct {
	combo   string
	keys    []trackedKey
	pressed atomic.Bool
	stop    sync.Once
	done    chan struct{}
}

type trackedKey struct {
	name  string
	codes []uint16
	down  bool
}

// Listen starts the global hook and returns a tracker for combo ("F10",
// "Ctrl+Alt+Q"). An error means global key state is not available.
func Listen(combo string) (*Tracker, error) {
	names := parseHotkey(combo)
	t := &Tracker{combo: combo, done: make(chan struct{})}
	for _, name := range names {
		code, ok := gohook.Keycode[name]
		if !ok {
			return nil, fmt.Errorf("hotkey %q: %w: %s", combo, ErrUnknownKey, name)
		}
		t.keys = append(t.keys, trackedKey{name: name, codes: []uint16{code}})
	}
	if len(t.keys) == 0 {
		return nil, fmt.Errorf("hotkey %q: no keys", combo)
	}

	evChan := startHook()
	if evChan == nil {
		return nil, errors.New("gohook.Start() returned nil channel")
	}
	log.Printf("Hotkey tracker listening for %s", combo)

	go func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in hotkey goroutine: %v", r)
			}
		}()
		for ev := range evChan {
			switch ev.Kind {
			case gohook.KeyDown, gohook.KeyHold:
				t.observe(ev.Keycode, true)
			case gohook.KeyUp:
				t.observe(ev.Keycode, false)
			}
		}
		log.Printf("Hotkey event channel closed")
		t.pressed.Store(false)
	}()
	return t, nil
}

// startHook is swapped in tests.
var startHook = func() chan gohook.Event { return gohook.Start() }

func (t *Tracker) observe(code uint16, down bool) {
	all := true
	for i := range t.keys {
		for _, c := range t.keys[i].codes {
			if c == code {
				t.keys[i].down = down
				break
			}
		}
		all = all && t.keys[i].down
	}
	t.pressed.Store(all)
}

// Pressed reports whether every key of the combination is currently held.
func (t *Tracker) Pressed() bool { return t.pressed.Load() }

// Close ends the global hook.
func (t *Tracker) Close() {
	t.stop.Do(func() {
		gohook.End()
		log.Printf("Hotkey tracker for %s closed", t.combo)
	})
}

// parseHotkey converts a hotkey string like "Ctrl+Alt+q" to normalized key names
func parseHotkey(hotkeyConfig string) []string {
	var keys []string
	for _, part := range strings.Split(strings.ToLower(hotkeyConfig), "+") {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			continue
		case "control":
			keys = append(keys, "ctrl")
		case "win", "cmd", "super":
			keys = append(keys, "cmd")
		default:
			keys = append(keys, part)
		}
	}
	return keys
}

var specialVirtualKeys = map[string][]uint16{
	"ctrl":      {162, 163}, // VK_LCONTROL, VK_RCONTROL
	"alt":       {164, 165}, // VK_LMENU, VK_RMENU
	"shift":     {160, 161}, // VK_LSHIFT, VK_RSHIFT
	"cmd":       {91, 92},   // VK_LWIN, VK_RWIN
	"space":     {32},
	"enter":     {13},
	"return":    {13},
	"esc":       {27},
	"escape":    {27},
	"tab":       {9},
	"backspace": {8},
	"delete":    {46},
	"insert":    {45},
	"home":      {36},
	"end":       {35},
	"pageup":    {33},
	"pagedown":  {34},
	"left":      {37},
	"up":        {38},
	"right":     {39},
	"down":      {40},
}

// VirtualKeys maps a key name to its Windows virtual key codes. Modifiers
// return both left and right variants.
func VirtualKeys(keyName string) []uint16 {
	keyName = strings.ToLower(strings.TrimSpace(keyName))
	if codes, ok := specialVirtualKeys[keyName]; ok {
		return codes
	}
	if len(keyName) == 1 {
		c := keyName[0]
		switch {
		case c >= 'a' && c <= 'z':
			return []uint16{uint16('A' + c - 'a')}
		case c >= '0' && c <= '9':
			return []uint16{uint16(c)}
		}
	}
	// F1..F24 are VK_F1 (112) onwards.
	if strings.HasPrefix(keyName, "f") {
		if n, err := strconv.Atoi(keyName[1:]); err == nil && n >= 1 && n <= 24 {
			return []uint16{uint16(111 + n)}
		}
	}
	log.Printf("WARNING: Unknown key name '%s', cannot map to virtual key", keyName)
	return nil
}

// ComboVirtualKeys resolves every key of combo, one slice per key.
func ComboVirtualKeys(combo string) ([][]uint16, error) {
	var out [][]uint16
	for _, name := range parseHotkey(combo) {
		codes := VirtualKeys(name)
		if len(codes) == 0 {
			return nil, fmt.Errorf("hotkey %q: %w: %s", combo, ErrUnknownKey, name)
		}
		out = append(out, codes)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("hotkey %q: no keys", combo)
	}
	return out, nil
}
