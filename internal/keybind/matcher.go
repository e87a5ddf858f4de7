package keybind

import (
	"strings"

	"go.uber.org/zap"
)

// KeyState is the press/release state of a key event.
type KeyState uint8

const (
	Pressed KeyState = iota
	Released
)

// Matcher owns one seat's held-keys state and evaluates it against a
// Mode's bindings on every key event.
type Matcher struct {
	held HeldKeys
	log  *zap.Logger
}

// NewMatcher creates a Matcher. log may be nil.
func NewMatcher(log *zap.Logger) *Matcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Matcher{log: log}
}

// Held reports whether keysym is currently pressed, for diagnostics and
// tests.
func (m *Matcher) Held(keysym string) bool { return m.held.Contains(strings.ToLower(keysym)) }

// HandleKey updates the held-keys set for (keysym, state) and evaluates
// the current mode's bindings per spec §4.6 steps 1-6. It returns the
// command to run and ok=true if a binding fired; the caller is
// responsible for swallowing the key (not forwarding it to the focused
// view) whenever ok is true.
func (m *Matcher) HandleKey(mode *Mode, keysym string, state KeyState, mods Mod) (command string, ok bool) {
	keysym = strings.ToLower(keysym)
	switch state {
	case Pressed:
		m.held.Press(keysym)
	case Released:
		m.held.Release(keysym)
	}

	wantRelease := state == Released
	b := m.bestMatch(mode, mods, wantRelease)
	if b == nil {
		return "", false
	}
	m.log.Debug("binding matched", zap.Strings("keys", b.Keys), zap.String("command", b.Command))
	return b.Command, true
}

// bestMatch finds the matching binding with the most keysyms, tie-broken
// by earliest declaration order (spec §4.6 step 6).
func (m *Matcher) bestMatch(mode *Mode, mods Mod, wantRelease bool) *Binding {
	if mode == nil {
		return nil
	}
	var best *Binding
	for _, b := range mode.Bindings {
		if b.OnRelease != wantRelease {
			continue
		}
		if mods&b.Mods != b.Mods {
			continue
		}
		if !m.held.ContainsAll(b.Keys) {
			continue
		}
		if best == nil || len(b.Keys) > len(best.Keys) {
			best = b
		}
	}
	return best
}
