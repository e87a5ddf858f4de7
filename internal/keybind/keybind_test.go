package keybind

import (
	"strconv"
	"testing"
)

// S4 — binding match: Mod4+Shift+q -> kill. Shift and Mod4 are already
// held (their own keysyms are in the held set, as sway reports modifier
// keys through the same keyboard event stream as everything else); q is
// the key being pressed now, and the event carries the resolved modifier
// mask.
func TestS4BindingMatchFiresOnceAndSwallows(t *testing.T) {
	mode := NewMode("default")
	if _, err := mode.AddBinding("Mod4+Shift+q", "kill", false); err != nil {
		t.Fatalf("AddBinding: %v", err)
	}

	m := NewMatcher(nil)
	m.HandleKey(mode, "shift_L", Pressed, ModShift)
	m.HandleKey(mode, "super_L", Pressed, ModShift|ModMod4)

	cmd, ok := m.HandleKey(mode, "q", Pressed, ModShift|ModMod4)
	if !ok || cmd != "kill" {
		t.Fatalf("HandleKey(q, Pressed) = (%q,%v), want (kill,true)", cmd, ok)
	}

	// Releasing q must not fire the binding, which was not declared
	// with --release.
	if cmd, ok := m.HandleKey(mode, "q", Released, ModShift|ModMod4); ok {
		t.Fatalf("release of a non---release binding should not fire: got %q", cmd)
	}
}

func TestReleaseBindingOnlyFiresOnRelease(t *testing.T) {
	mode := NewMode("default")
	mode.AddBinding("Mod4+r", "exec screenshot", true)

	m := NewMatcher(nil)
	m.HandleKey(mode, "super_L", Pressed, ModMod4)
	if _, ok := m.HandleKey(mode, "r", Pressed, ModMod4); ok {
		t.Fatalf("a --release binding must not fire on press")
	}
	cmd, ok := m.HandleKey(mode, "r", Released, ModMod4)
	if !ok || cmd != "exec screenshot" {
		t.Fatalf("HandleKey(r, Released) = (%q,%v), want (exec screenshot,true)", cmd, ok)
	}
}

func TestLongestMatchWinsOverShorterSubsetBinding(t *testing.T) {
	mode := NewMode("default")
	mode.AddBinding("Mod4+a", "short", false)
	mode.AddBinding("Mod4+a+b", "long", false)

	m := NewMatcher(nil)
	m.HandleKey(mode, "super_L", Pressed, ModMod4)
	m.HandleKey(mode, "a", Pressed, ModMod4)
	cmd, ok := m.HandleKey(mode, "b", Pressed, ModMod4)
	if !ok || cmd != "long" {
		t.Fatalf("HandleKey with both bindings satisfied = (%q,%v), want (long,true)", cmd, ok)
	}
}

func TestDeclarationOrderTieBreaksEqualLengthBindings(t *testing.T) {
	mode := NewMode("default")
	mode.AddBinding("Mod4+a", "first", false)
	mode.AddBinding("Mod4+a", "second", false)

	m := NewMatcher(nil)
	m.HandleKey(mode, "super_L", Pressed, ModMod4)
	cmd, ok := m.HandleKey(mode, "a", Pressed, ModMod4)
	if !ok || cmd != "first" {
		t.Fatalf("tie should resolve to the first-declared binding, got (%q,%v)", cmd, ok)
	}
}

func TestParseBindsymRejectsModifiersOnly(t *testing.T) {
	if _, _, err := ParseBindsym("Mod4+Shift"); err == nil {
		t.Fatalf("ParseBindsym with no keysym should error")
	}
}

func TestHeldKeysCapacityBound(t *testing.T) {
	var h HeldKeys
	for i := 0; i < MaxHeld+10; i++ {
		h.Press("k" + strconv.Itoa(i))
	}
	if h.Len() != MaxHeld {
		t.Fatalf("held set length = %d, want exactly MaxHeld=%d", h.Len(), MaxHeld)
	}
}
