package keybind

import "strings"

// MaxHeld bounds the held-keys set; further presses are silently
// dropped rather than growing without limit (spec §4.6).
const MaxHeld = 32

// HeldKeys is the fixed-capacity ordered set of currently-pressed
// keysyms for one seat.
type HeldKeys struct {
	keys []string
}

// Contains reports whether keysym (already lowercased) is held.
func (h *HeldKeys) Contains(keysym string) bool {
	for _, k := range h.keys {
		if k == keysym {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every element of keys is held.
func (h *HeldKeys) ContainsAll(keys []string) bool {
	for _, k := range keys {
		if !h.Contains(k) {
			return false
		}
	}
	return true
}

// Press lowercases keysym and appends it if not already held and the
// set is below MaxHeld.
func (h *HeldKeys) Press(keysym string) {
	keysym = strings.ToLower(keysym)
	if h.Contains(keysym) || len(h.keys) >= MaxHeld {
		return
	}
	h.keys = append(h.keys, keysym)
}

// Release lowercases keysym and removes it, preserving the order of the
// remaining held keys.
func (h *HeldKeys) Release(keysym string) {
	keysym = strings.ToLower(keysym)
	for i, k := range h.keys {
		if k == keysym {
			h.keys = append(h.keys[:i], h.keys[i+1:]...)
			return
		}
	}
}

// Len reports how many keys are currently held.
func (h *HeldKeys) Len() int { return len(h.keys) }
