package eventloop

// keysymName maps a subset of the X11 keysym space to the lowercase
// names keybind.ParseBindsym/Matcher expect. Printable ASCII keysyms
// equal their code point, the same convention X11's keysymdef.h uses;
// the modifier keysyms below are its XK_Shift_L-style constants. This
// table is intentionally small — enough to drive S4-style scenarios and
// the demo backends' own key delivery — not a full XKB keysym database,
// which belongs in a real compositor's backend, not the WM core.
var namedKeysyms = map[uint32]string{
	0xffe1: "shift_l",
	0xffe2: "shift_r",
	0xffe3: "control_l",
	0xffe4: "control_r",
	0xffe9: "alt_l",
	0xffea: "alt_r",
	0xffeb: "super_l",
	0xffec: "super_r",
	0xff1b: "escape",
	0xff0d: "return",
	0xff09: "tab",
	0xff08: "backspace",
	0xff51: "left",
	0xff52: "up",
	0xff53: "right",
	0xff54: "down",
}

func keysymName(sym uint32) string {
	if name, ok := namedKeysyms[sym]; ok {
		return name
	}
	if sym >= 0x20 && sym < 0x7f {
		return string(rune(sym))
	}
	return ""
}
