// Package backend defines the narrow boundary between the window
// manager core and the host compositor/display stack (spec §4.8, C8).
// Nothing in internal/treewm, internal/layout, internal/focus or
// internal/command imports this package — each of those defines its own
// minimal slice of Backend (layout.SurfaceArranger, focus.Notifier,
// command.Closer) and accepts it at the point of use, the same "accept
// interfaces, return structs" shape golang-exp/shiny's
// screen.Screen/Drawer split shows throughout.
//
// focus.OutputLayout is deliberately NOT part of this boundary: it
// answers queries ("which Output is adjacent in direction X") in terms
// of treewm arena ids and tree-stored geometry, which only the core
// side (internal/eventloop) has — the backend only knows its own opaque
// output handles. eventloop adapts tree state to focus.OutputLayout
// itself; see eventloop's outputLayout type.
//
// Backend exists for the one place that DOES need the rest of the
// contract at once: internal/eventloop, which owns a concrete backend
// implementation and wires its narrower facets into the layout engine,
// seat and command context individually.
package backend

import (
	"github.com/wmcore/corewm/internal/command"
	"github.com/wmcore/corewm/internal/focus"
	"github.com/wmcore/corewm/internal/layout"
	"github.com/wmcore/corewm/internal/treewm"
)

// OutputInfo describes one physical or virtual display as the backend
// currently sees it (spec §4.8 "output enumeration with effective
// resolution, position, scale").
type OutputInfo struct {
	Handle            treewm.SurfaceHandle
	Name              string
	Description       string
	X, Y, W, H        int
	Scale             float64
}

// ViewMapEvent carries the fields of the "on_map" callback spec §4.8
// names explicitly: a newly mapped surface's identity, initial
// geometry and metadata.
type ViewMapEvent struct {
	Handle            treewm.SurfaceHandle
	Title, AppID      string
	DesiredW, DesiredH int
}

// KeyEvent is one keyboard event in a seat's input stream. Mods is a
// keybind.Mod bitmask; defined here rather than importing keybind so
// that package keeps depending only on the matcher's own types — the
// glue layer (eventloop) does the conversion from whatever the mods
// bits mean at this boundary.
type KeyEvent struct {
	Seat    string
	Keysym  uint32
	Mods    uint32
	Pressed bool
}

// PointerEvent is one pointer motion/button/axis event.
type PointerEvent struct {
	Seat           string
	Output         treewm.SurfaceHandle
	X, Y           int
	Buttons        uint32
	AxisDX, AxisDY float64
}

// TouchEvent is one touch-point update.
type TouchEvent struct {
	Seat   string
	ID     int
	X, Y   int
	Down   bool
}

// TabletEvent is one tablet-tool update; carried opaquely since no
// command or layout logic inspects its fields, only forwards them.
type TabletEvent struct {
	Seat string
	X, Y float64
	Pressure float64
}

// Core receives every callback the backend fires (spec §4.8's
// capability list, WM-core side). An eventloop.Loop is the only
// implementation; it exists as an interface so a faketest backend can
// be driven in isolation from a hand-written Core stub in faketest's
// own tests.
type Core interface {
	OutputAdded(info OutputInfo)
	OutputRemoved(handle treewm.SurfaceHandle)
	OutputChanged(info OutputInfo)

	ViewMapped(ev ViewMapEvent)
	ViewUnmapped(handle treewm.SurfaceHandle)
	ViewTitleChanged(handle treewm.SurfaceHandle, title string)
	ViewRequestFullscreen(handle treewm.SurfaceHandle, want bool)

	KeyInput(ev KeyEvent)
	PointerInput(ev PointerEvent)
	TouchInput(ev TouchEvent)
	TabletInput(ev TabletEvent)
}

// Backend is the full capability set spec §4.8 lists for "the abstract
// operations provided by the host compositor". It composes the
// already-published narrow interfaces (layout.SurfaceArranger,
// focus.Notifier) rather than redeclaring their methods, so a type
// satisfying Backend automatically satisfies each of those without
// extra glue, while those packages still only import their own slice.
type Backend interface {
	layout.SurfaceArranger
	focus.Notifier
	command.Closer

	// Outputs lists every currently known output.
	Outputs() []OutputInfo

	// Run starts delivering callbacks to core until the backend is
	// asked to stop via Shutdown. Implementations run their own I/O loop (e.g.
	// an X11 event read loop) on a private goroutine and call back into
	// core synchronously per event, preserving spec §5's per-device
	// ordering guarantee.
	Run(core Core) error

	// Shutdown tears down the backend's connection to the display/
	// input system and causes a blocked Run to return.
	Shutdown() error

	SendToBack(handle treewm.SurfaceHandle) error

	// WarpCursor moves the pointer to an absolute position, distinct
	// from focus.Notifier's WarpPointerToCenter (which only knows a
	// rectangle) — commands like "move mouse" in some configs need an
	// absolute warp.
	WarpCursor(x, y int) error

	// LoadCursor sets the cursor image shown on an output; demo
	// backends may no-op this.
	LoadCursor(output treewm.SurfaceHandle, name string) error

	// LayoutContains reports whether (x, y) physically lies within
	// output's bounds — spec §4.8's "layout_contains" query.
	LayoutContains(output treewm.SurfaceHandle, x, y int) bool
}
