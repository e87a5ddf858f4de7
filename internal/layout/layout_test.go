package layout

import (
	"testing"
	"time"

	"github.com/wmcore/corewm/internal/arena"
	"github.com/wmcore/corewm/internal/treewm"
)

func setupOneOutputWorkspace(t *testing.T, w, h int) (*treewm.Tree, *Engine, arena.ID, arena.ID) {
	t.Helper()
	tr := treewm.New(nil)
	out := tr.NewOutput("DP-1", "DP-1")
	tr.UpdateNode(out, func(n *treewm.Node) { n.X, n.Y, n.W, n.H = 0, 0, w, h })
	ws, _ := tr.NewWorkspace(out, "1")
	eng := New(tr, nil, DefaultOptions(), nil)
	return tr, eng, out, ws
}

// S1 — Horizontal split geometry.
func TestHorizSplitExactThirds(t *testing.T) {
	tr, eng, _, ws := setupOneOutputWorkspace(t, 1920, 1080)
	tr.UpdateNode(ws, func(n *treewm.Node) { n.Layout = treewm.LayoutHoriz })
	a := tr.NewView(nil, "a", "A", 0, 0)
	b := tr.NewView(nil, "a", "B", 0, 0)
	c := tr.NewView(nil, "a", "C", 0, 0)
	tr.AddChild(ws, a)
	tr.AddChild(ws, b)
	tr.AddChild(ws, c)

	eng.Arrange(tr.Root(), NoHint, NoHint)

	want := []struct {
		id         arena.ID
		x, y, w, h int
	}{
		{a, 0, 0, 640, 1080},
		{b, 640, 0, 640, 1080},
		{c, 1280, 0, 640, 1080},
	}
	for _, w := range want {
		n := tr.MustGet(w.id)
		if n.X != w.x || n.Y != w.y || n.W != w.w || n.H != w.h {
			t.Fatalf("node %v geometry = (%d,%d,%d,%d), want (%d,%d,%d,%d)", w.id, n.X, n.Y, n.W, n.H, w.x, w.y, w.w, w.h)
		}
	}
	last := tr.MustGet(c)
	if last.X+last.W != 1920 {
		t.Fatalf("last child does not absorb remainder: x+w = %d, want 1920", last.X+last.W)
	}
}

// S2 — Pixel drift: odd width 1921 so remainder lands on the last child.
func TestHorizSplitPixelDrift(t *testing.T) {
	tr, eng, _, ws := setupOneOutputWorkspace(t, 1921, 1080)
	tr.UpdateNode(ws, func(n *treewm.Node) { n.Layout = treewm.LayoutHoriz })
	a := tr.NewView(nil, "a", "A", 0, 0)
	b := tr.NewView(nil, "a", "B", 0, 0)
	c := tr.NewView(nil, "a", "C", 0, 0)
	tr.AddChild(ws, a)
	tr.AddChild(ws, b)
	tr.AddChild(ws, c)

	eng.Arrange(tr.Root(), NoHint, NoHint)

	wa, wb, wc := tr.MustGet(a).W, tr.MustGet(b).W, tr.MustGet(c).W
	if wa != 640 || wb != 640 || wc != 641 {
		t.Fatalf("widths = %d,%d,%d; want 640,640,641", wa, wb, wc)
	}
	if wa+wb+wc != 1921 {
		t.Fatalf("sum of widths = %d, want 1921", wa+wb+wc)
	}
}

func TestArrangeIdempotent(t *testing.T) {
	tr, eng, _, ws := setupOneOutputWorkspace(t, 1920, 1080)
	tr.UpdateNode(ws, func(n *treewm.Node) { n.Layout = treewm.LayoutHoriz })
	a := tr.NewView(nil, "a", "A", 0, 0)
	b := tr.NewView(nil, "a", "B", 0, 0)
	tr.AddChild(ws, a)
	tr.AddChild(ws, b)

	eng.Arrange(tr.Root(), NoHint, NoHint)
	first := snapshot(tr, []arena.ID{a, b})
	eng.Arrange(tr.Root(), NoHint, NoHint)
	second := snapshot(tr, []arena.ID{a, b})

	if first != second {
		t.Fatalf("arrange is not idempotent: first=%v second=%v", first, second)
	}
}

func snapshot(tr *treewm.Tree, ids []arena.ID) string {
	s := ""
	for _, id := range ids {
		n := tr.MustGet(id)
		s += mustSprintf(n.X, n.Y, n.W, n.H)
	}
	return s
}

func mustSprintf(x, y, w, h int) string {
	return "|" + itoa(x) + "," + itoa(y) + "," + itoa(w) + "," + itoa(h)
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func TestSingleChildTakesFullWidth(t *testing.T) {
	tr, eng, _, ws := setupOneOutputWorkspace(t, 1920, 1080)
	a := tr.NewView(nil, "a", "A", 0, 0)
	tr.AddChild(ws, a)

	eng.Arrange(tr.Root(), NoHint, NoHint)

	n := tr.MustGet(a)
	if n.W != 1920 || n.H != 1080 {
		t.Fatalf("sole child geometry = %dx%d, want 1920x1080", n.W, n.H)
	}
}

func TestTabbedChildrenGetFullContentRectMinusHeader(t *testing.T) {
	tr, eng, _, ws := setupOneOutputWorkspace(t, 1920, 1080)
	tr.UpdateNode(ws, func(n *treewm.Node) { n.Layout = treewm.LayoutTabbed })
	a := tr.NewView(nil, "a", "A", 0, 0)
	b := tr.NewView(nil, "a", "B", 0, 0)
	tr.AddChild(ws, a)
	tr.AddChild(ws, b)
	tr.UpdateNode(ws, func(n *treewm.Node) { n.FocusedChild = b })

	eng.Arrange(tr.Root(), NoHint, NoHint)

	headerH := DefaultOptions().TabStripHeight
	for _, id := range []arena.ID{a, b} {
		n := tr.MustGet(id)
		if n.W != 1920 || n.H != 1080-headerH || n.Y != headerH {
			t.Fatalf("tab %v geometry = (y=%d,%dx%d), want (y=%d,%dx%d)", id, n.Y, n.W, n.H, headerH, 1920, 1080-headerH)
		}
	}
	tr.RecomputeVisibility()
	if tr.MustGet(a).Visible {
		t.Fatalf("unfocused tab should not be visible")
	}
	if !tr.MustGet(b).Visible {
		t.Fatalf("focused tab should be visible")
	}
}

func TestFullscreenViewTakesOutputRect(t *testing.T) {
	tr, eng, out, ws := setupOneOutputWorkspace(t, 1920, 1080)
	a := tr.NewView(nil, "a", "A", 0, 0)
	tr.AddChild(ws, a)
	tr.UpdateNode(a, func(n *treewm.Node) { n.IsFullscreen = true })

	eng.Arrange(tr.Root(), NoHint, NoHint)

	n := tr.MustGet(a)
	o := tr.MustGet(out)
	if n.X != o.X || n.Y != o.Y || n.W != o.W || n.H != o.H {
		t.Fatalf("fullscreen view geometry = (%d,%d,%d,%d), want output rect (%d,%d,%d,%d)", n.X, n.Y, n.W, n.H, o.X, o.Y, o.W, o.H)
	}
}

func TestTransactionCommitsOnAllAcksOrTimeout(t *testing.T) {
	tx := Begin([]treewm.SurfaceHandle{"a", "b"}, 50*time.Millisecond)
	if tx.Ready() {
		t.Fatalf("transaction should not be ready before any ack")
	}
	tx.AckView("a")
	if tx.Ready() {
		t.Fatalf("transaction should not be ready with one pending ack")
	}
	tx.AckView("b")
	if !tx.Ready() {
		t.Fatalf("transaction should be ready once all views ack")
	}

	tx2 := Begin([]treewm.SurfaceHandle{"x"}, 10*time.Millisecond)
	if tx2.TimedOut(time.Now()) {
		t.Fatalf("transaction should not be timed out immediately")
	}
	if !tx2.TimedOut(time.Now().Add(20 * time.Millisecond)) {
		t.Fatalf("transaction should be timed out after its deadline")
	}
	tx2.Commit()
	if tx2.TimedOut(time.Now().Add(time.Hour)) {
		t.Fatalf("a committed transaction should never report TimedOut")
	}
}
