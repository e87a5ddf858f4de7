package focus

import (
	"testing"

	"github.com/wmcore/corewm/internal/arena"
	"github.com/wmcore/corewm/internal/treewm"
)

// fakeLayout is a two-output side-by-side OutputLayout for the cross
// output directional tests (S3).
type fakeLayout struct {
	left, right arena.ID
}

func (f *fakeLayout) AdjacentOutput(from arena.ID, cx, cy int, dir Direction) (arena.ID, bool) {
	switch {
	case from == f.left && dir == Right:
		return f.right, true
	case from == f.right && dir == Left:
		return f.left, true
	default:
		return 0, false
	}
}

func (f *fakeLayout) ExtremeOutput(dir Direction) (arena.ID, bool) {
	switch dir {
	case Left:
		return f.right, true
	case Right:
		return f.left, true
	default:
		return 0, false
	}
}

func twoOutputSetup(t *testing.T) (*treewm.Tree, *fakeLayout, arena.ID, arena.ID) {
	t.Helper()
	tr := treewm.New(nil)
	left := tr.NewOutput("DP-1", "DP-1")
	right := tr.NewOutput("DP-2", "DP-2")
	tr.UpdateNode(left, func(n *treewm.Node) { n.X, n.Y, n.W, n.H = 0, 0, 1920, 1080 })
	tr.UpdateNode(right, func(n *treewm.Node) { n.X, n.Y, n.W, n.H = 1920, 0, 1920, 1080 })
	wsLeft, _ := tr.NewWorkspace(left, "1")
	wsRight, _ := tr.NewWorkspace(right, "2")
	viewLeft := tr.NewView(nil, "a", "Left", 0, 0)
	viewRight := tr.NewView(nil, "a", "Right", 0, 0)
	tr.AddChild(wsLeft, viewLeft)
	tr.AddChild(wsRight, viewRight)
	tr.UpdateNode(viewLeft, func(n *treewm.Node) { n.X, n.Y, n.W, n.H = 0, 0, 1920, 1080 })
	tr.UpdateNode(viewRight, func(n *treewm.Node) { n.X, n.Y, n.W, n.H = 1920, 0, 1920, 1080 })
	return tr, &fakeLayout{left: left, right: right}, viewLeft, viewRight
}

func TestSetFocusMovesChainToHeadAndUpdatesFocusedChild(t *testing.T) {
	tr := treewm.New(nil)
	out := tr.NewOutput("DP-1", "DP-1")
	ws := mustWorkspace(t, tr, out, "1")
	a := tr.NewView(nil, "a", "A", 0, 0)
	b := tr.NewView(nil, "a", "B", 0, 0)
	tr.AddChild(ws, a)
	tr.AddChild(ws, b)

	seat := NewSeat("seat0", nil, nil, false, nil)
	seat.SetFocus(tr, b, false)

	if got := seat.GetFocus(tr); got != b {
		t.Fatalf("GetFocus = %v, want %v", got, b)
	}
	if tr.MustGet(ws).FocusedChild != b {
		t.Fatalf("workspace FocusedChild not updated to %v", b)
	}
	if tr.MustGet(out).FocusedChild != ws {
		t.Fatalf("output FocusedChild not updated to workspace %v", ws)
	}
}

func TestGetFocusInactiveRecallsMostRecentDescendant(t *testing.T) {
	tr := treewm.New(nil)
	out := tr.NewOutput("DP-1", "DP-1")
	ws := mustWorkspace(t, tr, out, "1")
	a := tr.NewView(nil, "a", "A", 0, 0)
	b := tr.NewView(nil, "a", "B", 0, 0)
	tr.AddChild(ws, a)
	tr.AddChild(ws, b)

	seat := NewSeat("seat0", nil, nil, false, nil)
	seat.SetFocus(tr, a, false)
	seat.SetFocus(tr, b, false)
	seat.SetFocus(tr, ws, false) // focus the workspace itself, e.g. via workspace-switch

	if got := seat.GetFocus(tr); got != ws {
		t.Fatalf("GetFocus after focusing workspace = %v, want %v", got, ws)
	}
	if got := seat.GetFocusInactive(tr, ws); got != b {
		t.Fatalf("GetFocusInactive(ws) = %v, want most recently focused view %v", got, b)
	}
}

func TestDirectionalSiblingStep(t *testing.T) {
	tr := treewm.New(nil)
	out := tr.NewOutput("DP-1", "DP-1")
	ws := mustWorkspace(t, tr, out, "1")
	tr.UpdateNode(ws, func(n *treewm.Node) { n.Layout = treewm.LayoutHoriz })
	a := tr.NewView(nil, "a", "A", 0, 0)
	b := tr.NewView(nil, "a", "B", 0, 0)
	c := tr.NewView(nil, "a", "C", 0, 0)
	tr.AddChild(ws, a)
	tr.AddChild(ws, b)
	tr.AddChild(ws, c)

	seat := NewSeat("seat0", nil, nil, false, nil)
	seat.SetFocus(tr, b, false)

	if got, ok := seat.Directional(tr, nil, Right, false); !ok || got != c {
		t.Fatalf("Directional(Right) = (%v,%v), want (%v,true)", got, ok, c)
	}
	seat.SetFocus(tr, b, false)
	if got, ok := seat.Directional(tr, nil, Left, false); !ok || got != a {
		t.Fatalf("Directional(Left) = (%v,%v), want (%v,true)", got, ok, a)
	}
}

func TestDirectionalWithinContainerWrapsOnlyWithForceWrap(t *testing.T) {
	tr := treewm.New(nil)
	out := tr.NewOutput("DP-1", "DP-1")
	ws := mustWorkspace(t, tr, out, "1")
	tr.UpdateNode(ws, func(n *treewm.Node) { n.Layout = treewm.LayoutHoriz })
	a := tr.NewView(nil, "a", "A", 0, 0)
	b := tr.NewView(nil, "a", "B", 0, 0)
	tr.AddChild(ws, a)
	tr.AddChild(ws, b)

	seat := NewSeat("seat0", nil, nil, false, nil)
	seat.SetFocus(tr, b, false)

	if _, ok := seat.Directional(tr, nil, Right, false); ok {
		t.Fatalf("Directional(Right) at edge with forceWrap=false should fail")
	}
	if got, ok := seat.Directional(tr, nil, Right, true); !ok || got != a {
		t.Fatalf("Directional(Right) at edge with forceWrap=true = (%v,%v), want (%v,true)", got, ok, a)
	}
}

// S3 — cross-output directional focus and wraparound.
func TestDirectionalCrossesToAdjacentOutput(t *testing.T) {
	tr, layout, viewLeft, viewRight := twoOutputSetup(t)
	seat := NewSeat("seat0", nil, nil, false, nil)
	seat.SetFocus(tr, viewLeft, false)

	got, ok := seat.Directional(tr, layout, Right, false)
	if !ok || got != viewRight {
		t.Fatalf("Directional(Right) across outputs = (%v,%v), want (%v,true)", got, ok, viewRight)
	}
}

func TestDirectionalWrapsToExtremeOutputWhenForced(t *testing.T) {
	tr, layout, _, viewRight := twoOutputSetup(t)
	seat := NewSeat("seat0", nil, nil, false, nil)
	seat.SetFocus(tr, viewRight, false)

	if _, ok := seat.Directional(tr, layout, Right, false); ok {
		t.Fatalf("Directional(Right) past the last output with forceWrap=false should fail")
	}
	got, ok := seat.Directional(tr, layout, Right, true)
	leftView := tr.MustGet(tr.FindWorkspaceByName("1")).Children.At(0)
	if !ok || got != leftView {
		t.Fatalf("Directional(Right) wrap = (%v,%v), want (%v,true)", got, ok, leftView)
	}
}

func TestHandleDestroyedFallsBackToSiblingView(t *testing.T) {
	tr := treewm.New(nil)
	out := tr.NewOutput("DP-1", "DP-1")
	ws := mustWorkspace(t, tr, out, "1")
	a := tr.NewView(nil, "a", "A", 0, 0)
	b := tr.NewView(nil, "a", "B", 0, 0)
	tr.AddChild(ws, a)
	tr.AddChild(ws, b)

	seat := NewSeat("seat0", nil, nil, false, nil)
	seat.SetFocus(tr, b, false)

	former := AncestorChain(tr, tr.MustGet(b).Parent)
	tr.Destroy(b)
	seat.HandleDestroyed(tr, former, false)

	if got := seat.GetFocus(tr); got != a {
		t.Fatalf("GetFocus after destroying focused view = %v, want fallback %v", got, a)
	}
}

func TestHandleDestroyedFallsBackToWorkspaceWhenEmpty(t *testing.T) {
	tr := treewm.New(nil)
	out := tr.NewOutput("DP-1", "DP-1")
	ws := mustWorkspace(t, tr, out, "1")
	a := tr.NewView(nil, "a", "A", 0, 0)
	tr.AddChild(ws, a)

	seat := NewSeat("seat0", nil, nil, false, nil)
	seat.SetFocus(tr, a, false)

	former := AncestorChain(tr, tr.MustGet(a).Parent)
	tr.Destroy(a)
	seat.HandleDestroyed(tr, former, false)

	if got := seat.GetFocus(tr); got != ws {
		t.Fatalf("GetFocus after destroying last view = %v, want workspace %v", got, ws)
	}
}

func mustWorkspace(t *testing.T, tr *treewm.Tree, out arena.ID, name string) arena.ID {
	t.Helper()
	ws, ok := tr.NewWorkspace(out, name)
	if !ok {
		t.Fatalf("NewWorkspace(%q) failed", name)
	}
	return ws
}
