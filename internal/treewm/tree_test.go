package treewm

import (
	"testing"

	"github.com/wmcore/corewm/internal/arena"
)

func newTestTree(t *testing.T) (*Tree, arena.ID, arena.ID) {
	t.Helper()
	tr := New(nil)
	output := tr.NewOutput("DP-1", "DP-1")
	ws, ok := tr.NewWorkspace(output, "1")
	if !ok {
		t.Fatalf("NewWorkspace failed")
	}
	return tr, output, ws
}

func TestAddChildSetsFocusedOnFirstChild(t *testing.T) {
	tr, _, ws := newTestTree(t)
	v := tr.NewView(nil, "app", "title", 0, 0)
	tr.AddChild(ws, v)
	w := tr.MustGet(ws)
	if w.FocusedChild != v {
		t.Fatalf("FocusedChild = %v, want %v", w.FocusedChild, v)
	}
}

func TestAddChildPanicsOnReparent(t *testing.T) {
	tr, _, ws := newTestTree(t)
	v := tr.NewView(nil, "a", "t", 0, 0)
	tr.AddChild(ws, v)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic reparenting an attached node")
		}
	}()
	tr.AddChild(ws, v)
}

func TestAddRemoveChildRoundTrip(t *testing.T) {
	tr, _, ws := newTestTree(t)
	v1 := tr.NewView(nil, "a", "t1", 0, 0)
	v2 := tr.NewView(nil, "a", "t2", 0, 0)
	tr.AddChild(ws, v1)
	tr.AddChild(ws, v2)
	before := append([]arena.ID(nil), tr.MustGet(ws).Children.Slice()...)

	tr.RemoveChild(v2)
	tr.AddChild(ws, v2) // re-add at the end, as the round trip property only promises restoring prior value after remove

	// Remove + reinsert at same spot is the literal round trip; test that
	// specifically using InsertAt equivalent via AddSibling.
	tr.RemoveChild(v2)
	tr.AddSibling(v1, v2)
	after := tr.MustGet(ws).Children.Slice()
	if len(after) != len(before) || after[0] != before[0] || after[1] != before[1] {
		t.Fatalf("add_child(p,c); remove_child(c); restore did not round-trip: got %v, want %v", after, before)
	}
}

func TestWorkspaceNamesCaseInsensitiveUnique(t *testing.T) {
	tr, output, _ := newTestTree(t)
	if _, ok := tr.NewWorkspace(output, "1"); ok {
		t.Fatalf("expected NewWorkspace to reject case-insensitive duplicate of existing workspace name")
	}
	if id := tr.FindWorkspaceByName("1"); !id.Valid() {
		t.Fatalf("FindWorkspaceByName case-sensitive lookup failed")
	}
}

func TestContainerCollapsesToOneChild(t *testing.T) {
	tr, _, ws := newTestTree(t)
	v1 := tr.NewView(nil, "a", "t1", 0, 0)
	v2 := tr.NewView(nil, "a", "t2", 0, 0)
	tr.AddChild(ws, v1)
	container := tr.WrapInContainer(v1, LayoutHoriz)
	tr.AddChild(container, v2)

	tr.RemoveChild(v2)
	tr.Destroy(v2)

	// container should have collapsed, promoting v1 back into ws directly
	w := tr.MustGet(ws)
	if w.Children.Len() != 1 || w.Children.At(0) != v1 {
		t.Fatalf("expected container to collapse, promoting v1 into workspace; got children=%v", w.Children.Slice())
	}
	if _, ok := tr.Get(container); ok {
		t.Fatalf("collapsed container %v still resolves in arena", container)
	}
}

func TestContainerDestroyedWhenEmpty(t *testing.T) {
	tr, _, ws := newTestTree(t)
	v1 := tr.NewView(nil, "a", "t1", 0, 0)
	tr.AddChild(ws, v1)
	container := tr.WrapInContainer(v1, LayoutHoriz)
	tr.Destroy(v1)
	if _, ok := tr.Get(container); ok {
		t.Fatalf("container %v should have been destroyed once its sole child was destroyed", container)
	}
	if tr.MustGet(ws).Children.Len() != 0 {
		t.Fatalf("workspace should be empty after its only container's child was destroyed")
	}
}

func TestEmptyWorkspaceKeptAsLastOnOutput(t *testing.T) {
	tr, output, ws := newTestTree(t)
	v := tr.NewView(nil, "a", "t", 0, 0)
	tr.AddChild(ws, v)
	tr.Destroy(v)
	if !tr.Exists(ws) {
		t.Fatalf("last workspace on an output must be retained as an empty placeholder")
	}
	if tr.MustGet(output).Children.Len() != 1 {
		t.Fatalf("output should still have exactly one (placeholder) workspace")
	}
}

func TestEmptyWorkspaceDestroyedWhenNotLast(t *testing.T) {
	tr, output, ws1 := newTestTree(t)
	ws2, ok := tr.NewWorkspace(output, "2")
	if !ok {
		t.Fatalf("NewWorkspace(2) failed")
	}
	v := tr.NewView(nil, "a", "t", 0, 0)
	tr.AddChild(ws2, v)
	tr.Destroy(v)
	if tr.Exists(ws2) {
		t.Fatalf("empty non-last workspace should have been destroyed")
	}
	if !tr.Exists(ws1) {
		t.Fatalf("unrelated workspace should be unaffected")
	}
}

func TestFloatingRemovalFallsBackToFirstTiledChild(t *testing.T) {
	// Exercises the documented open-question behavior: removing a focused
	// floating view falls back to Children[0], not another floating sibling.
	tr, _, ws := newTestTree(t)
	tiled := tr.NewView(nil, "a", "tiled", 0, 0)
	tr.AddChild(ws, tiled)
	f1 := tr.NewView(nil, "a", "f1", 0, 0)
	f2 := tr.NewView(nil, "a", "f2", 0, 0)
	tr.AddFloating(ws, f1)
	tr.AddFloating(ws, f2)
	tr.update(ws, func(n *Node) { n.FocusedChild = f2 })

	tr.Destroy(f2)

	got := tr.MustGet(ws).FocusedChild
	if got != tiled {
		t.Fatalf("FocusedChild after removing focused floating view = %v, want first tiled child %v", got, tiled)
	}
}

func TestRemoveChildFocusFallbackPrevThenNext(t *testing.T) {
	tr, _, ws := newTestTree(t)
	v1 := tr.NewView(nil, "a", "1", 0, 0)
	v2 := tr.NewView(nil, "a", "2", 0, 0)
	v3 := tr.NewView(nil, "a", "3", 0, 0)
	tr.AddChild(ws, v1)
	tr.AddChild(ws, v2)
	tr.AddChild(ws, v3)
	tr.update(ws, func(n *Node) { n.FocusedChild = v2 })

	tr.Destroy(v2)
	if got := tr.MustGet(ws).FocusedChild; got != v1 {
		t.Fatalf("focus fallback (has previous) = %v, want previous sibling %v", got, v1)
	}

	tr.update(ws, func(n *Node) { n.FocusedChild = v1 })
	tr.Destroy(v1)
	if got := tr.MustGet(ws).FocusedChild; got != v3 {
		t.Fatalf("focus fallback (no previous) = %v, want next sibling %v", got, v3)
	}
}

func TestDestroyInvalidatesAllWeakReferences(t *testing.T) {
	tr, _, ws := newTestTree(t)
	v := tr.NewView(nil, "a", "t", 0, 0)
	tr.AddChild(ws, v)
	tr.update(ws, func(n *Node) { n.FocusedChild = v })

	tr.Destroy(v)

	if tr.Exists(v) {
		t.Fatalf("destroyed node still resolves")
	}
	if tr.MustGet(ws).FocusedChild == v {
		t.Fatalf("parent's FocusedChild still references destroyed node")
	}
	if tr.MustGet(ws).Children.IndexOf(v) != -1 {
		t.Fatalf("destroyed node still present in parent's children list")
	}
}

func TestDescendantSearchFloatingBeforeTiling(t *testing.T) {
	tr, _, ws := newTestTree(t)
	tiled := tr.NewView(nil, "a", "tiled", 0, 0)
	floating := tr.NewView(nil, "a", "floating", 0, 0)
	tr.AddChild(ws, tiled)
	tr.AddFloating(ws, floating)

	var order []arena.ID
	tr.FindDescendant(ws, func(n Node) bool {
		if n.Kind == KindView {
			order = append(order, n.ID)
		}
		return false
	})
	if len(order) != 2 || order[0] != floating || order[1] != tiled {
		t.Fatalf("descendant search order = %v, want floating then tiled", order)
	}
}

func TestVisibilityOnlyFocusedWorkspaceVisible(t *testing.T) {
	tr, output, ws1 := newTestTree(t)
	ws2, _ := tr.NewWorkspace(output, "2")
	tr.update(output, func(n *Node) { n.FocusedChild = ws1 })
	tr.RecomputeVisibility()
	if !tr.MustGet(ws1).Visible {
		t.Fatalf("focused workspace should be visible")
	}
	if tr.MustGet(ws2).Visible {
		t.Fatalf("unfocused workspace should not be visible")
	}
}

func TestVisibilityTabbedOnlyFocusedChildVisible(t *testing.T) {
	tr, _, ws := newTestTree(t)
	v1 := tr.NewView(nil, "a", "1", 0, 0)
	v2 := tr.NewView(nil, "a", "2", 0, 0)
	tr.AddChild(ws, v1)
	container := tr.WrapInContainer(v1, LayoutTabbed)
	tr.AddChild(container, v2)
	tr.update(container, func(n *Node) { n.FocusedChild = v2 })
	tr.update(ws, func(n *Node) { n.FocusedChild = container })

	tr.RecomputeVisibility()
	if tr.MustGet(v1).Visible {
		t.Fatalf("unfocused tab should not be visible")
	}
	if !tr.MustGet(v2).Visible {
		t.Fatalf("focused tab should be visible")
	}
}

func TestRemoveOutputMigratesWorkspaces(t *testing.T) {
	tr := New(nil)
	out1 := tr.NewOutput("A", "A")
	out2 := tr.NewOutput("B", "B")
	ws, _ := tr.NewWorkspace(out1, "1")
	v := tr.NewView(nil, "a", "t", 0, 0)
	tr.AddChild(ws, v)

	if !tr.RemoveOutput(out1) {
		t.Fatalf("RemoveOutput failed")
	}
	if tr.Exists(out1) {
		t.Fatalf("removed output still resolves")
	}
	if tr.MustGet(ws).Parent != out2 {
		t.Fatalf("workspace did not migrate to surviving output")
	}
}

func TestRemoveOutputRefusesWhenLast(t *testing.T) {
	tr, output, _ := newTestTree(t)
	if tr.RemoveOutput(output) {
		t.Fatalf("RemoveOutput should refuse to remove the only output")
	}
	if !tr.Exists(output) {
		t.Fatalf("sole output should remain")
	}
}
