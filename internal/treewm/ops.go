package treewm

import (
	"github.com/wmcore/corewm/internal/arena"
	"github.com/wmcore/corewm/internal/wmerrors"
)

// AddChild appends child to parent's tiling children. It panics with a
// TreeInvariant error if child already has a parent. If parent had no
// children and no floating views before this call, child becomes
// parent's FocusedChild (spec §4.2).
func (t *Tree) AddChild(parent, child arena.ID) {
	c := t.MustGet(child)
	if c.Parent.Valid() {
		panic(wmerrors.Newf(wmerrors.TreeInvariant, "add_child: %v already has parent %v", child, c.Parent))
	}
	p := t.MustGet(parent)
	wasEmpty := p.Children.Len() == 0 && p.Floating.Len() == 0
	t.update(parent, func(n *Node) {
		n.Children.Append(child)
		if wasEmpty {
			n.FocusedChild = child
		}
	})
	t.update(child, func(n *Node) { n.Parent = parent })
}

// AddSibling inserts child immediately after anchor in anchor's parent's
// children list.
func (t *Tree) AddSibling(anchor, child arena.ID) {
	a := t.MustGet(anchor)
	parent := a.Parent
	p := t.MustGet(parent)
	idx := p.Children.IndexOf(anchor)
	if idx < 0 {
		panic(wmerrors.Newf(wmerrors.TreeInvariant, "add_sibling: anchor %v not found in parent %v", anchor, parent))
	}
	t.update(parent, func(n *Node) { n.Children.InsertAt(idx+1, child) })
	t.update(child, func(n *Node) { n.Parent = parent })
}

// ReplaceChild substitutes new for old in old's parent, in place,
// preserving position and the parent's FocusedChild if old was focused.
func (t *Tree) ReplaceChild(old, new arena.ID) {
	o := t.MustGet(old)
	parentID := o.Parent
	p := t.MustGet(parentID)
	wasFocused := p.FocusedChild == old

	if o.IsFloating {
		idx := p.Floating.IndexOf(old)
		t.update(parentID, func(n *Node) {
			n.Floating.RemoveAt(idx)
			n.Floating.InsertAt(idx, new)
		})
	} else {
		idx := p.Children.IndexOf(old)
		t.update(parentID, func(n *Node) {
			n.Children.RemoveAt(idx)
			n.Children.InsertAt(idx, new)
		})
	}
	t.update(new, func(n *Node) {
		n.Parent = parentID
		n.IsFloating = o.IsFloating
	})
	t.update(old, func(n *Node) { n.Parent = 0 })
	if wasFocused {
		t.update(parentID, func(n *Node) { n.FocusedChild = new })
	}
}

// AddFloating appends view to workspace's floating list and marks it
// floating.
func (t *Tree) AddFloating(workspace, view arena.ID) {
	t.update(workspace, func(n *Node) { n.Floating.Append(view) })
	t.update(view, func(n *Node) {
		n.Parent = workspace
		n.IsFloating = true
	})
}

// WrapInContainer materializes a new Container with the given layout in
// view's current position, with view as its sole child. It is normally
// only called for tiled views; wrapping a floating view would otherwise
// place a Container directly in a Workspace's floating list, which no
// command handler in this module does.
func (t *Tree) WrapInContainer(view arena.ID, layout Layout) arena.ID {
	v := t.MustGet(view)
	containerID := t.NewContainer(layout)
	t.ReplaceChild(view, containerID)
	t.update(containerID, func(n *Node) {
		n.Children.Append(view)
		n.FocusedChild = view
		n.Weight = v.Weight
	})
	t.update(view, func(n *Node) {
		n.Parent = containerID
		n.Weight = DefaultWeight
	})
	return containerID
}

// RemoveChild detaches child from its parent without freeing it, fixes up
// the parent's FocusedChild, and collapses the parent if it is now empty.
// Use Destroy instead when child (and its subtree) should also be freed.
func (t *Tree) RemoveChild(child arena.ID) {
	parent := t.detachFromParent(child)
	t.update(child, func(n *Node) { n.Parent = 0 })
	if parent.Valid() {
		t.collapseIfEmpty(parent)
	}
}

// Destroy recursively detaches and frees node and all of its descendants,
// then walks ancestors collapsing empty parents per invariant 4.
func (t *Tree) Destroy(node arena.ID) {
	if _, ok := t.Get(node); !ok {
		return
	}
	parent := t.detachFromParent(node)
	t.freeRecursive(node)
	if parent.Valid() {
		t.collapseIfEmpty(parent)
	}
}

// detachFromParent removes node from its parent's Children or Floating
// list and fixes up the parent's FocusedChild, returning the parent id
// (zero if node had none, i.e. node is Root).
//
// The floating-removal branch deliberately reproduces the source behavior
// spec.md §9 documents as a likely bug rather than "fixing" it: when the
// removed node was floating and focused, the fallback focus becomes
// Children[0] (the first tiled child), never another floating sibling.
func (t *Tree) detachFromParent(node arena.ID) arena.ID {
	n := t.MustGet(node)
	parentID := n.Parent
	if !parentID.Valid() {
		return 0
	}
	p := t.MustGet(parentID)
	wasFocused := p.FocusedChild == node

	if n.IsFloating {
		idx := p.Floating.IndexOf(node)
		if idx >= 0 {
			t.update(parentID, func(pp *Node) { pp.Floating.RemoveAt(idx) })
		}
		if wasFocused {
			after := t.MustGet(parentID)
			var newFocus arena.ID
			if after.Children.Len() > 0 {
				newFocus = after.Children.At(0)
			}
			t.update(parentID, func(pp *Node) { pp.FocusedChild = newFocus })
		}
		return parentID
	}

	idx := p.Children.IndexOf(node)
	if idx >= 0 {
		t.update(parentID, func(pp *Node) { pp.Children.RemoveAt(idx) })
	}
	if wasFocused {
		after := t.MustGet(parentID)
		var newFocus arena.ID
		if idx > 0 {
			if idx-1 < after.Children.Len() {
				newFocus = after.Children.At(idx - 1)
			}
		} else if after.Children.Len() > 0 {
			newFocus = after.Children.At(0)
		}
		t.update(parentID, func(pp *Node) { pp.FocusedChild = newFocus })
	}
	return parentID
}

// freeRecursive deletes node and every descendant from the arena without
// touching any parent's child list (the caller is responsible for having
// already detached the subtree's root).
func (t *Tree) freeRecursive(node arena.ID) {
	n, ok := t.Get(node)
	if !ok {
		return
	}
	for _, c := range append([]arena.ID(nil), n.Children.Slice()...) {
		t.freeRecursive(c)
	}
	for _, c := range append([]arena.ID(nil), n.Floating.Slice()...) {
		t.freeRecursive(c)
	}
	t.nodes.Delete(node)
}

// collapseIfEmpty applies invariant 4 at id: a Container with zero
// children is destroyed, one with exactly one child is collapsed (the
// child is promoted into the container's place); a Workspace with no
// tiled or floating children is destroyed unless it is the only
// workspace on its Output, in which case it is retained as a placeholder.
// Root and Output are never collapsed by this path.
func (t *Tree) collapseIfEmpty(id arena.ID) {
	if !id.Valid() {
		return
	}
	n, ok := t.Get(id)
	if !ok {
		return
	}
	switch n.Kind {
	case KindRoot, KindOutput, KindView:
		return
	case KindWorkspace:
		if n.Children.Len() == 0 && n.Floating.Len() == 0 && !t.isLastWorkspaceOnOutput(n.Parent, id) {
			t.Destroy(id)
		}
	case KindContainer:
		switch n.Children.Len() {
		case 0:
			t.Destroy(id)
		case 1:
			t.promoteOnlyChild(id)
		}
	}
}

// promoteOnlyChild replaces containerID with its single remaining child
// in containerID's parent, then frees containerID.
func (t *Tree) promoteOnlyChild(containerID arena.ID) {
	c := t.MustGet(containerID)
	if c.Children.Len() != 1 {
		return
	}
	childID := c.Children.At(0)
	t.update(containerID, func(n *Node) { n.Children.RemoveAt(0) })
	t.update(childID, func(n *Node) {
		n.Parent = 0
		n.Weight = c.Weight
	})
	t.ReplaceChild(containerID, childID)
	t.nodes.Delete(containerID)
}

// RenameWorkspace renames ws, refusing (ok=false) if newName collides
// case-insensitively with a different live workspace (invariant 3).
func (t *Tree) RenameWorkspace(ws arena.ID, newName string) bool {
	n, ok := t.Get(ws)
	if !ok || n.Kind != KindWorkspace {
		return false
	}
	if existing := t.FindWorkspaceByName(newName); existing.Valid() && existing != ws {
		return false
	}
	t.update(ws, func(node *Node) { node.Name = newName })
	return true
}

// MoveSibling swaps node with the sibling delta positions away in its
// parent's tiling order (delta=-1 moves it earlier, +1 later), reporting
// ok=false if there is no such sibling. Used by the "move left/right/
// up/down" command to reorder within a container without changing the
// tree's shape.
func (t *Tree) MoveSibling(node arena.ID, delta int) bool {
	n, ok := t.Get(node)
	if !ok || !n.Parent.Valid() {
		return false
	}
	p, ok := t.Get(n.Parent)
	if !ok {
		return false
	}
	idx := p.Children.IndexOf(node)
	if idx < 0 {
		return false
	}
	newIdx := idx + delta
	if newIdx < 0 || newIdx >= p.Children.Len() {
		return false
	}
	t.update(n.Parent, func(parent *Node) { parent.Children.Swap(idx, newIdx) })
	return true
}

// isLastWorkspaceOnOutput reports whether ws is the only workspace child
// of output.
func (t *Tree) isLastWorkspaceOnOutput(output, ws arena.ID) bool {
	o, ok := t.Get(output)
	if !ok || o.Kind != KindOutput {
		return false
	}
	return o.Children.Len() == 1 && o.Children.At(0) == ws
}
