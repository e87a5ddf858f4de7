package focus

import (
	"github.com/wmcore/corewm/internal/arena"
	"github.com/wmcore/corewm/internal/treewm"
)

// Directional computes the node a directional focus command (spec §4.4)
// would move to, without changing focus itself — callers apply the
// result with SetFocus. It returns ok=false when there is nowhere to
// move (e.g. already at the edge of the tree with wrapping disabled).
func (s *Seat) Directional(tree *treewm.Tree, layout OutputLayout, dir Direction, forceWrap bool) (arena.ID, bool) {
	current := s.GetFocus(tree)
	if !current.Valid() {
		return 0, false
	}
	n, ok := tree.Get(current)
	if !ok {
		return 0, false
	}

	switch dir {
	case Parent:
		if !n.Parent.Valid() {
			return 0, false
		}
		p, ok := tree.Get(n.Parent)
		if !ok || p.Kind == treewm.KindOutput || p.Kind == treewm.KindRoot {
			return 0, false
		}
		return n.Parent, true
	case Child:
		return s.GetFocusInactive(tree, current), true
	case Prev, Next:
		return s.siblingStep(tree, current, dir)
	default:
		if n.IsFloating {
			return 0, false
		}
		return s.spatialStep(tree, layout, current, dir, forceWrap)
	}
}

func (s *Seat) siblingStep(tree *treewm.Tree, current arena.ID, dir Direction) (arena.ID, bool) {
	n := tree.MustGet(current)
	if !n.Parent.Valid() {
		return 0, false
	}
	p := tree.MustGet(n.Parent)
	list := &p.Children
	if n.IsFloating {
		list = &p.Floating
	}
	idx := list.IndexOf(current)
	if idx < 0 || list.Len() < 2 {
		return 0, false
	}
	step := 1
	if dir == Prev {
		step = -1
	}
	newIdx := (idx + step + list.Len()) % list.Len()
	return s.GetFocusInactive(tree, list.At(newIdx)), true
}

// axisLayouts returns the Layout values that arrange children along the
// axis dir steps through, and the step direction (+1 toward higher
// index, -1 toward lower).
func axisLayouts(dir Direction) (layouts [2]treewm.Layout, step int) {
	switch dir {
	case Left:
		return [2]treewm.Layout{treewm.LayoutHoriz, treewm.LayoutTabbed}, -1
	case Right:
		return [2]treewm.Layout{treewm.LayoutHoriz, treewm.LayoutTabbed}, 1
	case Up:
		return [2]treewm.Layout{treewm.LayoutVert, treewm.LayoutStacked}, -1
	default: // Down
		return [2]treewm.Layout{treewm.LayoutVert, treewm.LayoutStacked}, 1
	}
}

func matchesAxis(l treewm.Layout, layouts [2]treewm.Layout) bool {
	return l == layouts[0] || l == layouts[1]
}

// spatialStep walks up from current's parent chain looking for a sibling
// to step into along dir's axis; if it exhausts the current output
// without finding one, it asks layout for a physically adjacent output,
// and failing that, wraps within the nearest matching container or
// (failing that too) to the extreme opposite output, if forceWrap.
func (s *Seat) spatialStep(tree *treewm.Tree, layout OutputLayout, current arena.ID, dir Direction, forceWrap bool) (arena.ID, bool) {
	wantLayouts, step := axisLayouts(dir)
	start := tree.MustGet(current)
	var wrapCandidate arena.ID

	node := current
	for {
		n := tree.MustGet(node)
		if !n.Parent.Valid() {
			break
		}
		p, ok := tree.Get(n.Parent)
		if !ok {
			break
		}
		if p.Kind == treewm.KindOutput {
			if layout != nil {
				cx, cy := start.X+start.W/2, start.Y+start.H/2
				if adj, found := layout.AdjacentOutput(n.Parent, cx, cy, dir); found {
					if out, ok := tree.Get(adj); ok && out.FocusedChild.Valid() {
						return s.GetFocusInactive(tree, out.FocusedChild), true
					}
				}
			}
			break
		}
		if matchesAxis(p.Layout, wantLayouts) {
			idx := p.Children.IndexOf(node)
			if idx >= 0 {
				newIdx := idx + step
				if newIdx >= 0 && newIdx < p.Children.Len() {
					return s.GetFocusInactive(tree, p.Children.At(newIdx)), true
				}
				if !wrapCandidate.Valid() && p.Children.Len() > 1 {
					if step > 0 {
						wrapCandidate = p.Children.At(0)
					} else {
						wrapCandidate = p.Children.At(p.Children.Len() - 1)
					}
				}
			}
		}
		node = n.Parent
	}

	if !forceWrap {
		return 0, false
	}
	if wrapCandidate.Valid() {
		return s.GetFocusInactive(tree, wrapCandidate), true
	}
	if layout != nil {
		if ext, ok := layout.ExtremeOutput(dir); ok {
			if out, ok := tree.Get(ext); ok && out.FocusedChild.Valid() {
				return s.GetFocusInactive(tree, out.FocusedChild), true
			}
		}
	}
	return 0, false
}
