package eventloop

import (
	"github.com/wmcore/corewm/internal/arena"
	"github.com/wmcore/corewm/internal/focus"
	"github.com/wmcore/corewm/internal/treewm"
)

// outputLayout answers focus.OutputLayout's adjacency queries from the
// tree's own Output nodes (each carries X/Y/W/H in the global output
// layout, set by Loop.OutputAdded/OutputChanged). It is not part of
// package backend because those queries are expressed in treewm arena
// ids, which only the core side ever holds — see internal/backend's
// package doc for the full rationale.
type outputLayout struct {
	tree *treewm.Tree
}

// AdjacentOutput finds the nearest Output whose center lies in dir from
// (centerX, centerY), breaking ties by the smallest perpendicular
// offset — the natural generalization of "side by side" to an
// arbitrary output arrangement.
func (l *outputLayout) AdjacentOutput(from arena.ID, centerX, centerY int, dir focus.Direction) (arena.ID, bool) {
	var best arena.ID
	bestPrimary, bestSecondary := 0, 0
	found := false

	for _, out := range l.tree.Outputs() {
		if out == from {
			continue
		}
		n, ok := l.tree.Get(out)
		if !ok {
			continue
		}
		ocx, ocy := n.X+n.W/2, n.Y+n.H/2

		var primary, secondary int
		switch dir {
		case focus.Left:
			if ocx >= centerX {
				continue
			}
			primary, secondary = centerX-ocx, abs(ocy-centerY)
		case focus.Right:
			if ocx <= centerX {
				continue
			}
			primary, secondary = ocx-centerX, abs(ocy-centerY)
		case focus.Up:
			if ocy >= centerY {
				continue
			}
			primary, secondary = centerY-ocy, abs(ocx-centerX)
		case focus.Down:
			if ocy <= centerY {
				continue
			}
			primary, secondary = ocy-centerY, abs(ocx-centerX)
		default:
			continue
		}

		if !found || primary < bestPrimary || (primary == bestPrimary && secondary < bestSecondary) {
			best, bestPrimary, bestSecondary = out, primary, secondary
			found = true
		}
	}
	return best, found
}

// ExtremeOutput returns the output furthest in the direction opposite
// to dir — the one focus wraps to when force_focus_wrapping is set and
// there is no adjacent output left to move to in dir.
func (l *outputLayout) ExtremeOutput(dir focus.Direction) (arena.ID, bool) {
	var best arena.ID
	var bestCoord int
	found := false

	for _, out := range l.tree.Outputs() {
		n, ok := l.tree.Get(out)
		if !ok {
			continue
		}
		cx, cy := n.X+n.W/2, n.Y+n.H/2

		var coord int
		switch dir {
		case focus.Left, focus.Right:
			coord = cx
		case focus.Up, focus.Down:
			coord = cy
		default:
			return 0, false
		}

		// The extreme output is the wraparound target: failing to find
		// an adjacent output to the right means focus has reached the
		// rightmost output, so wrapping lands on the opposite extreme
		// (the leftmost one), not another rightmost one.
		wantMax := dir == focus.Left || dir == focus.Up
		if !found || (wantMax && coord > bestCoord) || (!wantMax && coord < bestCoord) {
			best, bestCoord = out, coord
			found = true
		}
	}
	return best, found
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

var _ focus.OutputLayout = (*outputLayout)(nil)
