package layout

import "github.com/wmcore/corewm/internal/treewm"

// arrangeLinear implements the Horiz/Vert Container case of spec §4.3: a
// scale factor stretches (or shrinks) the children's current extents
// along the main axis to fill [x,y,w,h]'s main-axis length exactly, with
// the last child absorbing whatever pixel remainder rounding leaves
// behind so the row/column sums to the imposed size with no drift
// (invariant 5, scenarios S1/S2).
func (e *Engine) arrangeLinear(n treewm.Node, x, y, w, h int, horiz bool) {
	children := n.Children.Slice()
	if len(children) == 0 {
		return
	}

	main := w
	if !horiz {
		main = h
	}

	extents := make([]int, len(children))
	sum := 0
	for i, c := range children {
		cn, ok := e.tree.Get(c)
		if !ok {
			continue
		}
		extent := cn.W
		if !horiz {
			extent = cn.H
		}
		if extent <= 0 {
			// spec §9 / §4.3: the n==1 "fair share" division is guarded
			// to avoid dividing by zero; with exactly one child there is
			// nothing to share against, so it simply takes the whole
			// main-axis length.
			if len(children) == 1 {
				extent = main
			} else {
				extent = main / (len(children) - 1)
			}
		}
		extents[i] = extent
		sum += extent
	}

	scale := 1.0
	if float64(sum) >= 0.1 {
		scale = float64(main) / float64(sum)
	}
	// sum < 0.1 is treated as numerically degenerate (spec §4.3): skip the
	// resize to avoid a division blow-up, leaving extents as measured.

	pos := 0
	for i, c := range children {
		extent := extents[i]
		if scale != 1.0 {
			extent = roundToInt(float64(extent) * scale)
		}
		if i == len(children)-1 {
			extent = main - pos
			if extent < 0 {
				extent = 0
			}
		}

		cx, cy, cw, ch := x, y, w, h
		if horiz {
			cx = x + pos
			cw = extent
		} else {
			cy = y + pos
			ch = extent
		}
		e.setGeom(c, cx, cy, cw, ch)
		e.Arrange(c, cw, ch)
		pos += extent
	}
}

// roundToInt rounds v to the nearest integer once, at the pixel boundary,
// per spec §4.3's "never propagate fractional pixels across levels" rule.
func roundToInt(v float64) int {
	if v >= 0 {
		return int(v + 0.5)
	}
	return -int(-v + 0.5)
}
