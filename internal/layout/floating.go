package layout

import "github.com/wmcore/corewm/internal/treewm"

// arrangeFloating places ws's floating children at their stored
// (FloatX, FloatY, FloatW, FloatH), clamped to the workspace rectangle,
// except a fullscreen float which takes the whole Output rect (spec
// §4.3's Workspace case, final step).
func (e *Engine) arrangeFloating(ws treewm.Node) {
	for _, c := range ws.Floating.Slice() {
		cn, ok := e.tree.Get(c)
		if !ok {
			continue
		}
		if cn.IsFullscreen {
			e.Arrange(c, NoHint, NoHint)
			continue
		}

		fw, fh := cn.FloatW, cn.FloatH
		if fw <= 0 {
			fw = cn.DesiredW
		}
		if fh <= 0 {
			fh = cn.DesiredH
		}
		fx, fy := clampRange(cn.FloatX, ws.X, ws.X+ws.W-fw), clampRange(cn.FloatY, ws.Y, ws.Y+ws.H-fh)

		e.tree.UpdateNode(c, func(n *treewm.Node) {
			n.FloatX, n.FloatY, n.FloatW, n.FloatH = fx, fy, fw, fh
		})
		e.setGeom(c, fx, fy, fw, fh)
		e.Arrange(c, fw, fh)
	}
}

func clampRange(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
