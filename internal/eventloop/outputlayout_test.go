package eventloop

import (
	"testing"

	"github.com/wmcore/corewm/internal/focus"
	"github.com/wmcore/corewm/internal/treewm"
)

// TestExtremeOutputWrapsToOppositeEnd models S3: with three outputs laid
// out left-to-right, a failed "focus right" past the rightmost output
// must wrap to the leftmost output, not back to the rightmost one it
// already failed to leave.
func TestExtremeOutputWrapsToOppositeEnd(t *testing.T) {
	tr := treewm.New(nil)
	left := tr.NewOutput("left", "DP-1")
	tr.UpdateNode(left, func(n *treewm.Node) { n.X, n.Y, n.W, n.H = 0, 0, 1920, 1080 })
	tr.UpdateNode(tr.NewOutput("mid", "DP-2"), func(n *treewm.Node) { n.X, n.Y, n.W, n.H = 1920, 0, 1920, 1080 })
	right := tr.NewOutput("right", "DP-3")
	tr.UpdateNode(right, func(n *treewm.Node) { n.X, n.Y, n.W, n.H = 3840, 0, 1920, 1080 })

	l := &outputLayout{tree: tr}

	if got, ok := l.ExtremeOutput(focus.Right); !ok || got != left {
		t.Fatalf("ExtremeOutput(Right) = %v, %v, want the leftmost output %v", got, ok, left)
	}
	if got, ok := l.ExtremeOutput(focus.Left); !ok || got != right {
		t.Fatalf("ExtremeOutput(Left) = %v, %v, want the rightmost output %v", got, ok, right)
	}
}

// TestExtremeOutputWrapsVertically is the same check along the Y axis:
// a failed "focus down" past the bottom output wraps to the top one.
func TestExtremeOutputWrapsVertically(t *testing.T) {
	tr := treewm.New(nil)
	top := tr.NewOutput("top", "DP-1")
	tr.UpdateNode(top, func(n *treewm.Node) { n.X, n.Y, n.W, n.H = 0, 0, 1920, 1080 })
	bottom := tr.NewOutput("bottom", "DP-2")
	tr.UpdateNode(bottom, func(n *treewm.Node) { n.X, n.Y, n.W, n.H = 0, 1080, 1920, 1080 })

	l := &outputLayout{tree: tr}

	if got, ok := l.ExtremeOutput(focus.Down); !ok || got != top {
		t.Fatalf("ExtremeOutput(Down) = %v, %v, want the topmost output %v", got, ok, top)
	}
	if got, ok := l.ExtremeOutput(focus.Up); !ok || got != bottom {
		t.Fatalf("ExtremeOutput(Up) = %v, %v, want the bottommost output %v", got, ok, bottom)
	}
}
