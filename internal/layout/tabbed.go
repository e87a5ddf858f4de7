package layout

import "github.com/wmcore/corewm/internal/treewm"

// arrangeTabbed implements the Tabbed/Stacked Container case of spec
// §4.3: every child gets the full content rectangle minus a header band
// of headerH pixels (a tab strip for Tabbed, a title-bar row for
// Stacked); only FocusedChild is later marked visible by
// treewm.RecomputeVisibility. All children are still recursively arranged
// so their cached geometry is correct the instant focus switches to them,
// satisfying invariant 9 ("every tab occupies the full content rectangle").
func (e *Engine) arrangeTabbed(n treewm.Node, x, y, w, h, headerH int) {
	if headerH > h {
		headerH = h
	}
	e.tree.UpdateNode(n.ID, func(node *treewm.Node) { node.HeaderH = headerH })

	contentY := y + headerH
	contentH := h - headerH
	if contentH < 0 {
		contentH = 0
	}
	for _, c := range n.Children.Slice() {
		e.setGeom(c, x, contentY, w, contentH)
		e.Arrange(c, w, contentH)
	}
}
