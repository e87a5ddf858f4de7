package ipc

import (
	"github.com/wmcore/corewm/internal/arena"
	"github.com/wmcore/corewm/internal/treewm"
)

// nodeJSON is the i3-compatible shape of one GET_TREE node. Field names
// match i3's IPC reply so existing bar/status clients (waybar, i3status)
// parse it unmodified.
type nodeJSON struct {
	ID                  arena.ID   `json:"id"`
	Name                string     `json:"name"`
	Type                string     `json:"type"`
	Layout              string     `json:"layout"`
	Rect                rectJSON   `json:"rect"`
	Focused             bool       `json:"focused"`
	FocusedID           arena.ID   `json:"-"`
	Urgent              bool       `json:"urgent"`
	Fullscreen          bool       `json:"fullscreen_mode"`
	AppID               string     `json:"app_id,omitempty"`
	Border              string     `json:"border,omitempty"`
	CurrentBorderWidth  int        `json:"current_border_width,omitempty"`
	Nodes               []nodeJSON `json:"nodes"`
	FloatingNodes       []nodeJSON `json:"floating_nodes"`
}

type rectJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"width"`
	H int `json:"height"`
}

func typeName(k treewm.Kind) string {
	switch k {
	case treewm.KindRoot:
		return "root"
	case treewm.KindOutput:
		return "output"
	case treewm.KindWorkspace:
		return "workspace"
	case treewm.KindView:
		return "con" // i3 reports leaf windows as "con" with a window property
	default:
		return "con"
	}
}

// buildNode recursively converts tree, rooted at id, into the GET_TREE
// shape, marking the node whose id equals focused.
func buildNode(tree *treewm.Tree, id arena.ID, focused arena.ID) nodeJSON {
	n, ok := tree.Get(id)
	if !ok {
		return nodeJSON{}
	}
	out := nodeJSON{
		ID:         id,
		Name:       n.Name,
		Type:       typeName(n.Kind),
		Layout:     n.Layout.String(),
		Rect:       rectJSON{n.X, n.Y, n.W, n.H},
		Focused:    id == focused,
		Fullscreen: n.IsFullscreen,
		AppID:      n.AppID,
	}
	if n.Kind == treewm.KindView {
		out.Border = n.Border.String()
		out.CurrentBorderWidth = n.BorderWidth
	}
	for _, c := range n.Children.Slice() {
		out.Nodes = append(out.Nodes, buildNode(tree, c, focused))
	}
	if n.Kind == treewm.KindWorkspace {
		for _, c := range n.Floating.Slice() {
			out.FloatingNodes = append(out.FloatingNodes, buildNode(tree, c, focused))
		}
	}
	return out
}

// BuildTree serializes the whole tree for GET_TREE.
func BuildTree(tree *treewm.Tree, focused arena.ID) nodeJSON {
	return buildNode(tree, tree.Root(), focused)
}

// workspaceJSON is the GET_WORKSPACES element shape.
type workspaceJSON struct {
	ID      arena.ID `json:"id"`
	Name    string   `json:"name"`
	Output  string   `json:"output"`
	Rect    rectJSON `json:"rect"`
	Focused bool     `json:"focused"`
	Visible bool     `json:"visible"`
}

// BuildWorkspaces serializes every live workspace for GET_WORKSPACES.
func BuildWorkspaces(tree *treewm.Tree, focused arena.ID) []workspaceJSON {
	focusedWorkspace := tree.WorkspaceOf(focused)
	var out []workspaceJSON
	for _, out1 := range tree.Outputs() {
		o := tree.MustGet(out1)
		for _, wsID := range o.Children.Slice() {
			ws := tree.MustGet(wsID)
			out = append(out, workspaceJSON{
				ID:      wsID,
				Name:    ws.Name,
				Output:  o.Name,
				Rect:    rectJSON{ws.X, ws.Y, ws.W, ws.H},
				Focused: wsID == focusedWorkspace,
				Visible: ws.Visible,
			})
		}
	}
	return out
}

// outputJSON is the GET_OUTPUTS element shape.
type outputJSON struct {
	ID      arena.ID `json:"id"`
	Name    string   `json:"name"`
	Active  bool     `json:"active"`
	Rect    rectJSON `json:"rect"`
	Scale   float64  `json:"scale"`
}

// BuildOutputs serializes every output for GET_OUTPUTS.
func BuildOutputs(tree *treewm.Tree) []outputJSON {
	var out []outputJSON
	for _, id := range tree.Outputs() {
		o := tree.MustGet(id)
		out = append(out, outputJSON{
			ID:     id,
			Name:   o.Name,
			Active: true,
			Rect:   rectJSON{o.X, o.Y, o.W, o.H},
			Scale:  o.Scale,
		})
	}
	return out
}
