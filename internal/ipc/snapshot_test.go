package ipc

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wmcore/corewm/internal/treewm"
)

// TestBuildTreeMatchesExpectedShape is a table-driven check of
// BuildTree/BuildWorkspaces/BuildOutputs against the GET_TREE/
// GET_WORKSPACES/GET_OUTPUTS shapes i3/sway clients rely on; go-cmp
// reports a readable diff if a field renames or a default changes.
func TestBuildTreeMatchesExpectedShape(t *testing.T) {
	tr := treewm.New(nil)
	out := tr.NewOutput("eDP-1", "eDP-1")
	tr.UpdateNode(out, func(n *treewm.Node) {
		n.X, n.Y, n.W, n.H = 0, 0, 1920, 1080
		n.Scale = 1.0
	})
	ws, ok := tr.NewWorkspace(out, "1")
	if !ok {
		t.Fatal("failed to create workspace 1")
	}
	tr.UpdateNode(ws, func(n *treewm.Node) { n.X, n.Y, n.W, n.H = 0, 0, 1920, 1080 })
	view := tr.NewView(nil, "xterm", "term", 800, 600)
	tr.AddChild(ws, view)
	tr.UpdateNode(view, func(n *treewm.Node) { n.X, n.Y, n.W, n.H = 0, 0, 1920, 1080 })
	tr.RecomputeVisibility()

	cases := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{
			name: "tree",
			got:  BuildTree(tr, view),
			want: nodeJSON{
				ID:     tr.Root(),
				Type:   "root",
				Layout: "none",
				Nodes: []nodeJSON{{
					ID:     out,
					Name:   "eDP-1",
					Type:   "output",
					Layout: "none",
					Rect:   rectJSON{0, 0, 1920, 1080},
					Nodes: []nodeJSON{{
						ID:     ws,
						Name:   "1",
						Type:   "workspace",
						Layout: "splith",
						Rect:   rectJSON{0, 0, 1920, 1080},
						Nodes: []nodeJSON{{
							ID:                 view,
							Type:               "con",
							Layout:             "none",
							Rect:               rectJSON{0, 0, 1920, 1080},
							Focused:            true,
							AppID:              "xterm",
							Border:             "normal",
							CurrentBorderWidth: treewm.DefaultBorderWidth,
						}},
					}},
				}},
			},
		},
		{
			name: "workspaces",
			got:  BuildWorkspaces(tr, view),
			want: []workspaceJSON{{
				ID:      ws,
				Name:    "1",
				Output:  "eDP-1",
				Rect:    rectJSON{0, 0, 1920, 1080},
				Focused: true,
				Visible: true,
			}},
		},
		{
			name: "outputs",
			got:  BuildOutputs(tr),
			want: []outputJSON{{
				ID:     out,
				Name:   "eDP-1",
				Active: true,
				Rect:   rectJSON{0, 0, 1920, 1080},
				Scale:  1.0,
			}},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if diff := cmp.Diff(c.want, c.got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
