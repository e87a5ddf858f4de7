package command

import (
	"strconv"
	"strings"

	"github.com/wmcore/corewm/internal/arena"
	"github.com/wmcore/corewm/internal/focus"
	"github.com/wmcore/corewm/internal/treewm"
	"go.uber.org/zap"
)

// expectArgs is the declarative argc check spec §4.5 step 4 calls for:
// handlers validate argc before touching any collaborator.
func expectArgs(argv []string, min, max int) bool {
	if max < 0 {
		return len(argv) >= min
	}
	return len(argv) >= min && len(argv) <= max
}

func parseDirection(s string) (focus.Direction, bool) {
	switch strings.ToLower(s) {
	case "left":
		return focus.Left, true
	case "right":
		return focus.Right, true
	case "up":
		return focus.Up, true
	case "down":
		return focus.Down, true
	case "parent":
		return focus.Parent, true
	case "child":
		return focus.Child, true
	case "prev":
		return focus.Prev, true
	case "next":
		return focus.Next, true
	default:
		return 0, false
	}
}

// nearestContainer walks up from node to the nearest Container or
// Workspace (node itself included), failing if it reaches an Output or
// Root first. Used by "layout" and "split toggle" to find the node
// whose Layout field a handler retargets.
func nearestContainer(tree *treewm.Tree, node arena.ID) (arena.ID, bool) {
	cur := node
	for {
		n, ok := tree.Get(cur)
		if !ok {
			return 0, false
		}
		if n.Kind == treewm.KindContainer {
			return cur, true
		}
		if n.Kind == treewm.KindWorkspace {
			return cur, true
		}
		if n.Kind == treewm.KindOutput || n.Kind == treewm.KindRoot {
			return 0, false
		}
		if !n.Parent.Valid() {
			return 0, false
		}
		cur = n.Parent
	}
}

func cmdFocus(ctx *Context, argv []string) Result {
	if !expectArgs(argv, 1, 1) {
		return invalid("focus: expected one argument")
	}
	dir, valid := parseDirection(argv[0])
	if !valid {
		return invalid("focus: unknown direction " + argv[0])
	}
	target, found := ctx.Seat.Directional(ctx.Tree, ctx.Output, dir, ctx.ForceFocusWrap)
	if !found {
		return failure("focus: nowhere to move")
	}
	ctx.Seat.SetFocus(ctx.Tree, target, true)
	return ok()
}

func cmdLayout(ctx *Context, argv []string) Result {
	if !expectArgs(argv, 1, 2) {
		return invalid("layout: expected one argument")
	}
	target, found := nearestContainer(ctx.Tree, ctx.Current)
	if !found {
		return failure("layout: no container to retarget")
	}
	arg := strings.ToLower(argv[0])
	if arg == "toggle" && len(argv) == 2 && strings.ToLower(argv[1]) == "split" {
		n := ctx.Tree.MustGet(target)
		newLayout := treewm.LayoutVert
		if n.Layout == treewm.LayoutVert {
			newLayout = treewm.LayoutHoriz
		}
		ctx.Tree.UpdateNode(target, func(n *treewm.Node) { n.Layout = newLayout })
	} else {
		l, ok := parseLayout(arg)
		if !ok {
			return invalid("layout: unknown layout " + argv[0])
		}
		ctx.Tree.UpdateNode(target, func(n *treewm.Node) { n.Layout = l })
	}
	ctx.Tree.RecomputeVisibility()
	ctx.Layout.Arrange(target, -1, -1)
	return ok()
}

func parseLayout(s string) (treewm.Layout, bool) {
	switch s {
	case "splith":
		return treewm.LayoutHoriz, true
	case "splitv":
		return treewm.LayoutVert, true
	case "tabbed":
		return treewm.LayoutTabbed, true
	case "stacked":
		return treewm.LayoutStacked, true
	default:
		return 0, false
	}
}

func wrapOrRetarget(ctx *Context, layoutKind treewm.Layout) Result {
	n, found := ctx.Tree.Get(ctx.Current)
	if !found {
		return failure("no focused node")
	}
	switch n.Kind {
	case treewm.KindView:
		containerID := ctx.Tree.WrapInContainer(ctx.Current, layoutKind)
		ctx.Tree.RecomputeVisibility()
		ctx.Layout.Arrange(containerID, -1, -1)
	case treewm.KindContainer, treewm.KindWorkspace:
		ctx.Tree.UpdateNode(n.ID, func(nn *treewm.Node) { nn.Layout = layoutKind })
		ctx.Tree.RecomputeVisibility()
		ctx.Layout.Arrange(n.ID, -1, -1)
	default:
		return failure("splith/splitv: nothing focused")
	}
	return ok()
}

func cmdSplith(ctx *Context, argv []string) Result {
	if !expectArgs(argv, 0, 0) {
		return invalid("splith: no arguments expected")
	}
	return wrapOrRetarget(ctx, treewm.LayoutHoriz)
}

func cmdSplitv(ctx *Context, argv []string) Result {
	if !expectArgs(argv, 0, 0) {
		return invalid("splitv: no arguments expected")
	}
	return wrapOrRetarget(ctx, treewm.LayoutVert)
}

func cmdSplit(ctx *Context, argv []string) Result {
	if !expectArgs(argv, 1, 1) {
		return invalid("split: expected h|v|toggle")
	}
	switch strings.ToLower(argv[0]) {
	case "h", "horizontal":
		return wrapOrRetarget(ctx, treewm.LayoutHoriz)
	case "v", "vertical":
		return wrapOrRetarget(ctx, treewm.LayoutVert)
	case "toggle":
		target, found := nearestContainer(ctx.Tree, ctx.Current)
		if !found {
			return failure("split: no container to toggle")
		}
		n := ctx.Tree.MustGet(target)
		newLayout := treewm.LayoutVert
		if n.Layout == treewm.LayoutVert {
			newLayout = treewm.LayoutHoriz
		}
		ctx.Tree.UpdateNode(target, func(nn *treewm.Node) { nn.Layout = newLayout })
		ctx.Tree.RecomputeVisibility()
		ctx.Layout.Arrange(target, -1, -1)
		return ok()
	default:
		return invalid("split: expected h|v|toggle")
	}
}

// resolveWorkspaceTarget implements the name|prev|next|number N|
// back_and_forth forms of the workspace target grammar. prev/next walk
// the current output's workspace order; back_and_forth swaps with
// ctx.LastWorkspace; "number N" matches a workspace whose name begins
// with the digits of N (i3's convention for numbered workspaces), or
// creates one named exactly N if none matches.
func resolveWorkspaceTarget(ctx *Context, argv []string) (name string, ok bool) {
	switch strings.ToLower(argv[0]) {
	case "prev", "next":
		output := ctx.Tree.OutputOf(ctx.Current)
		if !output.Valid() {
			return "", false
		}
		out, found := ctx.Tree.Get(output)
		if !found || out.Children.Len() == 0 {
			return "", false
		}
		idx := out.Children.IndexOf(ctx.Tree.WorkspaceOf(ctx.Current))
		if idx < 0 {
			idx = 0
		}
		step := 1
		if strings.ToLower(argv[0]) == "prev" {
			step = -1
		}
		newIdx := (idx + step + out.Children.Len()) % out.Children.Len()
		ws, found := ctx.Tree.Get(out.Children.At(newIdx))
		if !found {
			return "", false
		}
		return ws.Name, true
	case "back_and_forth":
		if !ctx.LastWorkspace.Valid() {
			return "", false
		}
		ws, found := ctx.Tree.Get(ctx.LastWorkspace)
		if !found {
			return "", false
		}
		return ws.Name, true
	case "number":
		if len(argv) < 2 {
			return "", false
		}
		for _, id := range ctx.Tree.AllWorkspaces() {
			wsName := ctx.Tree.MustGet(id).Name
			rest := strings.TrimPrefix(wsName, argv[1])
			if len(rest) < len(wsName) && (rest == "" || rest[0] < '0' || rest[0] > '9') {
				return wsName, true
			}
		}
		return argv[1], true
	default:
		return strings.Join(argv, " "), true
	}
}

func cmdWorkspace(ctx *Context, argv []string) Result {
	if !expectArgs(argv, 1, -1) {
		return invalid("workspace: expected a target")
	}
	name, resolved := resolveWorkspaceTarget(ctx, argv)
	if !resolved {
		return failure("workspace: could not resolve target " + strings.Join(argv, " "))
	}
	ws := ctx.Tree.FindWorkspaceByName(name)
	if !ws.Valid() {
		output := ctx.Tree.OutputOf(ctx.Current)
		if !output.Valid() {
			outs := ctx.Tree.Outputs()
			if len(outs) == 0 {
				return failure("workspace: no outputs available")
			}
			output = outs[0]
		}
		created, okCreate := ctx.Tree.NewWorkspace(output, name)
		if !okCreate {
			return failure("workspace: name collides with an existing workspace")
		}
		ws = created
	}
	if prev := ctx.Tree.WorkspaceOf(ctx.Current); prev.Valid() && prev != ws {
		ctx.LastWorkspace = prev
	}
	ctx.Tree.RecomputeVisibility()
	ctx.Layout.Arrange(ctx.Tree.OutputOf(ws), -1, -1)
	target := ctx.Seat.GetFocusInactive(ctx.Tree, ws)
	ctx.Seat.SetFocus(ctx.Tree, target, true)
	return ok()
}

func cmdFloating(ctx *Context, argv []string) Result {
	if !expectArgs(argv, 1, 1) {
		return invalid("floating: expected enable|disable|toggle")
	}
	n, found := ctx.Tree.Get(ctx.Current)
	if !found || n.Kind != treewm.KindView {
		return failure("floating: no focused view")
	}
	var want bool
	switch strings.ToLower(argv[0]) {
	case "enable":
		want = true
	case "disable":
		want = false
	case "toggle":
		want = !n.IsFloating
	default:
		return invalid("floating: unknown argument " + argv[0])
	}
	if want == n.IsFloating {
		return ok()
	}
	workspace := ctx.Tree.WorkspaceOf(ctx.Current)
	if !workspace.Valid() {
		return failure("floating: view is not attached to a workspace")
	}
	ctx.Tree.RemoveChild(ctx.Current)
	if want {
		ctx.Tree.UpdateNode(ctx.Current, func(nn *treewm.Node) {
			nn.FloatX, nn.FloatY, nn.FloatW, nn.FloatH = nn.X, nn.Y, nn.W, nn.H
		})
		ctx.Tree.AddFloating(workspace, ctx.Current)
	} else {
		ctx.Tree.UpdateNode(ctx.Current, func(nn *treewm.Node) { nn.IsFloating = false })
		ctx.Tree.AddChild(workspace, ctx.Current)
	}
	ctx.Tree.RecomputeVisibility()
	ctx.Layout.Arrange(workspace, -1, -1)
	ctx.Seat.SetFocus(ctx.Tree, ctx.Current, false)
	return ok()
}

// cmdBorder implements "border <none|normal|pixel [px]|toggle>",
// grounded on sway's cmd_border: when the focused view's parent is a
// tabbed container, the style change applies to every sibling view so
// the whole tab strip restyles together; otherwise it applies only to
// the focused view.
func cmdBorder(ctx *Context, argv []string) Result {
	if !expectArgs(argv, 1, 2) {
		return invalid("border: expected none|normal|pixel [px]|toggle")
	}
	n, found := ctx.Tree.Get(ctx.Current)
	if !found || n.Kind != treewm.KindView {
		return failure("border: no focused view")
	}
	style, width, valid := parseBorderArgs(n, argv)
	if !valid {
		return invalid("border: unknown argument " + argv[0])
	}

	apply := func(id arena.ID) {
		ctx.Tree.UpdateNode(id, func(nn *treewm.Node) {
			nn.Border = style
			if width >= 0 {
				nn.BorderWidth = width
			}
		})
	}

	if parent, found := ctx.Tree.Get(n.Parent); found && parent.Layout == treewm.LayoutTabbed {
		for _, sib := range parent.Children.Slice() {
			if s, found := ctx.Tree.Get(sib); found && s.Kind == treewm.KindView {
				apply(sib)
			}
		}
	} else {
		apply(ctx.Current)
	}
	return ok()
}

// parseBorderArgs returns the style (and, for "pixel", a thickness or
// -1 to keep n's current one) argv requests, or ok=false if argv[0]
// does not name a known style.
func parseBorderArgs(n treewm.Node, argv []string) (style treewm.BorderStyle, width int, ok bool) {
	switch strings.ToLower(argv[0]) {
	case "none":
		return treewm.BorderNone, -1, true
	case "normal":
		return treewm.BorderNormal, -1, true
	case "pixel":
		width := -1
		if len(argv) == 2 {
			w, err := strconv.Atoi(argv[1])
			if err != nil || w < 0 {
				return 0, 0, false
			}
			width = w
		}
		return treewm.BorderPixel, width, true
	case "toggle":
		return (n.Border + 1) % 3, -1, true
	default:
		return 0, 0, false
	}
}

func cmdFullscreen(ctx *Context, argv []string) Result {
	if !expectArgs(argv, 0, 0) {
		return invalid("fullscreen: no arguments expected")
	}
	n, found := ctx.Tree.Get(ctx.Current)
	if !found || n.Kind != treewm.KindView {
		return failure("fullscreen: no focused view")
	}
	ctx.Tree.UpdateNode(ctx.Current, func(nn *treewm.Node) { nn.IsFullscreen = !nn.IsFullscreen })
	workspace := ctx.Tree.WorkspaceOf(ctx.Current)
	ctx.Layout.Arrange(workspace, -1, -1)
	return ok()
}

func cmdBindsym(ctx *Context, argv []string) Result {
	if !expectArgs(argv, 2, -1) {
		return invalid("bindsym: expected a key combo and a command")
	}
	spec := argv[0]
	release := false
	i := 1
	if i < len(argv) && strings.ToLower(argv[i]) == "--release" {
		release = true
		i++
	}
	if i >= len(argv) {
		return invalid("bindsym: missing command")
	}
	cmdline := strings.Join(argv[i:], " ")
	if _, err := ctx.Modes.Current().AddBinding(spec, cmdline, release); err != nil {
		return invalid(err.Error())
	}
	return ok()
}

func cmdExec(ctx *Context, argv []string) Result {
	if !expectArgs(argv, 1, -1) {
		return invalid("exec: expected a command line")
	}
	return runExec(ctx, strings.Join(argv, " "), false)
}

func cmdExecAlways(ctx *Context, argv []string) Result {
	if !expectArgs(argv, 1, -1) {
		return invalid("exec_always: expected a command line")
	}
	return runExec(ctx, strings.Join(argv, " "), true)
}

func runExec(ctx *Context, cmdline string, always bool) Result {
	if ctx.Reading && !always {
		ctx.ExecQueue = append(ctx.ExecQueue, cmdline)
		return deferred("exec: queued until reading completes")
	}
	if ctx.Exec == nil {
		return ok()
	}
	if err := ctx.Exec.Exec(cmdline); err != nil {
		if ctx.Log != nil {
			ctx.Log.Warn("exec failed", zap.Error(err))
		}
	}
	return ok()
}

func cmdReload(ctx *Context, argv []string) Result {
	if !expectArgs(argv, 0, 0) {
		return invalid("reload: no arguments expected")
	}
	if ctx.Reloader == nil {
		return ok()
	}
	vars, err := ctx.reload()
	if err != nil {
		return failure("reload: " + err.Error())
	}
	ctx.Vars = vars
	ctx.Layout.Arrange(ctx.Tree.Root(), -1, -1)
	return ok()
}

func cmdKill(ctx *Context, argv []string) Result {
	if !expectArgs(argv, 0, 0) {
		return invalid("kill: no arguments expected")
	}
	n, found := ctx.Tree.Get(ctx.Current)
	if !found || n.Kind != treewm.KindView {
		return failure("kill: no focused view")
	}
	if ctx.Closer == nil {
		return ok()
	}
	if err := ctx.Closer.Close(n.Surface); err != nil {
		return failure("kill: " + err.Error())
	}
	return ok()
}

func cmdMode(ctx *Context, argv []string) Result {
	if !expectArgs(argv, 1, 1) {
		return invalid("mode: expected a mode name")
	}
	name := argv[0]
	ctx.Modes.SetCurrent(name)
	if ctx.Events != nil {
		ctx.Events.ModeChanged(name)
	}
	return ok()
}

func cmdMove(ctx *Context, argv []string) Result {
	if !expectArgs(argv, 1, 1) {
		return invalid("move: expected a direction")
	}
	var delta int
	switch strings.ToLower(argv[0]) {
	case "left", "up":
		delta = -1
	case "right", "down":
		delta = 1
	default:
		return invalid("move: unknown direction " + argv[0])
	}
	if !ctx.Tree.MoveSibling(ctx.Current, delta) {
		return failure("move: no sibling in that direction")
	}
	parent := ctx.Tree.MustGet(ctx.Current).Parent
	ctx.Layout.Arrange(parent, -1, -1)
	return ok()
}

func cmdMoveToWorkspace(ctx *Context, argv []string) Result {
	if !expectArgs(argv, 1, -1) {
		return invalid("move_to_workspace: expected a workspace name")
	}
	name := strings.Join(argv, " ")
	n, found := ctx.Tree.Get(ctx.Current)
	if !found {
		return failure("move_to_workspace: nothing focused")
	}
	sourceWorkspace := ctx.Tree.WorkspaceOf(ctx.Current)

	target := ctx.Tree.FindWorkspaceByName(name)
	if !target.Valid() {
		output := ctx.Tree.OutputOf(ctx.Current)
		created, okCreate := ctx.Tree.NewWorkspace(output, name)
		if !okCreate {
			return failure("move_to_workspace: name collides")
		}
		target = created
	}

	wasFloating := n.IsFloating
	ctx.Tree.RemoveChild(ctx.Current)
	if wasFloating {
		ctx.Tree.AddFloating(target, ctx.Current)
	} else {
		ctx.Tree.AddChild(target, ctx.Current)
	}
	ctx.Tree.RecomputeVisibility()
	ctx.Layout.Arrange(ctx.Tree.OutputOf(sourceWorkspace), -1, -1)
	ctx.Layout.Arrange(ctx.Tree.OutputOf(target), -1, -1)
	return ok()
}

func cmdRenameWorkspace(ctx *Context, argv []string) Result {
	if !expectArgs(argv, 1, -1) {
		return invalid("rename_workspace: expected a new name")
	}
	ws := ctx.Tree.WorkspaceOf(ctx.Current)
	if !ws.Valid() {
		return failure("rename_workspace: not on a workspace")
	}
	newName := strings.Join(argv, " ")
	if !ctx.Tree.RenameWorkspace(ws, newName) {
		return failure("rename_workspace: name collides with an existing workspace")
	}
	return ok()
}
