package command

import (
	"sort"
	"strings"
	"sync"

	"github.com/wmcore/corewm/internal/arena"
	"github.com/wmcore/corewm/internal/focus"
	"github.com/wmcore/corewm/internal/keybind"
	"github.com/wmcore/corewm/internal/layout"
	"github.com/wmcore/corewm/internal/treewm"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Exec spawns (or records, while Reading) a shell command line. The
// interpreter never shells out itself; it is defined here narrowly so
// command only depends on the one capability it needs from the process
// layer, the same "accept interfaces" shape focus.Notifier and
// layout.SurfaceArranger use.
type Exec interface {
	Exec(cmdline string) error
}

// Closer lets the "kill" handler ask the backend to close a view's
// surface.
type Closer interface {
	Close(handle treewm.SurfaceHandle) error
}

// Reloader reloads the on-disk config and reports the new variable
// table. It is declared here so command does not import a config
// loader; no type in this module's non-test code implements it, and
// cmd/corewm leaves Context.Reloader nil.
type Reloader interface {
	Reload() (vars map[string]string, err error)
}

// Context is the command interpreter's handler_context (spec §4.5): the
// collaborators and per-invocation state every handler may read or
// mutate. One Context is shared by the IPC COMMAND handler and the
// keybinding matcher's fired bindings.
type Context struct {
	Tree   *treewm.Tree
	Layout *layout.Engine
	Seat   *focus.Seat
	Output focus.OutputLayout
	Modes  *keybind.ModeSet

	Vars map[string]string

	Exec     Exec
	Closer   Closer
	Reloader Reloader
	Events   EventSink

	Log *zap.Logger

	// Current is the container a handler without an explicit target acts
	// on — ordinarily the seat's current focus, refreshed by runOne
	// before each command in a semicolon-separated chain runs.
	Current arena.ID

	// LastWorkspace is the workspace the "workspace" handler last
	// switched away from, consulted by the "back_and_forth" target.
	LastWorkspace arena.ID

	// Reading is true while config is being parsed: exec/exec_always are
	// queued in ExecQueue instead of run immediately (spec §4.5's
	// "reading mode batches execs").
	Reading  bool
	ExecQueue []string

	// ForceFocusWrap mirrors the `force_focus_wrapping` config option
	// focus.Directional's wrap step consults.
	ForceFocusWrap bool

	// Mu, when set, is locked around every Run call. A command can be
	// fired from two different goroutines in the wired-up program — the
	// IPC dispatch loop and a backend input callback delivering a
	// matched keybinding — so eventloop shares one mutex between both
	// entry points to preserve spec §5's "exclusive access to the tree
	// on every callback" guarantee without requiring either caller to
	// know about the other. Left nil, Run is unlocked, which every
	// existing single-goroutine test relies on.
	Mu *sync.Mutex

	// reloadGroup collapses concurrent "reload" commands arriving from
	// multiple IPC clients into a single Reloader.Reload call; see
	// reload.
	reloadGroup singleflight.Group
}

// reload runs ctx.Reloader.Reload, collapsing concurrent callers into
// one actual Reload via reloadGroup. Mu (if set) is released for the
// duration: Reload only reads config off disk and never touches the
// tree, so there is no reason to hold the tree-exclusivity lock across
// that I/O, and releasing it is what lets a second "reload" arriving
// from another IPC client actually overlap with the first instead of
// queueing behind Mu and triggering its own redundant reread.
func (ctx *Context) reload() (map[string]string, error) {
	if ctx.Mu != nil {
		ctx.Mu.Unlock()
		defer ctx.Mu.Lock()
	}
	v, err, _ := ctx.reloadGroup.Do("reload", func() (interface{}, error) {
		return ctx.Reloader.Reload()
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]string), nil
}

// EventSink receives IPC-worthy events a command handler's side effect
// produces beyond what focus.Seat.SetFocus already reports (mode
// changes, binding execution). The command package does not import ipc
// directly; the glue layer wires an adapter.
type EventSink interface {
	ModeChanged(name string)
	BindingRan(cmdline string)
}

// handler validates argc against its own rule and executes against ctx.
type handler struct {
	name string
	fn   func(ctx *Context, argv []string) Result
}

var table = buildTable()

func buildTable() []handler {
	t := []handler{
		{"bindsym", cmdBindsym},
		{"border", cmdBorder},
		{"exec", cmdExec},
		{"exec_always", cmdExecAlways},
		{"floating", cmdFloating},
		{"focus", cmdFocus},
		{"fullscreen", cmdFullscreen},
		{"kill", cmdKill},
		{"layout", cmdLayout},
		{"mode", cmdMode},
		{"move", cmdMove},
		{"move_to_workspace", cmdMoveToWorkspace},
		{"reload", cmdReload},
		{"rename_workspace", cmdRenameWorkspace},
		{"split", cmdSplit},
		{"splith", cmdSplith},
		{"splitv", cmdSplitv},
		{"workspace", cmdWorkspace},
	}
	sort.Slice(t, func(i, j int) bool { return t[i].name < t[j].name })
	return t
}

// lookup finds name's handler via binary search over the sorted table
// (spec §4.5 step 3), case-insensitive.
func lookup(name string) (handler, bool) {
	name = strings.ToLower(name)
	i := sort.Search(len(table), func(i int) bool { return table[i].name >= name })
	if i < len(table) && table[i].name == name {
		return table[i], true
	}
	return handler{}, false
}

// Run tokenizes, substitutes and dispatches one or more semicolon-
// separated commands against ctx, returning one Result per command
// (spec §4.5, and the aggregation rule of §7: "the command interpreter
// aggregates them into the JSON array returned to IPC"). Use Run for
// every command origin except a matched keybinding; see RunBinding.
func (ctx *Context) Run(line string) []Result {
	return ctx.run(line, false)
}

// RunBinding runs line exactly as Run does, except that each command
// which completes successfully also fires EventSink.BindingRan. Spec
// §4.7 treats "binding executed" as a transition distinct from
// ordinary command execution, so only eventloop.handleKey's matched-
// binding path should call RunBinding; IPC-issued COMMAND requests and
// config-file parsing must use Run so they don't masquerade as binding
// activity to clients subscribed to the "binding" event.
func (ctx *Context) RunBinding(line string) []Result {
	return ctx.run(line, true)
}

func (ctx *Context) run(line string, fromBinding bool) []Result {
	if ctx.Mu != nil {
		ctx.Mu.Lock()
		defer ctx.Mu.Unlock()
	}
	var results []Result
	for _, part := range strings.Split(line, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		results = append(results, ctx.runOne(part, fromBinding))
	}
	if len(results) == 0 {
		results = []Result{ok()}
	}
	return results
}

func (ctx *Context) runOne(cmdline string, fromBinding bool) Result {
	argv, err := Tokenize(cmdline)
	if err != nil {
		return invalid(err.Error())
	}
	if len(argv) == 0 {
		return invalid("empty command")
	}
	argv = Substitute(argv, ctx.Vars)

	h, found := lookup(argv[0])
	if !found {
		return invalid("unknown command: " + argv[0])
	}

	if ctx.Seat != nil && ctx.Tree != nil {
		ctx.Current = ctx.Seat.GetFocus(ctx.Tree)
	}

	res := h.fn(ctx, argv[1:])
	if res.Kind == Success && fromBinding && ctx.Events != nil {
		ctx.Events.BindingRan(cmdline)
	}
	return res
}
