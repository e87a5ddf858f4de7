package ipc

import (
	"encoding/json"

	"github.com/wmcore/corewm/internal/arena"
	"github.com/wmcore/corewm/internal/command"
	"github.com/wmcore/corewm/internal/treewm"
)

// Version is the reply body for GET_VERSION, matching i3/sway's shape
// closely enough that status bars querying it don't choke.
type Version struct {
	Major             int    `json:"major"`
	Minor             int    `json:"minor"`
	Patch             int    `json:"patch"`
	HumanReadable     string `json:"human_readable"`
	LoadedConfigFile  string `json:"loaded_config_file_name"`
}

// commandResultJSON is one element of the COMMAND response array.
type commandResultJSON struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Dispatcher answers every IPC request code against the live tree,
// command interpreter and keybinding mode set. It is the glue layer
// spec §2's data-flow diagram calls C7: it sits above C2/C5/C6, unlike
// the narrow per-component interfaces those packages define for what
// they call down into C8.
type Dispatcher struct {
	Tree    *treewm.Tree
	Ctx     *command.Context
	Version Version
	Config  string
}

// handle routes one decoded request to its JSON response payload. ok is
// false for a type this dispatcher does not recognize (the caller is
// responsible for spec §4.7's "unknown types are logged and the
// connection is closed" rule).
func (d *Dispatcher) handle(reqType uint32, payload []byte) (resp []byte, ok bool) {
	switch reqType {
	case Command:
		return d.command(payload), true
	case GetWorkspaces:
		return mustJSON(BuildWorkspaces(d.Tree, d.focused())), true
	case GetOutputs:
		return mustJSON(BuildOutputs(d.Tree)), true
	case GetTree:
		return mustJSON(BuildTree(d.Tree, d.focused())), true
	case GetMarks:
		return mustJSON([]string{}), true
	case GetBarConfig:
		return d.barConfig(payload), true
	case GetVersion:
		return mustJSON(d.Version), true
	case GetBindingModes:
		return mustJSON(d.Ctx.Modes.Names()), true
	case GetConfig:
		return mustJSON(struct {
			Config string `json:"config"`
		}{d.Config}), true
	case SendTick:
		return mustJSON(struct {
			Success bool `json:"success"`
		}{true}), true
	case Sync:
		return mustJSON(struct {
			Success bool `json:"success"`
		}{true}), true
	case GetInputs:
		return mustJSON([]struct{}{}), true
	case GetSeats:
		return d.seats(), true
	default:
		return nil, false
	}
}

func (d *Dispatcher) focused() (id arena.ID) {
	if d.Ctx.Seat == nil {
		return 0
	}
	return d.Ctx.Seat.GetFocus(d.Tree)
}

func (d *Dispatcher) command(payload []byte) []byte {
	results := d.Ctx.Run(string(payload))
	out := make([]commandResultJSON, len(results))
	for i, r := range results {
		out[i] = commandResultJSON{Success: r.Kind == command.Success || r.Kind == command.Defer}
		if r.Kind != command.Success && r.Kind != command.Defer {
			out[i].Error = r.Message
		}
	}
	return mustJSON(out)
}

// barConfig replies with the empty-id list when payload is empty (spec
// §6: "list of ids (empty request)"), or a single not-found config
// otherwise — this module does not implement bar configuration.
func (d *Dispatcher) barConfig(payload []byte) []byte {
	if len(payload) == 0 {
		return mustJSON([]string{})
	}
	return mustJSON(struct {
		Success bool `json:"success"`
		Error   string `json:"error"`
	}{false, "no bar configs defined"})
}

func (d *Dispatcher) seats() []byte {
	if d.Ctx.Seat == nil {
		return mustJSON([]struct{}{})
	}
	return mustJSON([]struct {
		Name string `json:"name"`
	}{{Name: d.Ctx.Seat.Name}})
}

func mustJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("null")
	}
	return b
}
