package ipc

import (
	"encoding/json"

	"github.com/wmcore/corewm/internal/arena"
	"github.com/wmcore/corewm/internal/treewm"
)

// workspaceSummary returns a minimal workspace object for the
// workspace::focus event's "old"/"current" fields, or nil if id is the
// zero id (no previous focus) or no longer resolves.
func workspaceSummary(tree *treewm.Tree, id arena.ID) interface{} {
	if !id.Valid() {
		return nil
	}
	n, ok := tree.Get(id)
	if !ok {
		return nil
	}
	return struct {
		ID   arena.ID `json:"id"`
		Name string   `json:"name"`
	}{id, n.Name}
}

// FocusEvents adapts focus.EventSink to the IPC server's broadcast,
// without focus importing this package (the "accept interfaces" shape
// applied at the boundary instead of inside the lower-level package).
type FocusEvents struct {
	Server *Server
	Tree   *treewm.Tree
}

// WorkspaceFocus implements focus.EventSink, emitting S6's
// workspace::focus event shape.
func (e *FocusEvents) WorkspaceFocus(old, current arena.ID) {
	payload, _ := json.Marshal(struct {
		Change  string      `json:"change"`
		Old     interface{} `json:"old"`
		Current interface{} `json:"current"`
	}{
		Change:  "focus",
		Old:     workspaceSummary(e.Tree, old),
		Current: workspaceSummary(e.Tree, current),
	})
	e.Server.Broadcast(EventWorkspace, payload)
}

// CommandEvents adapts command.EventSink to the IPC server's broadcast.
type CommandEvents struct {
	Server *Server
}

// ModeChanged implements command.EventSink.
func (e *CommandEvents) ModeChanged(name string) {
	payload, _ := json.Marshal(struct {
		Change string `json:"change"`
	}{name})
	e.Server.Broadcast(EventMode, payload)
}

// BindingRan implements command.EventSink.
func (e *CommandEvents) BindingRan(cmdline string) {
	payload, _ := json.Marshal(struct {
		Binding struct {
			Command string `json:"command"`
		} `json:"binding"`
	}{struct {
		Command string `json:"command"`
	}{cmdline}})
	e.Server.Broadcast(EventBinding, payload)
}
