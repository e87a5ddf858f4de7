package ipc

// Request codes, stable with i3 for the eleven spec.md §6 enumerates;
// SYNC/GET_INPUTS/GET_SEATS continue the sequence since §4.7 names them
// among "known requests" without assigning them a table entry.
const (
	Command         uint32 = 0
	GetWorkspaces   uint32 = 1
	Subscribe       uint32 = 2
	GetOutputs      uint32 = 3
	GetTree         uint32 = 4
	GetMarks        uint32 = 5
	GetBarConfig    uint32 = 6
	GetVersion      uint32 = 7
	GetBindingModes uint32 = 8
	GetConfig       uint32 = 9
	SendTick        uint32 = 10
	Sync            uint32 = 11
	GetInputs       uint32 = 12
	GetSeats        uint32 = 13
)

// Event kinds; the frame type written to a subscribed client is
// EventBit|kind.
const (
	EventWorkspace       uint32 = 0
	EventOutput          uint32 = 1
	EventMode            uint32 = 2
	EventWindow          uint32 = 3
	EventBarConfigUpdate uint32 = 4
	EventBinding         uint32 = 5
	EventShutdown        uint32 = 6
	EventTick            uint32 = 7
)

// eventNames maps the JSON event names a SUBSCRIBE payload carries
// (spec §4.7) to their numeric kind.
var eventNames = map[string]uint32{
	"workspace":        EventWorkspace,
	"output":           EventOutput,
	"mode":             EventMode,
	"window":           EventWindow,
	"barconfig_update": EventBarConfigUpdate,
	"binding":          EventBinding,
	"shutdown":         EventShutdown,
	"tick":             EventTick,
}
