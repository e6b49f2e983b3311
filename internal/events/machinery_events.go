package events

const (
	AssignmentCreated = "assignment.created"
	AssignmentUpdated = "assignment.updated"
	AssignmentDeleted = "assignment.deleted"

	RecordChanged = "record.changed"
)

// AssignmentEvent is published after an assignment transaction commits.
// MachineryStatus is the machine's status at that moment.
type AssignmentEvent struct {
	Kind             string `json:"-"`
	AssignmentID     uint64 `json:"assignmentId"`
	MachineryID      uint64 `json:"machineryId"`
	ProjectID        uint64 `json:"projectId"`
	AssignmentStatus string `json:"assignmentStatus,omitempty"`
	MachineryStatus  string `json:"machineryStatus"`
}

func (e AssignmentEvent) Name() string {
	return e.Kind
}

// RecordChangedEvent covers plain CRUD writes on projects, machinery, teams and employees.
type RecordChangedEvent struct {
	Entity string `json:"entity"`
	ID     uint64 `json:"id"`
	Action string `json:"action"`
}

func (e RecordChangedEvent) Name() string {
	return RecordChanged
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// All lists every event name, for listeners that react to any change.
var All = []string{AssignmentCreated, AssignmentUpdated, AssignmentDeleted, RecordChanged}
