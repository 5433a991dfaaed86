package models

// Intent is a recognized user intent.
type Intent string

const (
	IntentCreateTask   Intent = "CREATE_TASK"
	IntentCompleteTask Intent = "COMPLETE_TASK"
	IntentListTasks    Intent = "LIST_TASKS"

	// IntentRequireInfo is an internal routing intent used when the
	// assistant needs to ask a follow-up question. It never comes from
	// the classifier.
	IntentRequireInfo Intent = "REQUIRE_INFO"
)

// ParseIntent maps a classifier label onto a known Intent. Unknown or
// empty labels return the zero Intent, which means "no intent recognized".
func ParseIntent(label string) Intent {
	switch Intent(label) {
	case IntentCreateTask, IntentCompleteTask, IntentListTasks:
		return Intent(label)
	default:
		return ""
	}
}

// TaskSlots is the set of fields collected about a task across turns.
// The empty string means "not yet collected". TaskSlots is a value type:
// operations return new values and never mutate the receiver.
type TaskSlots struct {
	Description string `json:"description,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Constraints string `json:"constraints,omitempty"`
	TaskID      string `json:"taskId,omitempty"`
}

// EmptySlots returns a TaskSlots with no fields collected.
func EmptySlots() TaskSlots {
	return TaskSlots{}
}

// IsEmpty reports whether no field has been collected.
func (s TaskSlots) IsEmpty() bool {
	return s == TaskSlots{}
}

// Merge overlays newer onto s: a field from newer wins only when it is
// non-empty, so answers collected on earlier turns survive an extraction
// that omitted them.
func (s TaskSlots) Merge(newer TaskSlots) TaskSlots {
	out := s
	if newer.Description != "" {
		out.Description = newer.Description
	}
	if newer.Deadline != "" {
		out.Deadline = newer.Deadline
	}
	if newer.Priority != "" {
		out.Priority = newer.Priority
	}
	if newer.Constraints != "" {
		out.Constraints = newer.Constraints
	}
	if newer.TaskID != "" {
		out.TaskID = newer.TaskID
	}
	return out
}
