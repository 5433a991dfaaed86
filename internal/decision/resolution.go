package decision

import (
	"github.com/taskpilot/taskpilot/internal/actions"
	"github.com/taskpilot/taskpilot/internal/models"
)

// Resolution is the outcome of deciding on a query. It is in exactly one
// of two modes: ready to execute (Params set) or waiting on the user
// (FollowUp and Envelope set). The constructors below are the only ways
// to build one, which keeps the two modes from mixing.
type Resolution struct {
	Action   actions.Action
	Params   actions.Parameters
	FollowUp string
	Envelope *models.Envelope
}

// RequiresFollowUp reports whether the resolution is a question for the
// user rather than an executable action.
func (r *Resolution) RequiresFollowUp() bool {
	return r.FollowUp != ""
}

func resolveAction(action actions.Action, params actions.Parameters) *Resolution {
	return &Resolution{Action: action, Params: params}
}

func requireMoreInfo(action actions.Action, followUp string, env *models.Envelope) *Resolution {
	return &Resolution{Action: action, FollowUp: followUp, Envelope: env}
}
