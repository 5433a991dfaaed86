package decision

import (
	"context"
	"log/slog"
	"time"

	"github.com/taskpilot/taskpilot/internal/actions"
	"github.com/taskpilot/taskpilot/internal/generation"
	"github.com/taskpilot/taskpilot/internal/models"
)

// Maker decides what to do with a query: classify the intent, refine the
// task details, and route to the action that can handle it.
type Maker struct {
	classifier *Classifier
	refiner    *Refiner
	available  []actions.Action
}

// NewMaker creates a decision maker. The order of available actions is
// significant: the first action claiming an intent wins.
func NewMaker(engine generation.Engine, timeout time.Duration, available []actions.Action) *Maker {
	return &Maker{
		classifier: NewClassifier(engine, timeout),
		refiner:    NewRefiner(engine, timeout),
		available:  available,
	}
}

// Decide resolves the query against the conversation so far. A nil
// resolution with a nil error means no decision could be made: either no
// intent was recognized or no action can handle it. Classification and
// refinement errors propagate.
func (m *Maker) Decide(ctx context.Context, query string, prior *models.Envelope) (*Resolution, error) {
	intent, err := m.classifier.Classify(ctx, query)
	if err != nil {
		return nil, err
	}

	if intent == "" {
		slog.Warn("no intent recognized", "query", query)
		return nil, nil
	}

	slog.Debug("intent classified", "intent", intent)

	env, err := m.refiner.Refine(ctx, query, prior)
	if err != nil {
		return nil, err
	}

	if env.AwaitingInput {
		slog.Info("follow-up required", "question", env.FollowUpQuestion)
		action, _ := actions.Select(m.available, models.IntentRequireInfo)
		return requireMoreInfo(action, env.FollowUpQuestion, env), nil
	}

	params, ok := buildParameters(intent, env.Slots)
	if !ok {
		slog.Debug("no parameter mapping for intent", "intent", intent)
		return nil, nil
	}

	action, ok := actions.Select(m.available, intent)
	if !ok {
		slog.Debug("no action can handle intent", "intent", intent)
		return nil, nil
	}

	return resolveAction(action, params), nil
}

// buildParameters maps collected slots onto the parameter shape each
// intent needs. Intents without a mapping produce no decision.
func buildParameters(intent models.Intent, slots models.TaskSlots) (actions.Parameters, bool) {
	switch intent {
	case models.IntentCreateTask:
		return actions.ForCreate(slots.Description, slots.Deadline, slots.Priority, slots.Constraints), true
	case models.IntentCompleteTask:
		return actions.ForComplete(slots.TaskID), true
	case models.IntentListTasks:
		return actions.Parameters{}, true
	default:
		return actions.Parameters{}, false
	}
}
