package decision

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/taskpilot/taskpilot/internal/generation"
	"github.com/taskpilot/taskpilot/internal/models"
	"github.com/taskpilot/taskpilot/internal/taskerr"
)

const refineSystemPrompt = `You are a task refinement assistant. Analyze the task and help make it well-defined.
Extract the following fields and format your response as JSON:
- description: A clear task description
- deadline: A deadline date in ISO format, or null if not specified
- priority: priority level (HIGH, MEDIUM, LOW), or null if not specified
- constraints: Any constraints or requirements, or null if not specified
- needsMoreInfo: true if you need to ask a follow-up question, false otherwise
- followUpQuestion: If needsMoreInfo is true, provide a specific question to ask`

// refinementPayload is the structure the refinement prompt asks for.
type refinementPayload struct {
	Description      string `mapstructure:"description"`
	Deadline         string `mapstructure:"deadline"`
	Priority         string `mapstructure:"priority"`
	Constraints      string `mapstructure:"constraints"`
	NeedsMoreInfo    bool   `mapstructure:"needsMoreInfo"`
	FollowUpQuestion string `mapstructure:"followUpQuestion"`
}

// Refiner extracts task details from a query, carrying forward whatever
// earlier turns already collected.
type Refiner struct {
	engine  generation.Engine
	timeout time.Duration
}

// NewRefiner creates a refiner using the given engine. Each model call
// is bounded by timeout.
func NewRefiner(engine generation.Engine, timeout time.Duration) *Refiner {
	return &Refiner{engine: engine, timeout: timeout}
}

// Refine runs one extraction call and folds the result into a fresh
// envelope. Slots collected on earlier turns are kept: a field from the
// new extraction only wins when it is non-empty. When the model reports
// it needs more information the envelope carries its question verbatim
// and awaits the user's answer.
func (r *Refiner) Refine(ctx context.Context, query string, prior *models.Envelope) (*models.Envelope, error) {
	prompt := r.buildPrompt(query, prior)

	resp, err := r.engine.Complete(ctx, &generation.Request{
		System:  refineSystemPrompt,
		Prompt:  prompt,
		Timeout: r.timeout,
	})
	if err != nil {
		return nil, err
	}

	doc, err := extractJSON(resp.Content)
	if err != nil {
		return nil, taskerr.NewDecode("refiner", err)
	}

	if problems := validateRefinement(doc); len(problems) > 0 {
		return nil, taskerr.NewDecode("refiner", fmt.Errorf("refinement payload invalid: %s", strings.Join(problems, "; ")))
	}

	var payload refinementPayload
	if err := mapstructure.Decode(doc, &payload); err != nil {
		return nil, taskerr.NewDecode("refiner", err)
	}

	priorSlots := models.EmptySlots()
	if prior != nil {
		priorSlots = prior.Slots
	}

	slots := priorSlots.Merge(models.TaskSlots{
		Description: payload.Description,
		Deadline:    payload.Deadline,
		Priority:    payload.Priority,
		Constraints: payload.Constraints,
	})

	env := &models.Envelope{
		Intent: models.IntentCreateTask,
		Slots:  slots,
	}
	if prior != nil {
		env.ConversationID = prior.ConversationID
	}

	if payload.NeedsMoreInfo {
		if payload.FollowUpQuestion == "" {
			return nil, taskerr.NewDecode("refiner", fmt.Errorf("model asked for more info without a follow-up question"))
		}
		env.AwaitingInput = true
		env.FollowUpQuestion = payload.FollowUpQuestion
	}

	slog.Debug("refinement complete", "awaitingInput", env.AwaitingInput, "slots", env.Slots)
	return env, nil
}

// buildPrompt distinguishes a fresh request from an answer to our own
// follow-up question. On a continuation the model sees what is already
// known so it updates instead of starting over.
func (r *Refiner) buildPrompt(query string, prior *models.Envelope) string {
	if !prior.Continuing() {
		return fmt.Sprintf(`Analyze this task request and extract structured information:
%q

If anything is unclear, set needsMoreInfo to true and provide a specific followUpQuestion.`, query)
	}

	var known strings.Builder
	known.WriteString("We already have the following information:\n")

	slots := prior.Slots
	if slots.Description != "" {
		fmt.Fprintf(&known, "- Description: %s\n", slots.Description)
	}
	if slots.Deadline != "" {
		fmt.Fprintf(&known, "- Deadline: %s\n", slots.Deadline)
	}
	if slots.Priority != "" {
		fmt.Fprintf(&known, "- Priority: %s\n", slots.Priority)
	}
	if slots.Constraints != "" {
		fmt.Fprintf(&known, "- Constraints: %s\n", slots.Constraints)
	}

	return fmt.Sprintf(`%s
The user has provided a new response:
%q

Update the task information accordingly and provide the complete task details.`, known.String(), query)
}
