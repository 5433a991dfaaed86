// Package processor is the top-level entry point for conversational
// queries: it validates input, drives the decision maker, executes the
// chosen action, and shapes the reply the caller sees.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/taskpilot/taskpilot/internal/decision"
	"github.com/taskpilot/taskpilot/internal/models"
	"github.com/taskpilot/taskpilot/internal/taskerr"
)

// Query is one conversational turn. Envelope is the state returned by an
// earlier turn, or nil at the start of a conversation.
type Query struct {
	Text     string
	Envelope *models.Envelope
}

// Outcome is the reply for one turn. When RequiresFollowUp is set the
// Response is a question and Envelope must be sent back with the user's
// answer; otherwise the conversation is finished and Envelope is nil.
type Outcome struct {
	Response         string           `json:"response"`
	Task             *models.Task     `json:"resultTask,omitempty"`
	Tasks            []models.Task    `json:"resultTasks,omitempty"`
	RequiresFollowUp bool             `json:"requiresFollowUp"`
	Envelope         *models.Envelope `json:"context,omitempty"`
}

// Processor processes conversational queries.
type Processor struct {
	maker *decision.Maker
}

// New creates a processor on top of the given decision maker.
func New(maker *decision.Maker) *Processor {
	return &Processor{maker: maker}
}

// Process handles one turn. A blank query is a ValidationError and always
// propagates. Failures inside the conversation (a model reply that cannot
// be decoded, an engine outage) are reported in the outcome text so the
// caller can show them and carry on.
func (p *Processor) Process(ctx context.Context, q *Query) (*Outcome, error) {
	if q == nil || strings.TrimSpace(q.Text) == "" {
		return nil, taskerr.NewValidation("query cannot be empty")
	}

	prior := q.Envelope
	conversationID := conversationIDFor(prior)

	res, err := p.maker.Decide(ctx, q.Text, prior)
	if err != nil {
		var verr *taskerr.ValidationError
		if errors.As(err, &verr) {
			return nil, err
		}
		slog.Error("query processing failed", "error", err)
		return &Outcome{Response: fmt.Sprintf("Error processing query: %v", err)}, nil
	}

	if res == nil {
		return &Outcome{Response: "Failed to process query: No intent recognized"}, nil
	}

	if res.RequiresFollowUp() {
		env := res.Envelope
		env.ConversationID = conversationID
		return &Outcome{
			Response:         res.FollowUp,
			RequiresFollowUp: true,
			Envelope:         env,
		}, nil
	}

	result, err := res.Action.Execute(ctx, res.Params)
	if err != nil {
		var verr *taskerr.ValidationError
		var nfe *taskerr.NotFoundError
		if errors.As(err, &verr) || errors.As(err, &nfe) {
			return nil, err
		}
		slog.Error("action execution failed", "error", err)
		return &Outcome{Response: fmt.Sprintf("Error processing query: %v", err)}, nil
	}

	return &Outcome{
		Response: "Task processed successfully",
		Task:     result.Task,
		Tasks:    result.Tasks,
	}, nil
}

func conversationIDFor(prior *models.Envelope) string {
	if prior != nil && prior.ConversationID != "" {
		return prior.ConversationID
	}
	return uuid.NewString()
}
