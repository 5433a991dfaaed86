// Package decision turns a free-text query and the conversation so far
// into a resolved action, or a follow-up question when information is
// still missing.
package decision

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/taskpilot/taskpilot/internal/generation"
	"github.com/taskpilot/taskpilot/internal/models"
	"github.com/taskpilot/taskpilot/internal/taskerr"
)

const classifySystemPrompt = `You are a task management assistant that helps users manage their tasks.
Analyze the user's intent and respond with one of these values for the 'intent' field:
- CREATE_TASK
- COMPLETE_TASK
- LIST_TASKS

Format your response as valid JSON with a single 'intent' field.`

// Classifier labels a query with one intent via a single model call.
type Classifier struct {
	engine  generation.Engine
	timeout time.Duration
}

// NewClassifier creates a classifier using the given engine. Each model
// call is bounded by timeout.
func NewClassifier(engine generation.Engine, timeout time.Duration) *Classifier {
	return &Classifier{engine: engine, timeout: timeout}
}

// Classify returns the intent for the query. An unrecognized label is
// not an error: it returns the zero Intent and the caller decides what
// "no intent" means. Output that is not JSON at all is a DecodeError.
func (c *Classifier) Classify(ctx context.Context, query string) (models.Intent, error) {
	resp, err := c.engine.Complete(ctx, &generation.Request{
		System:  classifySystemPrompt,
		Prompt:  query,
		Timeout: c.timeout,
	})
	if err != nil {
		return "", err
	}

	doc, err := extractJSON(resp.Content)
	if err != nil {
		return "", taskerr.NewDecode("classifier", err)
	}

	var payload struct {
		Intent string `mapstructure:"intent"`
	}
	if err := mapstructure.Decode(doc, &payload); err != nil {
		return "", taskerr.NewDecode("classifier", err)
	}

	intent := models.ParseIntent(payload.Intent)
	if intent == "" {
		slog.Debug("classifier produced no usable intent", "label", payload.Intent, "query", query)
	}
	return intent, nil
}
