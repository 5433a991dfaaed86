package generation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	copilot "github.com/github/copilot-sdk/go"
)

// CopilotEngine integrates with GitHub Copilot SDK
type CopilotEngine struct {
	defaultModelID string

	client copilotClient

	startOnce sync.Once
}

// CopilotEngineBuilder builds a CopilotEngine with options
type CopilotEngineBuilder struct {
	engine *CopilotEngine
}

type CopilotEngineBuilderOptions struct {
	NewCopilotClient func(clientOptions *copilot.ClientOptions) copilotClient
}

// NewCopilotEngineBuilder creates a builder for CopilotEngine
//   - defaultModelID - the model used for completions. Can be blank, which
//     means the copilot CLI will choose its own fallback model.
func NewCopilotEngineBuilder(defaultModelID string, options *CopilotEngineBuilderOptions) *CopilotEngineBuilder {
	var client copilotClient

	copilotOptions := &copilot.ClientOptions{
		LogLevel:  "error",
		AutoStart: copilot.Bool(false),
	}

	if options == nil || options.NewCopilotClient == nil {
		client = newCopilotClient(copilotOptions)
	} else {
		client = options.NewCopilotClient(copilotOptions)
	}

	builder := &CopilotEngineBuilder{
		engine: &CopilotEngine{
			defaultModelID: defaultModelID,
		},
	}

	builder.engine.client = client
	return builder
}

func (b *CopilotEngineBuilder) Build() *CopilotEngine {
	return b.engine
}

// Initialize sets up the Copilot client
func (e *CopilotEngine) Initialize(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// Complete sends a single prompt and collects the assistant's reply.
// Every call runs in a fresh session: the conversation state the assistant
// needs is carried in the prompt itself, not in the model session.
func (e *CopilotEngine) Complete(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("nil req was passed to CopilotEngine.Complete")
	}

	if req.Timeout <= 0 {
		return nil, fmt.Errorf("positive Timeout is required")
	}

	var startErr error

	e.startOnce.Do(func() {
		// NOTE: copilot client has an 'autostart' feature, but it runs into
		// issues when it tries to autostart from separate goroutines.
		startErr = e.client.Start(ctx)
	})

	if startErr != nil {
		return nil, fmt.Errorf("copilot failed to start: %w", startErr)
	}

	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	session, err := e.client.CreateSession(ctx, &copilot.SessionConfig{
		Model: e.defaultModelID,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	var mu sync.Mutex
	var parts []string

	unsubscribe := session.On(func(event copilot.SessionEvent) {
		if event.Type == copilot.AssistantMessage && event.Data.Content != nil {
			mu.Lock()
			parts = append(parts, *event.Data.Content)
			mu.Unlock()
		}
	})
	defer unsubscribe()

	prompt := req.Prompt

	if req.System != "" {
		prompt = req.System + "\n\n" + req.Prompt
	}

	_, err = session.SendAndWait(ctx, copilot.MessageOptions{
		Prompt: prompt,
	})

	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	mu.Lock()
	content := strings.Join(parts, "")
	mu.Unlock()

	return &Response{
		Content:    content,
		ModelID:    e.defaultModelID,
		DurationMs: time.Since(start).Milliseconds(),
	}, nil
}

// Shutdown cleans up resources
func (e *CopilotEngine) Shutdown(ctx context.Context) error {
	return e.client.Stop()
}

// Ensure CopilotEngine satisfies Engine.
var _ Engine = (*CopilotEngine)(nil)
