package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	copilot "github.com/github/copilot-sdk/go"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	replies  []string
	sendErr  error
	handlers []copilot.SessionEventHandler

	lastPrompt string
}

func (s *fakeSession) On(handler copilot.SessionEventHandler) func() {
	s.handlers = append(s.handlers, handler)
	return func() {}
}

func (s *fakeSession) SendAndWait(ctx context.Context, options copilot.MessageOptions) (*copilot.SessionEvent, error) {
	s.lastPrompt = options.Prompt

	if s.sendErr != nil {
		return nil, s.sendErr
	}

	for _, reply := range s.replies {
		content := reply
		event := copilot.SessionEvent{Type: copilot.AssistantMessage}
		event.Data.Content = &content
		for _, h := range s.handlers {
			h(event)
		}
	}

	return &copilot.SessionEvent{}, nil
}

type fakeClient struct {
	session   *fakeSession
	started   bool
	stopped   bool
	createErr error

	lastConfig *copilot.SessionConfig
}

func (c *fakeClient) CreateSession(ctx context.Context, config *copilot.SessionConfig) (copilotSession, error) {
	c.lastConfig = config
	if c.createErr != nil {
		return nil, c.createErr
	}
	return c.session, nil
}

func (c *fakeClient) Start(ctx context.Context) error {
	c.started = true
	return nil
}

func (c *fakeClient) Stop() error {
	c.stopped = true
	return nil
}

func newTestEngine(client *fakeClient) *CopilotEngine {
	return NewCopilotEngineBuilder("gpt-4o-mini", &CopilotEngineBuilderOptions{
		NewCopilotClient: func(clientOptions *copilot.ClientOptions) copilotClient { return client },
	}).Build()
}

func TestCopilotComplete(t *testing.T) {
	client := &fakeClient{session: &fakeSession{replies: []string{`{"intent": `, `"CREATE_TASK"}`}}}
	engine := newTestEngine(client)

	require.NoError(t, engine.Initialize(context.Background()))

	resp, err := engine.Complete(context.Background(), &Request{
		System:  "You classify intents.",
		Prompt:  "remind me to buy milk",
		Timeout: time.Minute,
	})
	require.NoError(t, err)
	require.Equal(t, `{"intent": "CREATE_TASK"}`, resp.Content)
	require.Equal(t, "gpt-4o-mini", resp.ModelID)
	require.True(t, client.started)
	require.Equal(t, "gpt-4o-mini", client.lastConfig.Model)

	// The system instructions are carried in the prompt itself.
	require.Equal(t, "You classify intents.\n\nremind me to buy milk", client.session.lastPrompt)

	require.NoError(t, engine.Shutdown(context.Background()))
	require.True(t, client.stopped)
}

func TestCopilotComplete_RequiredFields(t *testing.T) {
	engine := newTestEngine(&fakeClient{session: &fakeSession{}})

	_, err := engine.Complete(context.Background(), &Request{Prompt: "hi"})
	require.ErrorContains(t, err, "positive Timeout is required")

	_, err = engine.Complete(context.Background(), nil)
	require.ErrorContains(t, err, "nil req")
}

func TestCopilotCompleteSendError(t *testing.T) {
	client := &fakeClient{session: &fakeSession{sendErr: errors.New("session error occurred")}}
	engine := newTestEngine(client)

	_, err := engine.Complete(context.Background(), &Request{Prompt: "hi", Timeout: time.Minute})
	require.ErrorContains(t, err, "session error occurred")
}

func TestMockEngineFIFO(t *testing.T) {
	engine := NewMockEngine("mock-model", "first", "second")

	resp, err := engine.Complete(context.Background(), &Request{Prompt: "a", Timeout: time.Minute})
	require.NoError(t, err)
	require.Equal(t, "first", resp.Content)

	resp, err = engine.Complete(context.Background(), &Request{Prompt: "b", Timeout: time.Minute})
	require.NoError(t, err)
	require.Equal(t, "second", resp.Content)

	_, err = engine.Complete(context.Background(), &Request{Prompt: "c", Timeout: time.Minute})
	require.ErrorContains(t, err, "no response queued")

	require.Len(t, engine.Requests, 3)
	require.Equal(t, "a", engine.Requests[0].Prompt)
}
