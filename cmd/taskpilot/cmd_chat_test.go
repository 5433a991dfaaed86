package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskpilot/taskpilot/internal/actions"
	"github.com/taskpilot/taskpilot/internal/decision"
	"github.com/taskpilot/taskpilot/internal/generation"
	"github.com/taskpilot/taskpilot/internal/models"
	"github.com/taskpilot/taskpilot/internal/processor"
	"github.com/taskpilot/taskpilot/internal/taskstore"
)

func newChatProcessor(engine generation.Engine) (*processor.Processor, taskstore.Store) {
	store := taskstore.NewMemoryStore()
	available := []actions.Action{
		actions.NewCreateTask(store),
		actions.NewCompleteTask(store),
		actions.NewListTasks(store),
		actions.NewRequireInfo(),
	}
	return processor.New(decision.NewMaker(engine, time.Minute, available)), store
}

func TestChatLoopFollowUpConversation(t *testing.T) {
	engine := generation.NewMockEngine("mock",
		`{"intent": "CREATE_TASK"}`,
		`{"description": "plan offsite", "needsMoreInfo": true, "followUpQuestion": "When should it happen?"}`,
		`{"intent": "CREATE_TASK"}`,
		`{"deadline": "2026-10-01", "needsMoreInfo": false}`)
	proc, store := newChatProcessor(engine)

	in := strings.NewReader("plan the offsite\nfirst week of october\nexit\n")
	var out bytes.Buffer

	err := runChatLoop(context.Background(), proc, in, &out)
	require.NoError(t, err)

	output := out.String()
	require.Contains(t, output, "When should it happen?")
	require.Contains(t, output, "Task processed successfully")

	all, err := store.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "plan offsite", all[0].Description)
}

func TestChatLoopListsTasks(t *testing.T) {
	engine := generation.NewMockEngine("mock",
		`{"intent": "LIST_TASKS"}`,
		`{"needsMoreInfo": false}`)
	proc, store := newChatProcessor(engine)

	_, err := store.Save(context.Background(), models.NewTaskUnchecked("buy milk", nil, "", ""))
	require.NoError(t, err)

	in := strings.NewReader("what's on my list?\nexit\n")
	var out bytes.Buffer

	err = runChatLoop(context.Background(), proc, in, &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "#1 buy milk")
}

func TestChatLoopBlankLinesIgnored(t *testing.T) {
	engine := generation.NewMockEngine("mock")
	proc, _ := newChatProcessor(engine)

	in := strings.NewReader("\n   \nexit\n")
	var out bytes.Buffer

	err := runChatLoop(context.Background(), proc, in, &out)
	require.NoError(t, err)

	// Blank input never reaches the model.
	require.Empty(t, engine.Requests)
}
