package decision

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskpilot/taskpilot/internal/generation"
	"github.com/taskpilot/taskpilot/internal/models"
	"github.com/taskpilot/taskpilot/internal/taskerr"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		response string
		want     models.Intent
	}{
		{name: "create", response: `{"intent": "CREATE_TASK"}`, want: models.IntentCreateTask},
		{name: "complete", response: `{"intent": "COMPLETE_TASK"}`, want: models.IntentCompleteTask},
		{name: "list", response: `{"intent": "LIST_TASKS"}`, want: models.IntentListTasks},
		{name: "fenced", response: "```json\n{\"intent\": \"LIST_TASKS\"}\n```", want: models.IntentListTasks},
		{name: "prose around the object", response: `Sure! {"intent": "CREATE_TASK"} Hope that helps.`, want: models.IntentCreateTask},
		{name: "unknown label is no intent", response: `{"intent": "DELETE_TASK"}`, want: ""},
		{name: "missing field is no intent", response: `{}`, want: ""},
	}

	for _, td := range testCases {
		t.Run(td.name, func(t *testing.T) {
			engine := generation.NewMockEngine("mock", td.response)
			classifier := NewClassifier(engine, time.Minute)

			intent, err := classifier.Classify(context.Background(), "do the thing")
			require.NoError(t, err)
			require.Equal(t, td.want, intent)
		})
	}
}

func TestClassifyUndecodableOutput(t *testing.T) {
	engine := generation.NewMockEngine("mock", "I cannot answer in JSON, sorry.")
	classifier := NewClassifier(engine, time.Minute)

	_, err := classifier.Classify(context.Background(), "do the thing")
	var derr *taskerr.DecodeError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, "classifier", derr.Source)
}

func TestClassifySendsQueryAndInstructions(t *testing.T) {
	engine := generation.NewMockEngine("mock", `{"intent": "LIST_TASKS"}`)
	classifier := NewClassifier(engine, time.Minute)

	_, err := classifier.Classify(context.Background(), "what's on my plate?")
	require.NoError(t, err)

	require.Len(t, engine.Requests, 1)
	require.Equal(t, "what's on my plate?", engine.Requests[0].Prompt)
	require.Contains(t, engine.Requests[0].System, "CREATE_TASK")
	require.Contains(t, engine.Requests[0].System, "COMPLETE_TASK")
	require.Contains(t, engine.Requests[0].System, "LIST_TASKS")
}
