package webserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskpilot/taskpilot/internal/actions"
	"github.com/taskpilot/taskpilot/internal/decision"
	"github.com/taskpilot/taskpilot/internal/generation"
	"github.com/taskpilot/taskpilot/internal/processor"
	"github.com/taskpilot/taskpilot/internal/taskstore"
)

func TestServerRoutesRegistered(t *testing.T) {
	store := taskstore.NewMemoryStore()
	engine := generation.NewMockEngine("mock")
	proc := processor.New(decision.NewMaker(engine, time.Minute, []actions.Action{
		actions.NewListTasks(store),
		actions.NewRequireInfo(),
	}))

	server := New(Config{Port: 8080}, store, proc)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestServerAppliesCORS(t *testing.T) {
	store := taskstore.NewMemoryStore()
	engine := generation.NewMockEngine("mock")
	proc := processor.New(decision.NewMaker(engine, time.Minute, nil))

	server := New(Config{AllowedOrigins: []string{"http://localhost:5173"}}, store, proc)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
