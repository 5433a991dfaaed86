package main

import (
	"fmt"
	"time"

	"github.com/taskpilot/taskpilot/internal/actions"
	"github.com/taskpilot/taskpilot/internal/decision"
	"github.com/taskpilot/taskpilot/internal/generation"
	"github.com/taskpilot/taskpilot/internal/processor"
	"github.com/taskpilot/taskpilot/internal/projectconfig"
	"github.com/taskpilot/taskpilot/internal/taskstore"
)

// assistant bundles everything a command needs to answer queries.
type assistant struct {
	store  taskstore.Store
	engine generation.Engine
	proc   *processor.Processor

	closers []func() error
}

// newAssistant wires the store, engine, actions, and processor from
// project configuration.
func newAssistant(cfg *projectconfig.ProjectConfig) (*assistant, error) {
	a := &assistant{}

	switch cfg.Storage.Driver {
	case "memory":
		a.store = taskstore.NewMemoryStore()
	case "sqlite":
		store, err := taskstore.NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("opening task store: %w", err)
		}
		a.store = store
		a.closers = append(a.closers, store.Close)
	default:
		return nil, fmt.Errorf("unknown storage driver %q (expected sqlite or memory)", cfg.Storage.Driver)
	}

	switch cfg.Generation.Engine {
	case "copilot-sdk":
		a.engine = generation.NewCopilotEngineBuilder(cfg.Generation.Model, nil).Build()
	case "mock":
		a.engine = generation.NewMockEngine(cfg.Generation.Model)
	default:
		return nil, fmt.Errorf("unknown generation engine %q (expected copilot-sdk or mock)", cfg.Generation.Engine)
	}

	available := []actions.Action{
		actions.NewCreateTask(a.store),
		actions.NewCompleteTask(a.store),
		actions.NewListTasks(a.store),
		actions.NewRequireInfo(),
	}

	timeout := time.Duration(cfg.Generation.TimeoutSeconds) * time.Second
	a.proc = processor.New(decision.NewMaker(a.engine, timeout, available))

	return a, nil
}

// close releases everything newAssistant opened.
func (a *assistant) close() {
	for _, closeFn := range a.closers {
		_ = closeFn()
	}
}
