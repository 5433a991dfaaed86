package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/taskpilot/taskpilot/internal/projectconfig"
	"github.com/taskpilot/taskpilot/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

The assistant is exposed at POST /api/query; callers round-trip the
returned context with each follow-up answer. Task CRUD endpoints live
under /api/tasks. Configuration is read from .taskpilot.yaml, found by
walking up from the current directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := projectconfig.Load(".")
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}

			assistant, err := newAssistant(cfg)
			if err != nil {
				return err
			}
			defer assistant.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := assistant.engine.Initialize(ctx); err != nil {
				return fmt.Errorf("initializing generation engine: %w", err)
			}
			defer func() {
				if err := assistant.engine.Shutdown(context.Background()); err != nil {
					slog.Warn("engine shutdown failed", "error", err)
				}
			}()

			server := webserver.New(webserver.Config{
				Port:           cfg.Server.Port,
				AllowedOrigins: cfg.Server.AllowedOrigins,
			}, assistant.store, assistant.proc)

			return server.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides config)")

	return cmd
}
