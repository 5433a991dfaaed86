package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taskpilot/taskpilot/internal/models"
	"github.com/taskpilot/taskpilot/internal/processor"
	"github.com/taskpilot/taskpilot/internal/projectconfig"
	"github.com/taskpilot/taskpilot/internal/taskerr"
)

func newChatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant interactively",
		Long: `Talk to the assistant interactively.

Each line is one conversational turn. The command keeps the conversation
envelope between turns the same way a remote API caller would, so
follow-up questions work exactly as they do over HTTP. End the session
with 'exit' or Ctrl-D.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := projectconfig.Load(".")
			if err != nil {
				return err
			}

			assistant, err := newAssistant(cfg)
			if err != nil {
				return err
			}
			defer assistant.close()

			ctx := cmd.Context()

			if err := assistant.engine.Initialize(ctx); err != nil {
				return fmt.Errorf("initializing generation engine: %w", err)
			}
			defer func() {
				if err := assistant.engine.Shutdown(context.Background()); err != nil {
					slog.Warn("engine shutdown failed", "error", err)
				}
			}()

			return runChatLoop(ctx, assistant.proc, os.Stdin, cmd.OutOrStdout())
		},
	}

	return cmd
}

// runChatLoop reads one query per line and round-trips the conversation
// envelope between turns.
func runChatLoop(ctx context.Context, proc *processor.Processor, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	var envelope *models.Envelope

	fmt.Fprintln(out, "taskpilot: describe a task, complete one, or ask what's on your list.")

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			return nil
		}
		if line == "" {
			continue
		}

		outcome, err := proc.Process(ctx, &processor.Query{Text: line, Envelope: envelope})
		if err != nil {
			var verr *taskerr.ValidationError
			var nfe *taskerr.NotFoundError
			if errors.As(err, &verr) || errors.As(err, &nfe) {
				fmt.Fprintln(out, err.Error())
				continue
			}
			return err
		}

		fmt.Fprintln(out, outcome.Response)

		for _, task := range outcome.Tasks {
			status := " "
			if task.Completed {
				status = "x"
			}
			fmt.Fprintf(out, "  [%s] #%d %s\n", status, task.ID, task.Description)
		}

		if outcome.RequiresFollowUp {
			envelope = outcome.Envelope
		} else {
			envelope = nil
		}
	}
}
