// Package generation abstracts the text-generation model the assistant
// consults for intent classification and slot refinement.
package generation

import (
	"context"
	"time"
)

// Engine is the interface for producing model completions.
type Engine interface {
	// Initialize sets up the engine
	Initialize(ctx context.Context) error

	// Complete sends a single prompt and returns the model's reply
	Complete(ctx context.Context, req *Request) (*Response, error)

	// Shutdown cleans up resources
	Shutdown(ctx context.Context) error
}

// Request is a single completion request.
type Request struct {
	System  string
	Prompt  string
	Timeout time.Duration
}

// Response is the result of a completion.
type Response struct {
	Content    string
	ModelID    string
	DurationMs int64
}
