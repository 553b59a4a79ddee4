package tool

import "context"

// Executor performs the concrete action named by a tool invocation. The
// production implementation drives a real browser; the engine only depends
// on this contract.
type Executor interface {
	Execute(ctx context.Context, name string, args map[string]any) (string, error)
	ElementExists(ctx context.Context, selector string) (bool, error)
}
