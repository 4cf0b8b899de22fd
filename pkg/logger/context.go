package logger

import "context"

type ctxKey string

const runIDKey ctxKey = "x-run-id"

// ContextWithRunID returns a context carrying the simulation run id so that
// every *Context log call of this package tags its entry with it.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext returns the run id stored in ctx, or "" when absent.
func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}
