package common

import "context"

type contextKey string

const contextKeyRunID contextKey = "run_id"

// WithRunID stamps the analysis run id into the context so pipeline stages
// can correlate their log lines with the persisted run.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, contextKeyRunID, runID)
}

// RunIDFromContext returns the run id, empty when the work is not tied to a
// persisted run (CLI one-offs, batch files).
func RunIDFromContext(ctx context.Context) string {
	if runID, ok := ctx.Value(contextKeyRunID).(string); ok {
		return runID
	}
	return ""
}
