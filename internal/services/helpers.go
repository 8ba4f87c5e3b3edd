package services

import "context"

// Broadcaster pushes realtime events to connected dashboard clients.
// Satisfied by realtime.Hub; nil disables broadcasts.
type Broadcaster interface {
	Broadcast(room, event string, data any)
}

const (
	// defaultListLimit caps public listings that do not ask for a limit.
	defaultListLimit = 50
	// maxListLimit bounds client-supplied limits.
	maxListLimit = 200
)

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
