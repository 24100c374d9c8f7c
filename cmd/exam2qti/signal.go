package main

import (
	"context"
	"os/signal"
)

// notifyContext returns a context canceled on the first stop signal.
// Conversions in flight finish their current file; queued files are skipped.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, stopSignals...)
}
