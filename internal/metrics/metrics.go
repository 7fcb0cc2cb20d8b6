// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Notification outcomes passed to IncNotification.
const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationSkipped = "skipped"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Signup endpoint metrics
	IncSignupAccepted()
	IncSignupRejected(reason string) // reason: "invalid_json" or "invalid_email"

	// Record store metrics
	IncStorageFallback()
	IncStorageFailure()
	ObserveAppendDuration(duration time.Duration)

	// Side effects after persistence
	IncNotification(status string) // status: "sent", "failed", "skipped"
	IncMirror(status string)       // status: "success" or "failed"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
