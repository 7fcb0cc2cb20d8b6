package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncSignupAccepted is a no-op.
func (n *NoopRecorder) IncSignupAccepted() {}

// IncSignupRejected is a no-op.
func (n *NoopRecorder) IncSignupRejected(reason string) {}

// IncStorageFallback is a no-op.
func (n *NoopRecorder) IncStorageFallback() {}

// IncStorageFailure is a no-op.
func (n *NoopRecorder) IncStorageFailure() {}

// ObserveAppendDuration is a no-op.
func (n *NoopRecorder) ObserveAppendDuration(duration time.Duration) {}

// IncNotification is a no-op.
func (n *NoopRecorder) IncNotification(status string) {}

// IncMirror is a no-op.
func (n *NoopRecorder) IncMirror(status string) {}
