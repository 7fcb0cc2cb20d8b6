package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	SignupsAccepted       uint64
	SignupsRejectedJSON   uint64
	SignupsRejectedEmail  uint64
	StorageFallbacks      uint64
	StorageFailures       uint64
	AppendDurationCount   uint64
	AppendDurationTotalNs int64
	NotificationsSent     uint64
	NotificationsFailed   uint64
	NotificationsSkipped  uint64
	MirrorWritesSucceeded uint64
	MirrorWritesFailed    uint64
}

// InMemoryRecorder stores metrics in memory. It backs GET /metrics and tests.
type InMemoryRecorder struct {
	signupsAccepted       uint64
	signupsRejectedJSON   uint64
	signupsRejectedEmail  uint64
	storageFallbacks      uint64
	storageFailures       uint64
	appendDurationCount   uint64
	appendDurationTotalNs int64
	notificationsSent     uint64
	notificationsFailed   uint64
	notificationsSkipped  uint64
	mirrorSucceeded       uint64
	mirrorFailed          uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		SignupsAccepted:       atomic.LoadUint64(&m.signupsAccepted),
		SignupsRejectedJSON:   atomic.LoadUint64(&m.signupsRejectedJSON),
		SignupsRejectedEmail:  atomic.LoadUint64(&m.signupsRejectedEmail),
		StorageFallbacks:      atomic.LoadUint64(&m.storageFallbacks),
		StorageFailures:       atomic.LoadUint64(&m.storageFailures),
		AppendDurationCount:   atomic.LoadUint64(&m.appendDurationCount),
		AppendDurationTotalNs: atomic.LoadInt64(&m.appendDurationTotalNs),
		NotificationsSent:     atomic.LoadUint64(&m.notificationsSent),
		NotificationsFailed:   atomic.LoadUint64(&m.notificationsFailed),
		NotificationsSkipped:  atomic.LoadUint64(&m.notificationsSkipped),
		MirrorWritesSucceeded: atomic.LoadUint64(&m.mirrorSucceeded),
		MirrorWritesFailed:    atomic.LoadUint64(&m.mirrorFailed),
	}
}

// IncSignupAccepted increments the accepted signup counter.
func (m *InMemoryRecorder) IncSignupAccepted() {
	atomic.AddUint64(&m.signupsAccepted, 1)
}

// IncSignupRejected increments the rejection counter for reason.
// Unknown reasons are counted as invalid email.
func (m *InMemoryRecorder) IncSignupRejected(reason string) {
	if reason == "invalid_json" {
		atomic.AddUint64(&m.signupsRejectedJSON, 1)
		return
	}
	atomic.AddUint64(&m.signupsRejectedEmail, 1)
}

// IncStorageFallback increments the fallback directory counter.
func (m *InMemoryRecorder) IncStorageFallback() {
	atomic.AddUint64(&m.storageFallbacks, 1)
}

// IncStorageFailure increments the unrecoverable write counter.
func (m *InMemoryRecorder) IncStorageFailure() {
	atomic.AddUint64(&m.storageFailures, 1)
}

// ObserveAppendDuration records how long a log append took.
func (m *InMemoryRecorder) ObserveAppendDuration(duration time.Duration) {
	atomic.AddUint64(&m.appendDurationCount, 1)
	atomic.AddInt64(&m.appendDurationTotalNs, duration.Nanoseconds())
}

// IncNotification increments the notification counter for status.
func (m *InMemoryRecorder) IncNotification(status string) {
	switch status {
	case NotificationSent:
		atomic.AddUint64(&m.notificationsSent, 1)
	case NotificationFailed:
		atomic.AddUint64(&m.notificationsFailed, 1)
	case NotificationSkipped:
		atomic.AddUint64(&m.notificationsSkipped, 1)
	}
}

// IncMirror increments the Postgres mirror counter for status.
func (m *InMemoryRecorder) IncMirror(status string) {
	if status == "success" {
		atomic.AddUint64(&m.mirrorSucceeded, 1)
		return
	}
	atomic.AddUint64(&m.mirrorFailed, 1)
}
