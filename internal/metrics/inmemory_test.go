package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestInMemoryRecorder_Counters(t *testing.T) {
	t.Parallel()

	m := NewInMemory()
	m.IncSignupAccepted()
	m.IncSignupAccepted()
	m.IncSignupRejected("invalid_json")
	m.IncSignupRejected("invalid_email")
	m.IncStorageFallback()
	m.IncStorageFailure()
	m.ObserveAppendDuration(2 * time.Millisecond)
	m.IncNotification(NotificationSent)
	m.IncNotification(NotificationFailed)
	m.IncNotification(NotificationSkipped)
	m.IncNotification("bogus")
	m.IncMirror("success")
	m.IncMirror("failed")

	snap := m.Snapshot()

	checks := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"SignupsAccepted", snap.SignupsAccepted, 2},
		{"SignupsRejectedJSON", snap.SignupsRejectedJSON, 1},
		{"SignupsRejectedEmail", snap.SignupsRejectedEmail, 1},
		{"StorageFallbacks", snap.StorageFallbacks, 1},
		{"StorageFailures", snap.StorageFailures, 1},
		{"AppendDurationCount", snap.AppendDurationCount, 1},
		{"NotificationsSent", snap.NotificationsSent, 1},
		{"NotificationsFailed", snap.NotificationsFailed, 1},
		{"NotificationsSkipped", snap.NotificationsSkipped, 1},
		{"MirrorWritesSucceeded", snap.MirrorWritesSucceeded, 1},
		{"MirrorWritesFailed", snap.MirrorWritesFailed, 1},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	if snap.AppendDurationTotalNs != int64(2*time.Millisecond) {
		t.Errorf("AppendDurationTotalNs = %d, want %d", snap.AppendDurationTotalNs, int64(2*time.Millisecond))
	}
}

func TestInMemoryRecorder_ConcurrentIncrements(t *testing.T) {
	t.Parallel()

	m := NewInMemory()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncSignupAccepted()
		}()
	}
	wg.Wait()

	if got := m.Snapshot().SignupsAccepted; got != 100 {
		t.Errorf("SignupsAccepted = %d, want 100", got)
	}
}
