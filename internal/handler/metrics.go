package handler

import (
	"fmt"
	"net/http"

	"github.com/unbounded/waitlist/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "waitlist_signups_accepted_total %d\n", snap.SignupsAccepted)
	writeMetric(w, "waitlist_signups_rejected_total{reason=\"invalid_json\"} %d\n", snap.SignupsRejectedJSON)
	writeMetric(w, "waitlist_signups_rejected_total{reason=\"invalid_email\"} %d\n", snap.SignupsRejectedEmail)

	writeMetric(w, "waitlist_storage_fallback_total %d\n", snap.StorageFallbacks)
	writeMetric(w, "waitlist_storage_failures_total %d\n", snap.StorageFailures)
	writeMetric(w, "waitlist_storage_append_duration_seconds_count %d\n", snap.AppendDurationCount)
	writeMetric(w, "waitlist_storage_append_duration_seconds_sum %.6f\n", float64(snap.AppendDurationTotalNs)/1e9)

	writeMetric(w, "waitlist_notifications_total{status=\"sent\"} %d\n", snap.NotificationsSent)
	writeMetric(w, "waitlist_notifications_total{status=\"failed\"} %d\n", snap.NotificationsFailed)
	writeMetric(w, "waitlist_notifications_total{status=\"skipped\"} %d\n", snap.NotificationsSkipped)

	writeMetric(w, "waitlist_mirror_total{status=\"success\"} %d\n", snap.MirrorWritesSucceeded)
	writeMetric(w, "waitlist_mirror_total{status=\"failed\"} %d\n", snap.MirrorWritesFailed)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
