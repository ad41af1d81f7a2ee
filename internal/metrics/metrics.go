package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "kanso_coach"

var (
	snapshotDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "dashboard",
		Name:      "snapshot_duration_seconds",
		Help:      "Time spent fetching and aggregating one dashboard snapshot.",
		Buckets:   prometheus.DefBuckets,
	})

	dashboardRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dashboard",
		Name:      "requests_total",
		Help:      "Dashboard snapshot computations by outcome.",
	}, []string{"outcome"})

	activityWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "activity",
		Name:      "writes_total",
		Help:      "Workout, meal and measurement writes by kind and operation.",
	}, []string{"kind", "op"})

	streakJobs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "streak_worker",
		Name:      "jobs_total",
		Help:      "Streak recompute jobs by outcome (updated, unchanged, failed, dropped).",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(snapshotDuration, dashboardRequests, activityWrites, streakJobs)
}

// RecordSnapshot observes one dashboard computation started at start.
func RecordSnapshot(start time.Time, err error) {
	snapshotDuration.Observe(time.Since(start).Seconds())
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	dashboardRequests.WithLabelValues(outcome).Inc()
}

func RecordActivityWrite(kind, op string) {
	activityWrites.WithLabelValues(kind, op).Inc()
}

func RecordStreakJob(outcome string) {
	streakJobs.WithLabelValues(outcome).Inc()
}
