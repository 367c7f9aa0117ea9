package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Uploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "classnotes", Name: "uploads_total", Help: "Number of document uploads by result."},
		[]string{"result"},
	)
	Deletions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "classnotes", Name: "deletions_total", Help: "Number of document deletions by result."},
		[]string{"result"},
	)
	OrphanedBlobs = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "classnotes", Name: "orphaned_blobs_total", Help: "Blobs left behind after a failed post-delete cleanup."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "classnotes", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "classnotes", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(Uploads, Deletions, OrphanedBlobs, RateLimitAllowed, RateLimitRejected)
}
