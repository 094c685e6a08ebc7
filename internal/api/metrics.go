package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skindb_submissions_total",
		Help: "Skin submissions by outcome.",
	}, []string{"outcome"})

	statsRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skindb_stats_refresh_total",
		Help: "Statistics cache refresh attempts by result.",
	}, []string{"result"})
)

func recordSubmission(apiErr *apiError) {
	switch {
	case apiErr == nil:
		submissionsTotal.WithLabelValues("queued").Inc()
	case apiErr.Status == http.StatusOK:
		submissionsTotal.WithLabelValues("duplicate").Inc()
	case apiErr.Status >= http.StatusInternalServerError:
		submissionsTotal.WithLabelValues("error").Inc()
	default:
		submissionsTotal.WithLabelValues("rejected").Inc()
	}
}
