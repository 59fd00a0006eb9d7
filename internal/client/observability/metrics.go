// Package observability holds the client's Prometheus instruments.
package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	remoteRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack_client",
		Subsystem: "remote",
		Name:      "requests_total",
		Help:      "Remote store calls by method and outcome.",
	}, []string{"method", "outcome"})
	remoteLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fittrack_client",
		Subsystem: "remote",
		Name:      "request_duration_seconds",
		Help:      "Remote store call latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
	sessionTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack_client",
		Subsystem: "session",
		Name:      "transitions_total",
		Help:      "Session state transitions by target state.",
	}, []string{"state"})
	roleResolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack_client",
		Subsystem: "roles",
		Name:      "resolutions_total",
		Help:      "Administrator capability checks by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(remoteRequests, remoteLatency, sessionTransitions, roleResolutions)
}

// RecordRemoteCall counts one remote call and its latency.
func RecordRemoteCall(method string, elapsed time.Duration, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	remoteRequests.WithLabelValues(method, outcome).Inc()
	remoteLatency.WithLabelValues(method).Observe(elapsed.Seconds())
}

// RecordSessionTransition counts a transition into state.
func RecordSessionTransition(state string) {
	sessionTransitions.WithLabelValues(state).Inc()
}

// RecordRoleResolution counts a capability check outcome ("admin", "user"
// or "error").
func RecordRoleResolution(outcome string) {
	roleResolutions.WithLabelValues(outcome).Inc()
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
