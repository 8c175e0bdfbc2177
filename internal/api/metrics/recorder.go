package metrics

import "github.com/cargoline/backoffice/internal/core/domain"

// Recorder feeds service events into the Prometheus collectors.
type Recorder struct{}

func (Recorder) DocumentCreated(kind domain.Kind) {
	DocumentsCreatedTotal.WithLabelValues(string(kind)).Inc()
}

func (Recorder) TransitionApplied(kind domain.Kind, to domain.Status) {
	TransitionsTotal.WithLabelValues(string(kind), string(to)).Inc()
}

func (Recorder) TransitionFailed(reason string) {
	TransitionErrorsTotal.WithLabelValues(reason).Inc()
}

func (Recorder) NumberRetried(prefix string) {
	NumberAllocationRetriesTotal.WithLabelValues(prefix).Inc()
}

func (Recorder) PermissionDenied(resource domain.Resource, action domain.Action) {
	PermissionDeniedTotal.WithLabelValues(string(resource), string(action)).Inc()
}
