package service

import "github.com/cargoline/backoffice/internal/core/domain"

// Recorder receives business events worth counting. The Prometheus
// implementation lives in the metrics package.
type Recorder interface {
	DocumentCreated(kind domain.Kind)
	TransitionApplied(kind domain.Kind, to domain.Status)
	TransitionFailed(reason string)
	NumberRetried(prefix string)
	PermissionDenied(resource domain.Resource, action domain.Action)
}

type nopRecorder struct{}

func (nopRecorder) DocumentCreated(domain.Kind) {}
func (nopRecorder) TransitionApplied(domain.Kind, domain.Status) {}
func (nopRecorder) TransitionFailed(string) {}
func (nopRecorder) NumberRetried(string) {}
func (nopRecorder) PermissionDenied(domain.Resource, domain.Action) {}
