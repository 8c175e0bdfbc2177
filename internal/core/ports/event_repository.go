package ports

import (
	"context"

	"github.com/cargoline/backoffice/internal/core/domain"
)

// EventRepository persists the status change audit trail.
type EventRepository interface {
	// InsertEvent stores an event in the status_events audit collection.
	InsertEvent(ctx context.Context, event *domain.StatusEvent) error
}
