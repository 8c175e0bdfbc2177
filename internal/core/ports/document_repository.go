package ports

import (
	"context"
	"time"

	"github.com/cargoline/backoffice/internal/core/domain"
)

// ListDocumentsFilter carries all query parameters for listing documents.
type ListDocumentsFilter struct {
	Kind       domain.Kind   // required: documents of one kind per query
	Status     domain.Status // optional
	ClientID   string        // optional
	Search     string        // optional: partial match on number
	IssuedFrom time.Time     // optional: issue_date >= IssuedFrom
	IssuedTo   time.Time     // optional: issue_date <= IssuedTo
	DueBefore  time.Time     // optional: due_date < DueBefore
	Page       int           // 1-based
	Limit      int           // capped by the service
}

// DocumentRepository defines persistence operations for commercial documents.
type DocumentRepository interface {
	// Create inserts a numbered document. A number collision yields
	// domain.ErrDuplicateNumber.
	Create(ctx context.Context, d *domain.Document) error
	FindByID(ctx context.Context, kind domain.Kind, id string) (*domain.Document, error)
	FindByIdempotencyKey(ctx context.Context, kind domain.Kind, key string) (*domain.Document, error)
	// FindLastByPrefix returns the highest number issued within scope
	// ("{prefix}-{YYYYMMDD}"), or "" when none exists.
	FindLastByPrefix(ctx context.Context, scope string) (string, error)
	// Update replaces the editable fields of a draft. It fails with
	// domain.ErrConcurrentUpdate when the stored document left draft.
	Update(ctx context.Context, d *domain.Document) error
	// UpdateStatus sets d.Status and appends the last history entry, but only
	// while the stored status still equals from.
	UpdateStatus(ctx context.Context, d *domain.Document, from domain.Status) error
	// Delete removes a document that is still in draft.
	Delete(ctx context.Context, kind domain.Kind, id string) error
	// List returns a page of documents matching filter and the total count.
	List(ctx context.Context, filter ListDocumentsFilter) ([]*domain.Document, int64, error)
}

// SequenceStore hands out per-scope counters atomically.
type SequenceStore interface {
	// Next raises the scope counter to at least floor, increments it and
	// returns the new value.
	Next(ctx context.Context, scope string, floor int64) (int64, error)
}
