package ports

import (
	"context"
	"time"

	"github.com/cargoline/backoffice/internal/core/domain"
)

// CreateDocumentResult is returned by the service after creating a document.
type CreateDocumentResult struct {
	Document *domain.Document
	// AlreadyExisted is true when the Idempotency-Key matched an existing document.
	AlreadyExisted bool
}

// ListDocumentsInput carries all parameters for the list endpoints.
type ListDocumentsInput struct {
	Kind       domain.Kind
	Status     string
	ClientID   string
	Search     string
	IssuedFrom time.Time
	IssuedTo   time.Time
	Page       int
	Limit      int
}

// ListDocumentsResult is returned by List.
type ListDocumentsResult struct {
	Items      []*domain.Document
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TransitionInput requests a lifecycle move of one document.
type TransitionInput struct {
	Kind   domain.Kind
	ID     string
	Status string
	Note   string
	// At defaults to the current time when zero.
	At time.Time
}

// DocumentService defines use-case operations for invoices, proforma
// invoices and quotations.
type DocumentService interface {
	Create(ctx context.Context, draft domain.DocumentDraft) (*CreateDocumentResult, error)
	Get(ctx context.Context, kind domain.Kind, id string) (*domain.Document, error)
	List(ctx context.Context, input ListDocumentsInput) (*ListDocumentsResult, error)
	UpdateDraft(ctx context.Context, kind domain.Kind, id string, rev domain.Revision) (*domain.Document, error)
	DeleteDraft(ctx context.Context, kind domain.Kind, id string) error
	Transition(ctx context.Context, input TransitionInput) (*domain.Document, error)
	// MarkOverdue moves every sent invoice whose due date is before now to
	// overdue and returns how many were moved.
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
}

// NumberAllocator issues document numbers.
type NumberAllocator interface {
	// Next returns the next number of the prefix scope for date together
	// with its numeric suffix.
	Next(ctx context.Context, prefix string, date time.Time) (string, int64, error)
}
