package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cargoline/backoffice/internal/core/domain"
	"github.com/cargoline/backoffice/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubDedup struct {
	dupResult bool
	dupErr    error
	markErr   error
	marked    []string
}

func (d *stubDedup) IsDuplicate(_ context.Context, _, _ string, _ time.Time) (bool, error) {
	return d.dupResult, d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, documentID, status string, _ time.Time) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, documentID+":"+status)
	return nil
}

// ---------------------------------------------------------------------------
// Helper: a document service seeded with one sent invoice.
// ---------------------------------------------------------------------------

func seededEventSvc(t *testing.T, dedup *stubDedup) (ports.TransitionEventService, *docFixture, *domain.Document) {
	t.Helper()
	f := newDocFixture()
	doc := f.mustCreate(t, minimalDraft(domain.KindInvoice))
	f.mustTransition(t, doc, domain.StatusSent)
	return NewTransitionEventService(f.svc, dedup, discardLogger), f, doc
}

func paidEvent(id string) ports.TransitionEventInput {
	return ports.TransitionEventInput{
		DocumentID: id,
		Kind:       string(domain.KindInvoice),
		Status:     string(domain.StatusPaid),
		Timestamp:  time.Date(2024, 6, 20, 14, 0, 0, 0, time.UTC),
		Source:     "bank_reconciliation",
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestTransitionEventService_Process_HappyPath(t *testing.T) {
	dedup := &stubDedup{}
	svc, f, doc := seededEventSvc(t, dedup)

	if err := svc.Process(context.Background(), paidEvent(doc.ID)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	stored := f.repo.byID[doc.ID]
	if stored.Status != domain.StatusPaid {
		t.Errorf("expected paid, got %s", stored.Status)
	}
	last := stored.StatusHistory[len(stored.StatusHistory)-1]
	if last.Note != "bank_reconciliation" || !last.Timestamp.Equal(paidEvent(doc.ID).Timestamp) {
		t.Errorf("history entry should carry event source and timestamp: %+v", last)
	}
	if len(dedup.marked) != 1 {
		t.Error("expected dedup key marked")
	}
}

func TestTransitionEventService_Process_DuplicateSkipped(t *testing.T) {
	dedup := &stubDedup{dupResult: true}
	svc, f, doc := seededEventSvc(t, dedup)

	if err := svc.Process(context.Background(), paidEvent(doc.ID)); err != nil {
		t.Fatalf("expected no error for duplicate, got: %v", err)
	}
	if f.repo.byID[doc.ID].Status != domain.StatusSent {
		t.Error("duplicate event must not change the document")
	}
}

func TestTransitionEventService_Process_DedupErrorProcessesAnyway(t *testing.T) {
	dedup := &stubDedup{dupErr: errors.New("redis down")}
	svc, f, doc := seededEventSvc(t, dedup)

	if err := svc.Process(context.Background(), paidEvent(doc.ID)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if f.repo.byID[doc.ID].Status != domain.StatusPaid {
		t.Error("event should be applied when dedup is unavailable")
	}
}

func TestTransitionEventService_Process_InvalidTransitionNotMarked(t *testing.T) {
	dedup := &stubDedup{}
	svc, _, doc := seededEventSvc(t, dedup)
	ev := paidEvent(doc.ID)
	ev.Status = string(domain.StatusDraft)

	err := svc.Process(context.Background(), ev)

	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if len(dedup.marked) != 0 {
		t.Error("failed events must stay redeliverable")
	}
}

func TestTransitionEventService_Process_UnknownKind(t *testing.T) {
	svc, _, doc := seededEventSvc(t, &stubDedup{})
	ev := paidEvent(doc.ID)
	ev.Kind = "receipt"

	if err := svc.Process(context.Background(), ev); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestTransitionEventService_Process_MarkFailureIsNonFatal(t *testing.T) {
	svc, _, doc := seededEventSvc(t, &stubDedup{markErr: errors.New("redis down")})

	if err := svc.Process(context.Background(), paidEvent(doc.ID)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}
