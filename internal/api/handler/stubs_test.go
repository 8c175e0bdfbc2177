package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/cargoline/backoffice/internal/api/middleware"
	"github.com/cargoline/backoffice/internal/core/domain"
	"github.com/cargoline/backoffice/internal/core/ports"
)

type stubDocumentService struct {
	createFn      func(ctx context.Context, draft domain.DocumentDraft) (*ports.CreateDocumentResult, error)
	getFn         func(ctx context.Context, kind domain.Kind, id string) (*domain.Document, error)
	listFn        func(ctx context.Context, in ports.ListDocumentsInput) (*ports.ListDocumentsResult, error)
	updateFn      func(ctx context.Context, kind domain.Kind, id string, rev domain.Revision) (*domain.Document, error)
	deleteFn      func(ctx context.Context, kind domain.Kind, id string) error
	transitionFn  func(ctx context.Context, in ports.TransitionInput) (*domain.Document, error)
	markOverdueFn func(ctx context.Context, now time.Time) (int, error)
}

func (s *stubDocumentService) Create(ctx context.Context, draft domain.DocumentDraft) (*ports.CreateDocumentResult, error) {
	return s.createFn(ctx, draft)
}

func (s *stubDocumentService) Get(ctx context.Context, kind domain.Kind, id string) (*domain.Document, error) {
	return s.getFn(ctx, kind, id)
}

func (s *stubDocumentService) List(ctx context.Context, in ports.ListDocumentsInput) (*ports.ListDocumentsResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubDocumentService) UpdateDraft(ctx context.Context, kind domain.Kind, id string, rev domain.Revision) (*domain.Document, error) {
	return s.updateFn(ctx, kind, id, rev)
}

func (s *stubDocumentService) DeleteDraft(ctx context.Context, kind domain.Kind, id string) error {
	return s.deleteFn(ctx, kind, id)
}

func (s *stubDocumentService) Transition(ctx context.Context, in ports.TransitionInput) (*domain.Document, error) {
	return s.transitionFn(ctx, in)
}

func (s *stubDocumentService) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	return s.markOverdueFn(ctx, now)
}

type stubDispatcher struct {
	accept int // -1 accepts everything
	got    []ports.TransitionEventInput
}

func (d *stubDispatcher) EnqueueBatch(events []ports.TransitionEventInput) (int, error) {
	if d.accept < 0 || d.accept >= len(events) {
		d.got = append(d.got, events...)
		return len(events), nil
	}
	d.got = append(d.got, events[:d.accept]...)
	return d.accept, io.ErrShortWrite
}

// newTestContext builds an echo context with the validator installed and an
// authenticated subject.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxSubject, "alice")
	c.Set(middleware.CtxRole, "ACCOUNTANT")
	return c, rec
}

// sampleInvoice returns a numbered draft invoice: 3 × 19.99 with 16% tax.
func sampleInvoice(t *testing.T) *domain.Document {
	t.Helper()
	doc, err := domain.NewDocument(domain.DocumentDraft{
		Kind:     domain.KindInvoice,
		ClientID: "client-1",
		Items: []domain.LineItem{
			{Description: "Ocean freight", Quantity: 3, UnitPrice: decimal.RequireFromString("19.99")},
		},
		Tax:       domain.RateOf(decimal.NewFromInt(16)),
		IssueDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
	}, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("build invoice: %v", err)
	}
	doc.ID = "doc-1"
	doc.AssignNumber("INV-20260501-0001", 1)
	return doc
}
