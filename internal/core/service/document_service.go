package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cargoline/backoffice/internal/core/domain"
	"github.com/cargoline/backoffice/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// maxNumberAttempts bounds how often a create re-allocates a number after
	// colliding with the unique index.
	maxNumberAttempts = 3
	overdueNote       = "due date passed"
)

type DocumentService struct {
	docs     ports.DocumentRepository
	clients  ports.ClientRepository
	numbers  ports.NumberAllocator
	events   ports.EventRepository
	recorder Recorder
	log      zerolog.Logger
	now      func() time.Time
}

func NewDocumentService(
	docs ports.DocumentRepository,
	clients ports.ClientRepository,
	numbers ports.NumberAllocator,
	events ports.EventRepository,
	log zerolog.Logger,
) *DocumentService {
	return &DocumentService{
		docs:     docs,
		clients:  clients,
		numbers:  numbers,
		events:   events,
		recorder: nopRecorder{},
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithRecorder sets the recorder notified of creates, transitions and
// number retries.
func (s *DocumentService) WithRecorder(r Recorder) *DocumentService {
	s.recorder = r
	return s
}

// Create validates the draft, computes its totals, assigns a number and
// persists it in draft status. If an idempotency key is provided and already
// seen, the previously created document is returned without side effects.
func (s *DocumentService) Create(ctx context.Context, draft domain.DocumentDraft) (*ports.CreateDocumentResult, error) {
	if draft.IdempotencyKey != "" {
		existing, err := s.findByIdempotencyKey(ctx, draft.Kind, draft.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &ports.CreateDocumentResult{Document: existing, AlreadyExisted: true}, nil
		}
	}

	doc, err := domain.NewDocument(draft, s.now())
	if err != nil {
		return nil, err
	}
	if _, err := s.clients.FindByID(ctx, doc.ClientID); err != nil {
		return nil, fmt.Errorf("create %s: %w", doc.Kind, err)
	}
	doc.ID = uuid.NewString()

	prefix := doc.Kind.Prefix()
	for attempt := 1; ; attempt++ {
		number, seq, err := s.numbers.Next(ctx, prefix, doc.IssueDate)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", doc.Kind, err)
		}
		doc.Number = ""
		doc.AssignNumber(number, seq)

		err = s.docs.Create(ctx, doc)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrIdempotencyConflict) {
			existing, findErr := s.findByIdempotencyKey(ctx, doc.Kind, doc.IdempotencyKey)
			if findErr != nil || existing == nil {
				return nil, fmt.Errorf("create %s: %w", doc.Kind, err)
			}
			return &ports.CreateDocumentResult{Document: existing, AlreadyExisted: true}, nil
		}
		if !errors.Is(err, domain.ErrDuplicateNumber) || attempt == maxNumberAttempts {
			s.log.Error().Err(err).Str("kind", string(doc.Kind)).Str("number", number).Msg("failed to create document")
			return nil, fmt.Errorf("create %s: %w", doc.Kind, err)
		}
		s.recorder.NumberRetried(prefix)
		s.log.Warn().Str("number", number).Int("attempt", attempt).Msg("document number collision, reallocating")
	}

	s.recorder.DocumentCreated(doc.Kind)
	s.log.Info().
		Str("id", doc.ID).
		Str("number", doc.Number).
		Str("client_id", doc.ClientID).
		Str("total", doc.TotalAmount.StringFixed(2)).
		Msg("document created")

	return &ports.CreateDocumentResult{Document: doc}, nil
}

func (s *DocumentService) findByIdempotencyKey(ctx context.Context, kind domain.Kind, key string) (*domain.Document, error) {
	existing, err := s.docs.FindByIdempotencyKey(ctx, kind, key)
	switch {
	case err == nil:
		s.log.Info().Str("idempotency_key", key).Str("number", existing.Number).Msg("idempotent replay")
		return existing, nil
	case errors.Is(err, domain.ErrNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("idempotency lookup: %w", err)
	}
}

// Get returns a single document of the given kind.
func (s *DocumentService) Get(ctx context.Context, kind domain.Kind, id string) (*domain.Document, error) {
	return s.docs.FindByID(ctx, kind, id)
}

// List returns a filtered, paginated page of documents of one kind.
func (s *DocumentService) List(ctx context.Context, in ports.ListDocumentsInput) (*ports.ListDocumentsResult, error) {
	if !in.Kind.Valid() {
		return nil, domain.NewValidationError("kind", "is unknown")
	}
	status := domain.Status(in.Status)
	if status != "" && !in.Kind.HasStatus(status) {
		return nil, domain.NewValidationError("status", fmt.Sprintf("is not a %s status", in.Kind))
	}
	page, limit := normalizePage(in.Page, in.Limit)

	items, total, err := s.docs.List(ctx, ports.ListDocumentsFilter{
		Kind:       in.Kind,
		Status:     status,
		ClientID:   in.ClientID,
		Search:     in.Search,
		IssuedFrom: in.IssuedFrom,
		IssuedTo:   in.IssuedTo,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", in.Kind, err)
	}

	return &ports.ListDocumentsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// UpdateDraft applies a revision to a draft and recomputes its totals.
func (s *DocumentService) UpdateDraft(ctx context.Context, kind domain.Kind, id string, rev domain.Revision) (*domain.Document, error) {
	doc, err := s.docs.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if err := doc.Revise(rev, s.now()); err != nil {
		return nil, err
	}
	if err := s.docs.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("update %s %s: %w", kind, id, err)
	}
	s.log.Info().Str("id", id).Str("number", doc.Number).Msg("draft updated")
	return doc, nil
}

// DeleteDraft removes a document that never left draft.
func (s *DocumentService) DeleteDraft(ctx context.Context, kind domain.Kind, id string) error {
	doc, err := s.docs.FindByID(ctx, kind, id)
	if err != nil {
		return err
	}
	if doc.Status != domain.StatusDraft {
		return domain.ErrNotEditable
	}
	if err := s.docs.Delete(ctx, kind, id); err != nil {
		return fmt.Errorf("delete %s %s: %w", kind, id, err)
	}
	s.log.Info().Str("id", id).Str("number", doc.Number).Msg("draft deleted")
	return nil
}

// Transition validates and applies a lifecycle move. The write only succeeds
// while the stored status is still the one the move was validated against.
func (s *DocumentService) Transition(ctx context.Context, in ports.TransitionInput) (*domain.Document, error) {
	to := domain.Status(in.Status)
	at := in.At
	if at.IsZero() {
		at = s.now()
	}

	doc, err := s.docs.FindByID(ctx, in.Kind, in.ID)
	if err != nil {
		s.recorder.TransitionFailed("not_found")
		return nil, err
	}
	from := doc.Status

	if err := doc.TransitionTo(to, at, in.Note); err != nil {
		s.recorder.TransitionFailed("invalid_transition")
		return nil, err
	}
	if err := s.docs.UpdateStatus(ctx, doc, from); err != nil {
		if errors.Is(err, domain.ErrConcurrentUpdate) {
			s.recorder.TransitionFailed("concurrent_update")
		} else {
			s.recorder.TransitionFailed("update_failed")
		}
		return nil, fmt.Errorf("transition %s: %w", doc.Number, err)
	}

	audit := &domain.StatusEvent{
		DocumentID: doc.ID,
		Kind:       doc.Kind,
		Number:     doc.Number,
		From:       from,
		To:         to,
		Timestamp:  at.UTC(),
		Source:     in.Note,
	}
	if err := s.events.InsertEvent(ctx, audit); err != nil {
		s.log.Warn().Err(err).Str("number", doc.Number).Msg("failed to insert audit event")
	}

	s.recorder.TransitionApplied(doc.Kind, to)
	s.log.Info().
		Str("number", doc.Number).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("document transitioned")

	return doc, nil
}

// MarkOverdue moves sent invoices whose due date lies before the day of now
// to overdue. Documents that fail to move are logged and skipped.
func (s *DocumentService) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	filter := ports.ListDocumentsFilter{
		Kind:      domain.KindInvoice,
		Status:    domain.StatusSent,
		DueBefore: domain.DateOnly(now),
		Page:      1,
		Limit:     maxPageSize,
	}
	failed := make(map[string]struct{})
	moved := 0

	for {
		if err := ctx.Err(); err != nil {
			return moved, err
		}
		batch, _, err := s.docs.List(ctx, filter)
		if err != nil {
			return moved, fmt.Errorf("mark overdue: %w", err)
		}

		progress := 0
		for _, doc := range batch {
			if _, seen := failed[doc.ID]; seen {
				continue
			}
			_, err := s.Transition(ctx, ports.TransitionInput{
				Kind:   domain.KindInvoice,
				ID:     doc.ID,
				Status: string(domain.StatusOverdue),
				Note:   overdueNote,
				At:     now,
			})
			if err != nil {
				failed[doc.ID] = struct{}{}
				s.log.Warn().Err(err).Str("number", doc.Number).Msg("could not mark invoice overdue")
				continue
			}
			progress++
		}
		moved += progress

		if len(batch) < filter.Limit {
			return moved, nil
		}
		// Moved invoices drop out of the filter, so the same page holds new
		// candidates. Only advance once a page yields nothing.
		if progress == 0 {
			filter.Page++
		}
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
