package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cargoline/backoffice/internal/core/domain"
	"github.com/cargoline/backoffice/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, documentID, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, documentID, status string, ts time.Time) error
}

type transitionEventService struct {
	documents ports.DocumentService
	dedup     DedupChecker
	log       zerolog.Logger
}

// NewTransitionEventService returns a TransitionEventService that applies
// events through documents.
func NewTransitionEventService(documents ports.DocumentService, dedup DedupChecker, log zerolog.Logger) ports.TransitionEventService {
	return &transitionEventService{documents: documents, dedup: dedup, log: log}
}

// Process deduplicates and applies a single transition event.
func (s *transitionEventService) Process(ctx context.Context, in ports.TransitionEventInput) error {
	kind := domain.Kind(in.Kind)
	if !kind.Valid() {
		return fmt.Errorf("process event: %w", domain.NewValidationError("kind", "is unknown"))
	}

	isDup, err := s.dedup.IsDuplicate(ctx, in.DocumentID, in.Status, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("document_id", in.DocumentID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("document_id", in.DocumentID).Str("status", in.Status).Msg("duplicate event skipped")
		return nil
	}

	doc, err := s.documents.Transition(ctx, ports.TransitionInput{
		Kind:   kind,
		ID:     in.DocumentID,
		Status: in.Status,
		Note:   in.Source,
		At:     in.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("process event: %w", err)
	}

	// Marked only after the write so a failed event can be redelivered.
	if err := s.dedup.Mark(ctx, in.DocumentID, in.Status, in.Timestamp); err != nil {
		s.log.Warn().Err(err).Str("document_id", in.DocumentID).Msg("failed to set dedup key")
	}

	s.log.Info().
		Str("number", doc.Number).
		Str("status", in.Status).
		Str("source", in.Source).
		Msg("event processed")
	return nil
}
