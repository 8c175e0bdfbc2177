package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cargoline/backoffice/internal/core/domain"
	"github.com/cargoline/backoffice/internal/core/ports"
)

// NumberGenerator issues "{prefix}-{YYYYMMDD}-{NNNN}" numbers. With a
// SequenceStore the suffix comes from an atomic counter seeded from the
// highest persisted number, so concurrent callers never share a suffix.
// Without one it falls back to last-number-plus-one, which relies on the
// unique number index and the caller's retry to resolve races.
type NumberGenerator struct {
	docs  ports.DocumentRepository
	store ports.SequenceStore
}

// NewNumberGenerator returns a generator. store may be nil.
func NewNumberGenerator(docs ports.DocumentRepository, store ports.SequenceStore) *NumberGenerator {
	return &NumberGenerator{docs: docs, store: store}
}

// Next implements ports.NumberAllocator.
func (g *NumberGenerator) Next(ctx context.Context, prefix string, date time.Time) (string, int64, error) {
	lookup := func(scope string) (string, error) {
		return g.docs.FindLastByPrefix(ctx, scope)
	}

	if g.store == nil {
		number, err := domain.GenerateNumber(prefix, date, lookup)
		if err != nil {
			return "", 0, fmt.Errorf("generate number: %w", err)
		}
		seq, err := domain.ParseSequence(domain.NumberScope(prefix, date), number)
		if err != nil {
			return "", 0, err
		}
		return number, seq, nil
	}

	if prefix == "" {
		return "", 0, domain.NewValidationError("prefix", "must not be empty")
	}
	scope := domain.NumberScope(prefix, date)
	last, err := lookup(scope)
	if err != nil {
		return "", 0, fmt.Errorf("generate number: lookup last: %w", err)
	}
	var floor int64
	if last != "" {
		if floor, err = domain.ParseSequence(scope, last); err != nil {
			return "", 0, err
		}
	}

	seq, err := g.store.Next(ctx, scope, floor)
	if err != nil {
		return "", 0, fmt.Errorf("generate number: allocate: %w", err)
	}
	return domain.FormatNumber(prefix, date, seq), seq, nil
}
