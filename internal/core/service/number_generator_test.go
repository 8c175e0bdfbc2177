package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cargoline/backoffice/internal/core/domain"
)

func TestNumberGenerator_ConcurrentAllocationsAreDistinct(t *testing.T) {
	gen := NewNumberGenerator(newStubDocumentRepo(), newMemSequenceStore())
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	const callers = 50

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]bool)
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, _, err := gen.Next(context.Background(), "INV", date)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if seen[number] {
				t.Errorf("number %s issued twice", number)
			}
			seen[number] = true
		}()
	}
	wg.Wait()

	if len(seen) != callers {
		t.Fatalf("expected %d distinct numbers, got %d", callers, len(seen))
	}
	if !seen["INV-20240501-0001"] || !seen["INV-20240501-0050"] {
		t.Error("expected a gapless range from 0001 to 0050")
	}
}

func TestNumberGenerator_ScopesByDate(t *testing.T) {
	gen := NewNumberGenerator(newStubDocumentRepo(), newMemSequenceStore())

	a, _, _ := gen.Next(context.Background(), "QT", time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC))
	b, _, _ := gen.Next(context.Background(), "QT", time.Date(2024, 5, 2, 1, 0, 0, 0, time.UTC))

	if a != "QT-20240501-0001" || b != "QT-20240502-0001" {
		t.Errorf("expected a fresh sequence per day, got %s and %s", a, b)
	}
}

func TestNumberGenerator_EmptyPrefix(t *testing.T) {
	for _, store := range []*memSequenceStore{newMemSequenceStore(), nil} {
		var gen *NumberGenerator
		if store == nil {
			gen = NewNumberGenerator(newStubDocumentRepo(), nil)
		} else {
			gen = NewNumberGenerator(newStubDocumentRepo(), store)
		}
		if _, _, err := gen.Next(context.Background(), "", time.Now()); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	}
}
