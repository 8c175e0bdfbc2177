package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cargoline/backoffice/internal/core/domain"
	"github.com/cargoline/backoffice/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory document repository
// ---------------------------------------------------------------------------

type stubDocumentRepo struct {
	mu              sync.Mutex
	byID            map[string]*domain.Document
	forceDuplicates int   // Create fails with ErrDuplicateNumber this many times
	createErr       error // if set, Create returns this error
	updateStatusErr error
	listErr         error
	findKeyErr      error
}

func newStubDocumentRepo() *stubDocumentRepo {
	return &stubDocumentRepo{byID: make(map[string]*domain.Document)}
}

func cloneDoc(d *domain.Document) *domain.Document {
	c := *d
	c.Items = append([]domain.LineItem(nil), d.Items...)
	c.StatusHistory = append([]domain.StatusHistoryEntry(nil), d.StatusHistory...)
	return &c
}

func (r *stubDocumentRepo) Create(_ context.Context, d *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	if r.forceDuplicates > 0 {
		r.forceDuplicates--
		return domain.ErrDuplicateNumber
	}
	for _, existing := range r.byID {
		if existing.Number == d.Number {
			return domain.ErrDuplicateNumber
		}
		if d.IdempotencyKey != "" && existing.Kind == d.Kind && existing.IdempotencyKey == d.IdempotencyKey {
			return domain.ErrIdempotencyConflict
		}
	}
	r.byID[d.ID] = cloneDoc(d)
	return nil
}

func (r *stubDocumentRepo) FindByID(_ context.Context, kind domain.Kind, id string) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok || d.Kind != kind {
		return nil, domain.ErrDocumentNotFound
	}
	return cloneDoc(d), nil
}

func (r *stubDocumentRepo) FindByIdempotencyKey(_ context.Context, kind domain.Kind, key string) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findKeyErr != nil {
		return nil, r.findKeyErr
	}
	for _, d := range r.byID {
		if d.Kind == kind && d.IdempotencyKey == key {
			return cloneDoc(d), nil
		}
	}
	return nil, domain.ErrDocumentNotFound
}

// FindLastByPrefix orders by the stored sequence, like the real index.
func (r *stubDocumentRepo) FindLastByPrefix(_ context.Context, scope string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var last *domain.Document
	for _, d := range r.byID {
		if !strings.HasPrefix(d.Number, scope+"-") {
			continue
		}
		if last == nil || d.Sequence > last.Sequence {
			last = d
		}
	}
	if last == nil {
		return "", nil
	}
	return last.Number, nil
}

func (r *stubDocumentRepo) Update(_ context.Context, d *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[d.ID]
	if !ok {
		return domain.ErrDocumentNotFound
	}
	if stored.Status != domain.StatusDraft {
		return domain.ErrConcurrentUpdate
	}
	r.byID[d.ID] = cloneDoc(d)
	return nil
}

func (r *stubDocumentRepo) UpdateStatus(_ context.Context, d *domain.Document, from domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateStatusErr != nil {
		return r.updateStatusErr
	}
	stored, ok := r.byID[d.ID]
	if !ok {
		return domain.ErrDocumentNotFound
	}
	if stored.Status != from {
		return domain.ErrConcurrentUpdate
	}
	r.byID[d.ID] = cloneDoc(d)
	return nil
}

func (r *stubDocumentRepo) Delete(_ context.Context, kind domain.Kind, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok || d.Kind != kind || d.Status != domain.StatusDraft {
		return domain.ErrDocumentNotFound
	}
	delete(r.byID, id)
	return nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubDocumentRepo) List(_ context.Context, f ports.ListDocumentsFilter) ([]*domain.Document, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listErr != nil {
		return nil, 0, r.listErr
	}

	var matched []*domain.Document
	for _, d := range r.byID {
		if d.Kind != f.Kind {
			continue
		}
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		if f.ClientID != "" && d.ClientID != f.ClientID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(d.Number), strings.ToLower(f.Search)) {
			continue
		}
		if !f.IssuedFrom.IsZero() && d.IssueDate.Before(f.IssuedFrom) {
			continue
		}
		if !f.IssuedTo.IsZero() && d.IssueDate.After(f.IssuedTo) {
			continue
		}
		if !f.DueBefore.IsZero() && !d.DueDate.Before(f.DueBefore) {
			continue
		}
		matched = append(matched, cloneDoc(d))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Number > matched[j].Number })

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.Document{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

// ---------------------------------------------------------------------------
// Other stubs
// ---------------------------------------------------------------------------

type stubClientRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Client
	createErr error
}

func newStubClientRepo(ids ...string) *stubClientRepo {
	r := &stubClientRepo{byID: make(map[string]*domain.Client)}
	for _, id := range ids {
		r.byID[id] = &domain.Client{ID: id, Name: "Client " + id}
	}
	return r
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClientRepo) List(_ context.Context, f ports.ListClientsFilter) ([]*domain.Client, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Client
	for _, c := range r.byID {
		if f.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	total := int64(len(out))
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

type stubEventRepo struct {
	mu        sync.Mutex
	insertErr error
	inserted  []*domain.StatusEvent
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.StatusEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, e)
	return nil
}

// memSequenceStore mirrors the atomic raise-then-increment of the real stores.
type memSequenceStore struct {
	mu      sync.Mutex
	counter map[string]int64
	err     error
}

func newMemSequenceStore() *memSequenceStore {
	return &memSequenceStore{counter: make(map[string]int64)}
}

func (s *memSequenceStore) Next(_ context.Context, scope string, floor int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	if s.counter[scope] < floor {
		s.counter[scope] = floor
	}
	s.counter[scope]++
	return s.counter[scope], nil
}

type stubRoleSource struct {
	roles map[string]*domain.Role
	err   error
	asked []string
}

func (s *stubRoleSource) GetRole(_ context.Context, name string) (*domain.Role, error) {
	s.asked = append(s.asked, name)
	if s.err != nil {
		return nil, s.err
	}
	r, ok := s.roles[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return r, nil
}

type countingRecorder struct {
	mu          sync.Mutex
	created     int
	transitions map[domain.Status]int
	failures    map[string]int
	retries     int
	denied      int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{transitions: map[domain.Status]int{}, failures: map[string]int{}}
}

func (c *countingRecorder) DocumentCreated(domain.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.created++
}

func (c *countingRecorder) TransitionApplied(_ domain.Kind, to domain.Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transitions[to]++
}

func (c *countingRecorder) TransitionFailed(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[reason]++
}

func (c *countingRecorder) NumberRetried(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retries++
}

func (c *countingRecorder) PermissionDenied(domain.Resource, domain.Action) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.denied++
}

// fixedClock pins the service clock for deterministic numbers and history.
func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }
