package ports

import (
	"context"
	"time"
)

// TransitionEventInput is one entry of a batch transition request, for
// example a bank reconciliation line marking an invoice paid.
type TransitionEventInput struct {
	DocumentID string
	Kind       string
	Status     string
	Timestamp  time.Time
	Source     string
}

// TransitionEventService processes asynchronous transition events.
type TransitionEventService interface {
	Process(ctx context.Context, event TransitionEventInput) error
}
