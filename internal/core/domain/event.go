package domain

import "time"

// StatusEvent is an audit record of one applied status change.
type StatusEvent struct {
	DocumentID string
	Kind       Kind
	Number     string
	From       Status
	To         Status
	Timestamp  time.Time
	Source     string
}
