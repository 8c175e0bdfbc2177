package domain

import (
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Kind distinguishes the commercial documents the back office issues.
type Kind string

const (
	KindInvoice         Kind = "invoice"
	KindProformaInvoice Kind = "proforma_invoice"
	KindQuotation       Kind = "quotation"
)

// Kinds lists every document kind.
var Kinds = []Kind{KindInvoice, KindProformaInvoice, KindQuotation}

var kindPrefixes = map[Kind]string{
	KindInvoice:         "INV",
	KindProformaInvoice: "PI",
	KindQuotation:       "QT",
}

var kindResources = map[Kind]Resource{
	KindInvoice:         ResourceInvoices,
	KindProformaInvoice: ResourceProformaInvoices,
	KindQuotation:       ResourceQuotations,
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := kindPrefixes[k]
	return ok
}

// Prefix is the number prefix for documents of kind k.
func (k Kind) Prefix() string { return kindPrefixes[k] }

// Resource is the permission resource guarding documents of kind k.
func (k Kind) Resource() Resource { return kindResources[k] }

// Status represents the lifecycle state of a document.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusPaid     Status = "paid"
	StatusOverdue  Status = "overdue"
	StatusCanceled Status = "canceled"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

var terminalStatuses = map[Status]struct{}{
	StatusPaid:     {},
	StatusCanceled: {},
	StatusAccepted: {},
	StatusRejected: {},
	StatusExpired:  {},
}

// IsTerminal reports whether s has no outgoing transitions.
func (s Status) IsTerminal() bool {
	_, ok := terminalStatuses[s]
	return ok
}

var offerTransitions = map[Status][]Status{
	StatusDraft: {StatusSent, StatusAccepted, StatusRejected, StatusExpired},
	StatusSent:  {StatusAccepted, StatusRejected, StatusExpired},
}

// validTransitions defines the allowed state machine transitions per kind.
// Terminal states have no entry.
var validTransitions = map[Kind]map[Status][]Status{
	KindInvoice: {
		StatusDraft:   {StatusSent, StatusPaid, StatusOverdue, StatusCanceled},
		StatusSent:    {StatusPaid, StatusOverdue, StatusCanceled},
		StatusOverdue: {StatusSent, StatusPaid, StatusCanceled},
	},
	KindProformaInvoice: offerTransitions,
	KindQuotation:       offerTransitions,
}

// CanTransition reports whether a document of kind k may move from one status to another.
func (k Kind) CanTransition(from, to Status) bool {
	for _, allowed := range validTransitions[k][from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// HasStatus reports whether s belongs to the lifecycle of kind k.
func (k Kind) HasStatus(s Status) bool {
	if s == StatusDraft {
		return k.Valid()
	}
	for _, targets := range validTransitions[k] {
		for _, t := range targets {
			if t == s {
				return true
			}
		}
	}
	return false
}

// StatusHistoryEntry records a single status change on a document.
type StatusHistoryEntry struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// Document is the aggregate root shared by invoices, proforma invoices and quotations.
type Document struct {
	ID              string               `json:"id"`
	Kind            Kind                 `json:"kind"`
	Number          string               `json:"number"`
	Sequence        int64                `json:"-"`
	ClientID        string               `json:"client_id"`
	BillOfLadingRef string               `json:"bill_of_lading_ref,omitempty"`
	Items           []LineItem           `json:"items"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	Tax             RateAmount           `json:"tax"`
	Discount        RateAmount           `json:"discount"`
	TotalAmount     decimal.Decimal      `json:"total_amount"`
	Currency        string               `json:"currency"`
	IssueDate       time.Time            `json:"issue_date"`
	DueDate         time.Time            `json:"due_date"`
	Status          Status               `json:"status"`
	StatusHistory   []StatusHistoryEntry `json:"status_history"`
	Notes           string               `json:"notes,omitempty"`
	IdempotencyKey  string               `json:"-"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// DefaultCurrency is applied when a draft names none.
const DefaultCurrency = "USD"

// DocumentDraft carries the caller-supplied fields of a new document.
type DocumentDraft struct {
	Kind            Kind
	ClientID        string
	BillOfLadingRef string
	Items           []LineItem
	Tax             Adjustment
	Discount        Adjustment
	Currency        string
	IssueDate       time.Time
	DueDate         time.Time
	Notes           string
	IdempotencyKey  string
}

// NewDocument validates a draft and returns an unnumbered document in draft
// status with its totals computed.
func NewDocument(d DocumentDraft, now time.Time) (*Document, error) {
	if !d.Kind.Valid() {
		return nil, NewValidationError("kind", "is unknown")
	}
	if d.ClientID == "" {
		return nil, NewValidationError("client_id", "is required")
	}
	if d.BillOfLadingRef != "" && d.Kind != KindProformaInvoice {
		return nil, NewValidationError("bill_of_lading_ref", "is only allowed on proforma invoices")
	}
	if len(d.Items) == 0 {
		return nil, NewValidationError("items", "must not be empty")
	}
	if d.IssueDate.IsZero() {
		return nil, NewValidationError("issue_date", "is required")
	}
	issue := DateOnly(d.IssueDate)
	due := DateOnly(d.DueDate)
	if err := validateSchedule(issue, due, d.Notes); err != nil {
		return nil, err
	}

	totals, err := ComputeAdjustedTotals(d.Items, d.Tax, d.Discount)
	if err != nil {
		return nil, err
	}

	currency := d.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	now = now.UTC()
	doc := &Document{
		Kind:            d.Kind,
		ClientID:        d.ClientID,
		BillOfLadingRef: d.BillOfLadingRef,
		Currency:        currency,
		IssueDate:       issue,
		DueDate:         due,
		Status:          StatusDraft,
		StatusHistory:   []StatusHistoryEntry{{Status: StatusDraft, Timestamp: now}},
		Notes:           d.Notes,
		IdempotencyKey:  d.IdempotencyKey,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	doc.applyTotals(totals)
	return doc, nil
}

// Revision is an edit to a draft document. Nil fields are left unchanged.
type Revision struct {
	Items    []LineItem
	Tax      *Adjustment
	Discount *Adjustment
	DueDate  *time.Time
	Notes    *string
}

// Revise applies r to a draft document and recomputes its totals. The number
// and the issue date never change.
func (d *Document) Revise(r Revision, now time.Time) error {
	if d.Status != StatusDraft {
		return ErrNotEditable
	}

	items := d.Items
	if r.Items != nil {
		if len(r.Items) == 0 {
			return NewValidationError("items", "must not be empty")
		}
		items = r.Items
	}
	tax := d.Tax.Adjustment()
	if r.Tax != nil {
		tax = *r.Tax
	}
	discount := d.Discount.Adjustment()
	if r.Discount != nil {
		discount = *r.Discount
	}
	due := d.DueDate
	if r.DueDate != nil {
		due = DateOnly(*r.DueDate)
	}
	notes := d.Notes
	if r.Notes != nil {
		notes = *r.Notes
	}

	if err := validateSchedule(d.IssueDate, due, notes); err != nil {
		return err
	}
	totals, err := ComputeAdjustedTotals(items, tax, discount)
	if err != nil {
		return err
	}

	d.applyTotals(totals)
	d.DueDate = due
	d.Notes = notes
	d.UpdatedAt = now.UTC()
	return nil
}

// TransitionTo moves the document to status to and records the change.
func (d *Document) TransitionTo(to Status, at time.Time, note string) error {
	if !d.Kind.CanTransition(d.Status, to) {
		return &InvalidTransitionError{From: d.Status, To: to}
	}
	d.Status = to
	d.StatusHistory = append(d.StatusHistory, StatusHistoryEntry{Status: to, Timestamp: at.UTC(), Note: note})
	d.UpdatedAt = at.UTC()
	return nil
}

// AssignNumber sets the document number. It is a no-op once a number exists.
func (d *Document) AssignNumber(number string, seq int64) {
	if d.Number != "" {
		return
	}
	d.Number = number
	d.Sequence = seq
}

func (d *Document) applyTotals(t Totals) {
	d.Items = t.Items
	d.Subtotal = t.Subtotal
	d.Tax = t.Tax
	d.Discount = t.Discount
	d.TotalAmount = t.TotalAmount
}

func validateSchedule(issue, due time.Time, notes string) error {
	if !due.After(issue) {
		return NewValidationError("due_date", "must be after issue_date")
	}
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		return NewValidationError("notes", "must be at most 1000 characters")
	}
	return nil
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
