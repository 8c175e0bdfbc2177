package mongo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cargoline/backoffice/internal/core/domain"
)

// Money is stored as Decimal128 so amounts stay exact and remain usable in
// aggregation pipelines.

type lineItemRecord struct {
	Description string               `bson:"description"`
	Quantity    int64                `bson:"quantity"`
	UnitPrice   primitive.Decimal128 `bson:"unit_price"`
	Total       primitive.Decimal128 `bson:"total"`
}

type rateAmountRecord struct {
	Rate   primitive.Decimal128 `bson:"rate"`
	Amount primitive.Decimal128 `bson:"amount"`
	Fixed  bool                 `bson:"fixed,omitempty"`
}

type statusEntryRecord struct {
	Status    string    `bson:"status"`
	Timestamp time.Time `bson:"timestamp"`
	Note      string    `bson:"note,omitempty"`
}

type documentRecord struct {
	ID              string               `bson:"_id"`
	Kind            string               `bson:"kind"`
	Number          string               `bson:"number"`
	Scope           string               `bson:"scope"`
	Sequence        int64                `bson:"sequence"`
	ClientID        string               `bson:"client_id"`
	BillOfLadingRef string               `bson:"bill_of_lading_ref,omitempty"`
	Items           []lineItemRecord     `bson:"items"`
	Subtotal        primitive.Decimal128 `bson:"subtotal"`
	Tax             rateAmountRecord     `bson:"tax"`
	Discount        rateAmountRecord     `bson:"discount"`
	TotalAmount     primitive.Decimal128 `bson:"total_amount"`
	Currency        string               `bson:"currency"`
	IssueDate       time.Time            `bson:"issue_date"`
	DueDate         time.Time            `bson:"due_date"`
	Status          string               `bson:"status"`
	StatusHistory   []statusEntryRecord  `bson:"status_history"`
	Notes           string               `bson:"notes,omitempty"`
	IdempotencyKey  string               `bson:"idempotency_key,omitempty"`
	CreatedAt       time.Time            `bson:"created_at"`
	UpdatedAt       time.Time            `bson:"updated_at"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("encode decimal %s: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode decimal %s: %w", v, err)
	}
	return d, nil
}

// decimalCodec accumulates the first conversion error so mapping code can
// stay linear.
type decimalCodec struct{ err error }

func (c *decimalCodec) enc(d decimal.Decimal) primitive.Decimal128 {
	if c.err != nil {
		return primitive.Decimal128{}
	}
	v, err := toDecimal128(d)
	c.err = err
	return v
}

func (c *decimalCodec) dec(v primitive.Decimal128) decimal.Decimal {
	if c.err != nil {
		return decimal.Zero
	}
	d, err := fromDecimal128(v)
	c.err = err
	return d
}

func (c *decimalCodec) encRate(r domain.RateAmount) rateAmountRecord {
	return rateAmountRecord{Rate: c.enc(r.Rate), Amount: c.enc(r.Amount), Fixed: r.Fixed}
}

func (c *decimalCodec) decRate(r rateAmountRecord) domain.RateAmount {
	return domain.RateAmount{Rate: c.dec(r.Rate), Amount: c.dec(r.Amount), Fixed: r.Fixed}
}

func (c *decimalCodec) encItems(items []domain.LineItem) []lineItemRecord {
	out := make([]lineItemRecord, len(items))
	for i, li := range items {
		out[i] = lineItemRecord{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   c.enc(li.UnitPrice),
			Total:       c.enc(li.Total),
		}
	}
	return out
}

func (c *decimalCodec) decItems(items []lineItemRecord) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	for i, li := range items {
		out[i] = domain.LineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   c.dec(li.UnitPrice),
			Total:       c.dec(li.Total),
		}
	}
	return out
}

func historyRecord(e domain.StatusHistoryEntry) statusEntryRecord {
	return statusEntryRecord{Status: string(e.Status), Timestamp: e.Timestamp.UTC(), Note: e.Note}
}

func toDocumentRecord(d *domain.Document) (*documentRecord, error) {
	var c decimalCodec
	history := make([]statusEntryRecord, len(d.StatusHistory))
	for i, e := range d.StatusHistory {
		history[i] = historyRecord(e)
	}

	rec := &documentRecord{
		ID:              d.ID,
		Kind:            string(d.Kind),
		Number:          d.Number,
		Scope:           domain.NumberScope(d.Kind.Prefix(), d.IssueDate),
		Sequence:        d.Sequence,
		ClientID:        d.ClientID,
		BillOfLadingRef: d.BillOfLadingRef,
		Items:           c.encItems(d.Items),
		Subtotal:        c.enc(d.Subtotal),
		Tax:             c.encRate(d.Tax),
		Discount:        c.encRate(d.Discount),
		TotalAmount:     c.enc(d.TotalAmount),
		Currency:        d.Currency,
		IssueDate:       d.IssueDate.UTC(),
		DueDate:         d.DueDate.UTC(),
		Status:          string(d.Status),
		StatusHistory:   history,
		Notes:           d.Notes,
		IdempotencyKey:  d.IdempotencyKey,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}
	if c.err != nil {
		return nil, c.err
	}
	return rec, nil
}

func (r *documentRecord) toDomain() (*domain.Document, error) {
	var c decimalCodec
	history := make([]domain.StatusHistoryEntry, len(r.StatusHistory))
	for i, e := range r.StatusHistory {
		history[i] = domain.StatusHistoryEntry{Status: domain.Status(e.Status), Timestamp: e.Timestamp.UTC(), Note: e.Note}
	}

	d := &domain.Document{
		ID:              r.ID,
		Kind:            domain.Kind(r.Kind),
		Number:          r.Number,
		Sequence:        r.Sequence,
		ClientID:        r.ClientID,
		BillOfLadingRef: r.BillOfLadingRef,
		Items:           c.decItems(r.Items),
		Subtotal:        c.dec(r.Subtotal),
		Tax:             c.decRate(r.Tax),
		Discount:        c.decRate(r.Discount),
		TotalAmount:     c.dec(r.TotalAmount),
		Currency:        r.Currency,
		IssueDate:       r.IssueDate.UTC(),
		DueDate:         r.DueDate.UTC(),
		Status:          domain.Status(r.Status),
		StatusHistory:   history,
		Notes:           r.Notes,
		IdempotencyKey:  r.IdempotencyKey,
		CreatedAt:       r.CreatedAt.UTC(),
		UpdatedAt:       r.UpdatedAt.UTC(),
	}
	if c.err != nil {
		return nil, fmt.Errorf("document %s: %w", r.ID, c.err)
	}
	return d, nil
}
