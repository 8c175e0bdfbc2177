package handler

import (
	"time"

	"github.com/cargoline/backoffice/internal/core/domain"
	"github.com/cargoline/backoffice/internal/core/ports"
)

// --- Request → domain input ---

func toLineItems(reqs []lineItemRequest) []domain.LineItem {
	if reqs == nil {
		return nil
	}
	items := make([]domain.LineItem, len(reqs))
	for i, r := range reqs {
		items[i] = domain.LineItem{
			Description: r.Description,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
		}
	}
	return items
}

func toAdjustment(r *adjustmentRequest) domain.Adjustment {
	if r == nil {
		return domain.Adjustment{}
	}
	return domain.Adjustment{Rate: r.Rate, Amount: r.Amount}
}

func toAdjustmentPtr(r *adjustmentRequest) *domain.Adjustment {
	if r == nil {
		return nil
	}
	a := toAdjustment(r)
	return &a
}

// parseDate reads a YYYY-MM-DD value already checked by the validator.
func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "must be a date formatted as "+dateLayout)
	}
	return t, nil
}

func toDraft(kind domain.Kind, req createDocumentRequest, idempotencyKey string) (domain.DocumentDraft, error) {
	issue, err := parseDate("issue_date", req.IssueDate)
	if err != nil {
		return domain.DocumentDraft{}, err
	}
	due, err := parseDate("due_date", req.DueDate)
	if err != nil {
		return domain.DocumentDraft{}, err
	}
	return domain.DocumentDraft{
		Kind:            kind,
		ClientID:        req.ClientID,
		BillOfLadingRef: req.BillOfLadingRef,
		Items:           toLineItems(req.Items),
		Tax:             toAdjustment(req.Tax),
		Discount:        toAdjustment(req.Discount),
		Currency:        req.Currency,
		IssueDate:       issue,
		DueDate:         due,
		Notes:           req.Notes,
		IdempotencyKey:  idempotencyKey,
	}, nil
}

func toRevision(req updateDocumentRequest) (domain.Revision, error) {
	rev := domain.Revision{
		Items:    toLineItems(req.Items),
		Tax:      toAdjustmentPtr(req.Tax),
		Discount: toAdjustmentPtr(req.Discount),
		Notes:    req.Notes,
	}
	if req.DueDate != nil {
		due, err := parseDate("due_date", *req.DueDate)
		if err != nil {
			return domain.Revision{}, err
		}
		rev.DueDate = &due
	}
	return rev, nil
}

func toBatchEvent(kind domain.Kind, r batchTransitionRequest) ports.TransitionEventInput {
	return ports.TransitionEventInput{
		DocumentID: r.ID,
		Kind:       string(kind),
		Status:     r.Status,
		Timestamp:  r.Timestamp,
		Source:     r.Source,
	}
}

// --- Domain → HTTP response ---

func toLineItemResponses(items []domain.LineItem) []lineItemResponse {
	out := make([]lineItemResponse, len(items))
	for i, li := range items {
		out[i] = lineItemResponse{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice.StringFixed(2),
			Total:       li.Total.StringFixed(2),
		}
	}
	return out
}

func toAdjustmentResponse(r domain.RateAmount) adjustmentResponse {
	resp := adjustmentResponse{Amount: r.Amount.StringFixed(2), Fixed: r.Fixed}
	if !r.Fixed {
		resp.Rate = r.Rate.String()
	}
	return resp
}

func toDocumentResponse(basePath string, d *domain.Document) documentResponse {
	history := make([]statusHistoryResponse, len(d.StatusHistory))
	for i, h := range d.StatusHistory {
		history[i] = statusHistoryResponse{
			Status:    string(h.Status),
			Timestamp: h.Timestamp.UTC(),
			Note:      h.Note,
		}
	}
	self := basePath + "/" + d.ID
	return documentResponse{
		ID:              d.ID,
		Kind:            string(d.Kind),
		Number:          d.Number,
		ClientID:        d.ClientID,
		BillOfLadingRef: d.BillOfLadingRef,
		Items:           toLineItemResponses(d.Items),
		Subtotal:        d.Subtotal.StringFixed(2),
		Tax:             toAdjustmentResponse(d.Tax),
		Discount:        toAdjustmentResponse(d.Discount),
		TotalAmount:     d.TotalAmount.StringFixed(2),
		Currency:        d.Currency,
		IssueDate:       d.IssueDate.Format(dateLayout),
		DueDate:         d.DueDate.Format(dateLayout),
		Status:          string(d.Status),
		StatusHistory:   history,
		Notes:           d.Notes,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
		Links: documentLinks{
			Self:        self,
			Transitions: self + "/transitions",
			Client:      "/v1/clients/" + d.ClientID,
		},
	}
}

func toListResponse(basePath string, r *ports.ListDocumentsResult) listDocumentsResponse {
	items := make([]documentResponse, len(r.Items))
	for i, d := range r.Items {
		items[i] = toDocumentResponse(basePath, d)
	}
	return listDocumentsResponse{
		Items:      items,
		Total:      r.Total,
		Page:       r.Page,
		Limit:      r.Limit,
		TotalPages: r.TotalPages,
	}
}

func toTotalsResponse(t domain.Totals) totalsResponse {
	return totalsResponse{
		Items:       toLineItemResponses(t.Items),
		Subtotal:    t.Subtotal.StringFixed(2),
		Tax:         toAdjustmentResponse(t.Tax),
		Discount:    toAdjustmentResponse(t.Discount),
		TotalAmount: t.TotalAmount.StringFixed(2),
	}
}
