package handler

import (
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// --- Request types ---

// Amounts accept JSON numbers or strings ("12.50"); strings avoid float
// rounding in clients.

type lineItemRequest struct {
	Description string          `json:"description" validate:"required,max=500"`
	Quantity    int64           `json:"quantity"    validate:"gte=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type adjustmentRequest struct {
	Rate   *decimal.Decimal `json:"rate,omitempty"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

type createDocumentRequest struct {
	ClientID        string             `json:"client_id"          validate:"required"`
	BillOfLadingRef string             `json:"bill_of_lading_ref" validate:"max=100"`
	Items           []lineItemRequest  `json:"items"              validate:"required,min=1,dive"`
	Tax             *adjustmentRequest `json:"tax"`
	Discount        *adjustmentRequest `json:"discount"`
	Currency        string             `json:"currency"           validate:"omitempty,iso4217"`
	IssueDate       string             `json:"issue_date"         validate:"required,datetime=2006-01-02"`
	DueDate         string             `json:"due_date"           validate:"required,datetime=2006-01-02"`
	Notes           string             `json:"notes"              validate:"max=1000"`
}

type updateDocumentRequest struct {
	Items    []lineItemRequest  `json:"items"    validate:"omitempty,min=1,dive"`
	Tax      *adjustmentRequest `json:"tax"`
	Discount *adjustmentRequest `json:"discount"`
	DueDate  *string            `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Notes    *string            `json:"notes"    validate:"omitempty,max=1000"`
}

type transitionRequest struct {
	Status string `json:"status" validate:"required,oneof=sent paid overdue canceled accepted rejected expired"`
	Note   string `json:"note"   validate:"max=500"`
}

type batchTransitionRequest struct {
	ID        string    `json:"id"        validate:"required"`
	Status    string    `json:"status"    validate:"required,oneof=sent paid overdue canceled accepted rejected expired"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
	Source    string    `json:"source"    validate:"required,max=100"`
}

type listDocumentsQuery struct {
	Status     string `query:"status"      validate:"omitempty,oneof=draft sent paid overdue canceled accepted rejected expired"`
	ClientID   string `query:"client_id"`
	Search     string `query:"q"           validate:"max=100"`
	IssuedFrom string `query:"issued_from" validate:"omitempty,datetime=2006-01-02"`
	IssuedTo   string `query:"issued_to"   validate:"omitempty,datetime=2006-01-02"`
	Page       int    `query:"page"        validate:"gte=0"`
	Limit      int    `query:"limit"       validate:"gte=0,lte=100"`
}

type totalsRequest struct {
	Items    []lineItemRequest  `json:"items"    validate:"required,min=1,dive"`
	Tax      *adjustmentRequest `json:"tax"`
	Discount *adjustmentRequest `json:"discount"`
}

// --- Response types ---

// Money is rendered as fixed two-decimal strings.

type lineItemResponse struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
}

type adjustmentResponse struct {
	Rate   string `json:"rate,omitempty"`
	Amount string `json:"amount"`
	Fixed  bool   `json:"fixed,omitempty"`
}

type statusHistoryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

type documentLinks struct {
	Self        string `json:"self"`
	Transitions string `json:"transitions"`
	Client      string `json:"client"`
}

type documentResponse struct {
	ID              string                  `json:"id"`
	Kind            string                  `json:"kind"`
	Number          string                  `json:"number"`
	ClientID        string                  `json:"client_id"`
	BillOfLadingRef string                  `json:"bill_of_lading_ref,omitempty"`
	Items           []lineItemResponse      `json:"items"`
	Subtotal        string                  `json:"subtotal"`
	Tax             adjustmentResponse      `json:"tax"`
	Discount        adjustmentResponse      `json:"discount"`
	TotalAmount     string                  `json:"total_amount"`
	Currency        string                  `json:"currency"`
	IssueDate       string                  `json:"issue_date"`
	DueDate         string                  `json:"due_date"`
	Status          string                  `json:"status"`
	StatusHistory   []statusHistoryResponse `json:"status_history"`
	Notes           string                  `json:"notes,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
	Links           documentLinks           `json:"_links"`
}

type listDocumentsResponse struct {
	Items      []documentResponse `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

type totalsResponse struct {
	Items       []lineItemResponse `json:"items"`
	Subtotal    string             `json:"subtotal"`
	Tax         adjustmentResponse `json:"tax"`
	Discount    adjustmentResponse `json:"discount"`
	TotalAmount string             `json:"total_amount"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
