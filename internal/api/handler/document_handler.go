package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cargoline/backoffice/internal/core/domain"
	"github.com/cargoline/backoffice/internal/core/ports"
)

// TransitionDispatcher is the interface the handler uses to queue batch
// transitions for asynchronous processing.
type TransitionDispatcher interface {
	EnqueueBatch(events []ports.TransitionEventInput) (int, error)
}

// DocumentHandler serves one document kind. The router mounts one instance
// per kind under its own base path.
type DocumentHandler struct {
	kind       domain.Kind
	basePath   string
	service    ports.DocumentService
	dispatcher TransitionDispatcher
}

func NewDocumentHandler(kind domain.Kind, basePath string, service ports.DocumentService, dispatcher TransitionDispatcher) *DocumentHandler {
	return &DocumentHandler{
		kind:       kind,
		basePath:   basePath,
		service:    service,
		dispatcher: dispatcher,
	}
}

// Create handles POST /v1/{kind}.
//
// @Summary      Create a draft document
// @Description  Numbers the document, computes its totals and stores it in draft status.
// @Description  Replaying an Idempotency-Key returns the original document with 200.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind             path      string                 true   "invoices, proforma-invoices or quotations"
// @Param        Idempotency-Key  header    string                 false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createDocumentRequest  true   "Document details"
// @Success      201              {object}  documentResponse
// @Success      200              {object}  documentResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/{kind} [post]
func (h *DocumentHandler) Create(c echo.Context) error {
	var req createDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	draft, err := toDraft(h.kind, req, c.Request().Header.Get("Idempotency-Key"))
	if err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), draft)
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, toDocumentResponse(h.basePath, result.Document))
}

// List handles GET /v1/{kind}.
//
// @Summary      List documents
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        kind         path      string  true   "invoices, proforma-invoices or quotations"
// @Param        status       query     string  false  "Filter by status"
// @Param        client_id    query     string  false  "Filter by client"
// @Param        q            query     string  false  "Search number or notes"
// @Param        issued_from  query     string  false  "Issue date lower bound (YYYY-MM-DD)"
// @Param        issued_to    query     string  false  "Issue date upper bound (YYYY-MM-DD)"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Page size (default 20, max 100)"
// @Success      200          {object}  listDocumentsResponse
// @Failure      401          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Failure      422          {object}  errorResponse
// @Router       /v1/{kind} [get]
func (h *DocumentHandler) List(c echo.Context) error {
	var q listDocumentsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	input := ports.ListDocumentsInput{
		Kind:     h.kind,
		Status:   q.Status,
		ClientID: q.ClientID,
		Search:   q.Search,
		Page:     q.Page,
		Limit:    q.Limit,
	}
	if q.IssuedFrom != "" {
		from, err := parseDate("issued_from", q.IssuedFrom)
		if err != nil {
			return err
		}
		input.IssuedFrom = from
	}
	if q.IssuedTo != "" {
		to, err := parseDate("issued_to", q.IssuedTo)
		if err != nil {
			return err
		}
		input.IssuedTo = to
	}

	result, err := h.service.List(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(h.basePath, result))
}

// Get handles GET /v1/{kind}/:id.
//
// @Summary      Get a document by ID
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path      string  true  "invoices, proforma-invoices or quotations"
// @Param        id    path      string  true  "Document ID"
// @Success      200   {object}  documentResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/{kind}/{id} [get]
func (h *DocumentHandler) Get(c echo.Context) error {
	doc, err := h.service.Get(c.Request().Context(), h.kind, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDocumentResponse(h.basePath, doc))
}

// Update handles PUT /v1/{kind}/:id. Only drafts can be edited.
//
// @Summary      Edit a draft document
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path      string                 true  "invoices, proforma-invoices or quotations"
// @Param        id    path      string                 true  "Document ID"
// @Param        body  body      updateDocumentRequest  true  "Fields to change"
// @Success      200   {object}  documentResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/{kind}/{id} [put]
func (h *DocumentHandler) Update(c echo.Context) error {
	var req updateDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	rev, err := toRevision(req)
	if err != nil {
		return err
	}
	doc, err := h.service.UpdateDraft(c.Request().Context(), h.kind, c.Param("id"), rev)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDocumentResponse(h.basePath, doc))
}

// Delete handles DELETE /v1/{kind}/:id. Only drafts can be deleted.
//
// @Summary      Delete a draft document
// @Tags         documents
// @Security     BearerAuth
// @Param        kind  path  string  true  "invoices, proforma-invoices or quotations"
// @Param        id    path  string  true  "Document ID"
// @Success      204
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/{kind}/{id} [delete]
func (h *DocumentHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteDraft(c.Request().Context(), h.kind, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Transition handles POST /v1/{kind}/:id/transitions.
//
// @Summary      Move a document to a new status
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path      string             true  "invoices, proforma-invoices or quotations"
// @Param        id    path      string             true  "Document ID"
// @Param        body  body      transitionRequest  true  "Target status"
// @Success      200   {object}  documentResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/{kind}/{id}/transitions [post]
func (h *DocumentHandler) Transition(c echo.Context) error {
	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}
	note := req.Note
	if note == "" {
		note = "changed by " + subject
	}

	doc, err := h.service.Transition(c.Request().Context(), ports.TransitionInput{
		Kind:   h.kind,
		ID:     c.Param("id"),
		Status: req.Status,
		Note:   note,
		At:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDocumentResponse(h.basePath, doc))
}

// TransitionBatch handles POST /v1/{kind}/transitions/batch. Entries are
// applied asynchronously in order per document.
//
// @Summary      Queue a batch of status transitions
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path      string                    true  "invoices, proforma-invoices or quotations"
// @Param        body  body      []batchTransitionRequest  true  "Transitions, e.g. bank reconciliation lines"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  acceptedResponse
// @Router       /v1/{kind}/transitions/batch [post]
func (h *DocumentHandler) TransitionBatch(c echo.Context) error {
	var reqs []batchTransitionRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.TransitionEventInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("transition[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, toBatchEvent(h.kind, req))
	}

	accepted, err := h.dispatcher.EnqueueBatch(inputs)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, acceptedResponse{
			Message: "transition queue is full, retry the remaining entries",
			Count:   accepted,
		})
	}
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "transitions accepted",
		Count:   accepted,
	})
}
