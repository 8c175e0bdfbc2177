package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cargoline/backoffice/internal/core/domain"
	"github.com/cargoline/backoffice/internal/core/ports"
)

// ClientHandler handles HTTP requests for client operations.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

type createClientRequest struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Phone   string `json:"phone"   validate:"max=50"`
	Address string `json:"address" validate:"max=500"`
	TaxID   string `json:"tax_id"  validate:"max=50"`
}

type listClientsQuery struct {
	Search string `query:"q"     validate:"max=100"`
	Page   int    `query:"page"  validate:"gte=0"`
	Limit  int    `query:"limit" validate:"gte=0,lte=100"`
}

type clientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	TaxID     string    `json:"tax_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listClientsResponse struct {
	Items      []clientResponse `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

func toClientResponse(cl *domain.Client) clientResponse {
	return clientResponse{
		ID:        cl.ID,
		Name:      cl.Name,
		Email:     cl.Email,
		Phone:     cl.Phone,
		Address:   cl.Address,
		TaxID:     cl.TaxID,
		CreatedAt: cl.CreatedAt.UTC(),
		UpdatedAt: cl.UpdatedAt.UTC(),
	}
}

// Create handles POST /v1/clients.
//
// @Summary      Register a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client details"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	cl, err := h.service.Create(c.Request().Context(), ports.CreateClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		TaxID:   req.TaxID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toClientResponse(cl))
}

// Get handles GET /v1/clients/:id.
//
// @Summary      Get a client by ID
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  clientResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	cl, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(cl))
}

// List handles GET /v1/clients.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        q      query     string  false  "Search by name or tax ID"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Page size (default 20, max 100)"
// @Success      200    {object}  listClientsResponse
// @Failure      422    {object}  errorResponse
// @Router       /v1/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	var q listClientsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.List(c.Request().Context(), ports.ListClientsFilter{
		Search: q.Search,
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		return err
	}

	items := make([]clientResponse, len(result.Items))
	for i, cl := range result.Items {
		items[i] = toClientResponse(cl)
	}
	return c.JSON(http.StatusOK, listClientsResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}
