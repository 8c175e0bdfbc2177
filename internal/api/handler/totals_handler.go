package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cargoline/backoffice/internal/core/domain"
)

// TotalsHandler previews document totals without storing anything.
type TotalsHandler struct{}

func NewTotalsHandler() *TotalsHandler {
	return &TotalsHandler{}
}

// Preview handles POST /v1/totals.
//
// @Summary      Compute document totals
// @Description  Runs the same computation used when a document is saved.
// @Tags         totals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      totalsRequest  true  "Items and adjustments"
// @Success      200   {object}  totalsResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/totals [post]
func (h *TotalsHandler) Preview(c echo.Context) error {
	var req totalsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	totals, err := domain.ComputeAdjustedTotals(toLineItems(req.Items), toAdjustment(req.Tax), toAdjustment(req.Discount))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTotalsResponse(totals))
}
