package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/cargoline/backoffice/internal/core/domain"
	"github.com/cargoline/backoffice/internal/core/ports"
)

// RequirePermission rejects the request unless the caller's role grants
// action on resource. It must run after Auth. Denials surface as
// domain.ErrPermissionDenied for the error handler to render.
func RequirePermission(gate ports.PermissionGate, resource domain.Resource, action domain.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if err := gate.CheckPermission(c.Request().Context(), role, resource, action); err != nil {
				return err
			}
			return next(c)
		}
	}
}
