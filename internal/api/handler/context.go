package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cargoline/backoffice/internal/api/middleware"
)

// ctxSubject returns the authenticated subject injected by the Auth
// middleware, failing fast when it did not run.
func ctxSubject(c echo.Context) (string, error) {
	sub, _ := c.Get(middleware.CtxSubject).(string)
	if sub == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return sub, nil
}
