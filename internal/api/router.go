package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/cargoline/backoffice/internal/api/handler"
	"github.com/cargoline/backoffice/internal/api/middleware"
	"github.com/cargoline/backoffice/internal/core/domain"
	"github.com/cargoline/backoffice/internal/core/ports"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	JWTSecret  string
	Documents  ports.DocumentService
	Clients    ports.ClientService
	Gate       ports.PermissionGate
	Dispatcher handler.TransitionDispatcher
	HealthDeps map[string]handler.Pinger
	Log        zerolog.Logger
	// Registry receives the HTTP metrics. Nil uses the default Prometheus
	// registry, which also holds the domain metrics.
	Registry *prometheus.Registry
}

// documentRoutes maps each kind to the path segment it is served under.
var documentRoutes = []struct {
	kind domain.Kind
	path string
}{
	{domain.KindInvoice, "invoices"},
	{domain.KindProformaInvoice, "proforma-invoices"},
	{domain.KindQuotation, "quotations"},
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	promCfg := echoprometheus.MiddlewareConfig{
		Namespace: "backoffice",
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || p == "/health" || p == "/health/ready"
		},
	}
	handlerCfg := echoprometheus.HandlerConfig{}
	if deps.Registry != nil {
		promCfg.Registerer = deps.Registry
		handlerCfg.Gatherer = deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))

	// --- Operational endpoints (no auth required) ---
	health := handler.NewHealthHandler(deps.HealthDeps)
	e.GET("/health", health.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", health.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(handlerCfg))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1", middleware.Auth(deps.JWTSecret))
	can := func(res domain.Resource, act domain.Action) echo.MiddlewareFunc {
		return middleware.RequirePermission(deps.Gate, res, act)
	}

	// --- Clients ---
	clients := handler.NewClientHandler(deps.Clients)
	v1.POST("/clients", clients.Create, can(domain.ResourceClients, domain.ActionCreate))
	v1.GET("/clients", clients.List, can(domain.ResourceClients, domain.ActionRead))
	v1.GET("/clients/:id", clients.Get, can(domain.ResourceClients, domain.ActionRead))

	// --- Documents, one group per kind ---
	for _, r := range documentRoutes {
		base := "/v1/" + r.path
		h := handler.NewDocumentHandler(r.kind, base, deps.Documents, deps.Dispatcher)
		res := r.kind.Resource()

		g := v1.Group("/" + r.path)
		g.POST("", h.Create, can(res, domain.ActionCreate))
		g.GET("", h.List, can(res, domain.ActionRead))
		g.POST("/transitions/batch", h.TransitionBatch, can(res, domain.ActionUpdate))
		g.GET("/:id", h.Get, can(res, domain.ActionRead))
		g.PUT("/:id", h.Update, can(res, domain.ActionUpdate))
		g.DELETE("/:id", h.Delete, can(res, domain.ActionDelete))
		g.POST("/:id/transitions", h.Transition, can(res, domain.ActionUpdate))
	}

	// --- Totals preview ---
	totals := handler.NewTotalsHandler()
	v1.POST("/totals", totals.Preview, can(domain.ResourceDocuments, domain.ActionRead))

	return e
}

// requestLogger emits one structured entry per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
