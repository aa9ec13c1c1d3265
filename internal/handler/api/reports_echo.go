package api

import (
	"errors"
	"net/http"
	"time"

	models "SentiPnL/internal/domain/models"
	dservice "SentiPnL/internal/domain/service"
	svcmetrics "SentiPnL/internal/service/metrics"
	"SentiPnL/internal/service/ratelimit"
	xhttp "SentiPnL/pkg/http"
	xlogger "SentiPnL/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ReportsEchoHandler serves analysis reports over HTTP.
type ReportsEchoHandler struct {
	logger  *xlogger.Logger
	svc     dservice.ReportService
	limiter *ratelimit.Limiter
}

func NewReportsEchoHandler(logger *xlogger.Logger, svc dservice.ReportService, limiter *ratelimit.Limiter) *ReportsEchoHandler {
	svcmetrics.Register()
	return &ReportsEchoHandler{logger: logger, svc: svc, limiter: limiter}
}

func (h *ReportsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/report", h.observe("report", h.Latest))
	g.GET("/report/buckets", h.observe("buckets", h.Buckets))
	g.GET("/reports", h.observe("reports", h.History))
	g.POST("/analyze", h.observe("analyze", h.Analyze), h.rateLimit)
}

// observe records latency and error counts per endpoint.
func (h *ReportsEchoHandler) observe(endpoint string, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		svcmetrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		if err != nil || c.Response().Status >= http.StatusInternalServerError {
			svcmetrics.APIErrors.WithLabelValues(endpoint).Inc()
		}
		return err
	}
}

func (h *ReportsEchoHandler) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.limiter != nil && !h.limiter.Allow(c.RealIP()) {
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("analysis rate limit exceeded"))
		}
		return next(c)
	}
}

func (h *ReportsEchoHandler) Latest(c echo.Context) error {
	rep, err := h.svc.Latest(c.Request().Context())
	if err != nil {
		return h.fail(c, "latest report", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.SuccessResponse(c, rep)
}

func (h *ReportsEchoHandler) Buckets(c echo.Context) error {
	rep, err := h.svc.Latest(c.Request().Context())
	if err != nil {
		return h.fail(c, "latest buckets", err)
	}
	return xhttp.ListResponse(c, rep.Buckets, int64(len(rep.Buckets)))
}

func (h *ReportsEchoHandler) History(c echo.Context) error {
	req := &models.ReportListRequest{}
	if verr := xhttp.BindQuery(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	list, err := h.svc.History(c.Request().Context(), req.Limit)
	if err != nil {
		return h.fail(c, "report history", err)
	}
	return xhttp.ListResponse(c, list, int64(len(list)))
}

func (h *ReportsEchoHandler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.BindQuery(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	rep, err := h.svc.Analyze(c.Request().Context(), dservice.AnalyzeOptions{SkipCharts: req.NoCharts})
	if err != nil {
		return h.fail(c, "analyze", err)
	}
	return xhttp.CreatedResponse(c, rep)
}

// fail maps domain errors onto HTTP errors.
func (h *ReportsEchoHandler) fail(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, models.ErrNoReport):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no report available yet").WithError(err))
	case errors.Is(err, models.ErrEmptyMerge):
		return xhttp.AppErrorResponse(c, xhttp.UnprocessableError("trader and sentiment data share no dates").WithError(err))
	case errors.Is(err, models.ErrSourceNotFound),
		errors.Is(err, models.ErrNoTimeColumn),
		errors.Is(err, models.ErrNoDateColumn):
		return xhttp.AppErrorResponse(c, xhttp.UnprocessableError(err.Error()).WithError(err))
	}
	h.logger.Error(op+" failed", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, xhttp.InternalError("analysis failed").WithError(err))
}
