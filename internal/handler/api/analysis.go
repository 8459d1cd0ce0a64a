package api

import (
	"errors"
	"net/http"

	"TickLens/internal/domain/models"
	"TickLens/internal/usecase"
	xhttp "TickLens/pkg/http"
	xlogger "TickLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler serves the interval analysis API.
type AnalysisHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
}

func NewAnalysisHandler(logger *xlogger.Logger, analyzer *usecase.Analyzer) *AnalysisHandler {
	return &AnalysisHandler{logger: logger, analyzer: analyzer}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/fetch", h.Fetch)
	e.GET("/healthz", h.Health)
}

// Fetch resolves the requested window and returns point-in-time and
// range-aggregate statistics for the symbol.
func (h *AnalysisHandler) Fetch(c echo.Context) error {
	req := &models.FetchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}

	res, err := h.analyzer.Analyze(c.Request().Context(), req.Symbol, req.T1, req.Duration, req.Unit)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidInterval):
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
		case errors.Is(err, models.ErrNoData):
			return xhttp.AppErrorResponse(c, xhttp.NotFoundError(err.Error()))
		default:
			appErr := xhttp.InternalError("upstream data source unavailable").WithError(err)
			h.logger.Error("analysis failed",
				xlogger.String("symbol", req.Symbol),
				xlogger.Error(appErr),
			)
			return xhttp.AppErrorResponse(c, appErr)
		}
	}

	return xhttp.SuccessResponse(c, res)
}

// Health is a liveness probe.
func (h *AnalysisHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, xhttp.HealthBody{Status: "ok"})
}
