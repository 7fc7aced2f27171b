package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ehr/dashboard/internal/platform/auth"
	"github.com/ehr/dashboard/internal/platform/recordstore"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the dashboard under api. reloadMW wraps only the
// reload endpoint (rate limiting).
func (h *Handler) RegisterRoutes(api *echo.Group, reloadMW ...echo.MiddlewareFunc) {
	g := api.Group("/dashboard", auth.RequireRole("admin"))
	g.GET("", h.GetDashboard)
	g.GET("/population", h.GetPopulation)
	g.GET("/compliance", h.GetCompliance)
	g.GET("/insights", h.GetInsights)
	g.GET("/rules", h.ListRules)
	g.GET("/charts", h.ListCharts)
	g.GET("/charts/:name", h.GetChart)
	g.POST("/reload", h.Reload, reloadMW...)
}

type insightsResponse struct {
	Heading  string   `json:"heading"`
	Insights []string `json:"insights"`
}

func (h *Handler) GetDashboard(c echo.Context) error {
	snap, err := h.snapshot(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *Handler) GetPopulation(c echo.Context) error {
	snap, err := h.snapshot(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap.Population)
}

func (h *Handler) GetCompliance(c echo.Context) error {
	snap, err := h.snapshot(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap.Compliance)
}

func (h *Handler) GetInsights(c echo.Context) error {
	snap, err := h.snapshot(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, insightsResponse{Heading: snap.InsightsHeading, Insights: snap.Insights})
}

func (h *Handler) ListRules(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Rules())
}

func (h *Handler) ListCharts(c echo.Context) error {
	snap, err := h.snapshot(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap.Charts)
}

func (h *Handler) GetChart(c echo.Context) error {
	name := c.Param("name")
	if !isChartName(name) {
		return echo.NewHTTPError(http.StatusNotFound, "unknown chart: "+name)
	}
	snap, err := h.snapshot(c)
	if err != nil {
		return err
	}
	s, _ := ChartByName(snap.Charts, name)
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) Reload(c echo.Context) error {
	h.svc.Reload()
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) snapshot(c echo.Context) (*Snapshot, error) {
	today := c.QueryParam("today")
	if today != "" {
		if _, err := time.Parse(DateLayout, today); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "today must be a date in YYYY-MM-DD form")
		}
	}
	snap, err := h.svc.Snapshot(c.Request().Context(), today)
	if err != nil {
		return nil, storeError(err)
	}
	return snap, nil
}

func isChartName(name string) bool {
	for _, n := range ChartNames() {
		if n == name {
			return true
		}
	}
	return false
}

// storeError maps a record load failure onto an HTTP status.
func storeError(err error) error {
	switch {
	case errors.Is(err, recordstore.ErrMalformedBlob):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusGatewayTimeout, "record store timed out")
	default:
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
}
