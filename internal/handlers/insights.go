package handlers

import (
	"errors"
	"net/http"

	"wellness-go/internal/metrics"
	"wellness-go/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"
)

type InsightsHandler struct {
	log     *zap.Logger
	service *services.InsightsService
}

func NewInsightsHandler(log *zap.Logger, service *services.InsightsService) *InsightsHandler {
	return &InsightsHandler{log: log, service: service}
}

// fail maps service errors onto a JSON response.
func (h *InsightsHandler) fail(c *gin.Context, err error, msg string) {
	if errors.Is(err, services.ErrInvalidRange) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.log.Error(msg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// Report serves GET /api/insights?range=7d|30d|90d|all.
func (h *InsightsHandler) Report(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	report, err := h.service.Report(c.Request.Context(), user, c.Query("range"))
	if err != nil {
		h.fail(c, err, "Failed to build insights")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *InsightsHandler) Streak(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	streak, err := h.service.Streak(c.Request.Context(), user)
	if err != nil {
		h.fail(c, err, "Failed to load streak")
		return
	}
	c.JSON(http.StatusOK, streak)
}

func (h *InsightsHandler) Heatmap(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	report, err := h.service.Report(c.Request.Context(), user, c.Query("range"))
	if err != nil {
		h.fail(c, err, "Failed to build heatmap")
		return
	}
	c.JSON(http.StatusOK, report.Heatmap)
}

func (h *InsightsHandler) Timeline(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	rows, err := h.service.Timeline(c.Request.Context(), user, c.Query("range"))
	if err != nil {
		h.fail(c, err, "Failed to load timeline")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// TimelineChart serves the timeline as echarts options, ready for the client
// to pass to setOption.
func (h *InsightsHandler) TimelineChart(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	rows, err := h.service.Timeline(c.Request.Context(), user, c.Query("range"))
	if err != nil {
		h.fail(c, err, "Failed to load timeline")
		return
	}
	c.JSON(http.StatusOK, generateTimelineChart(rows).JSON())
}

func generateTimelineChart(rows []metrics.TimelineRow) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Assessment Scores Over Time",
			Subtitle: "Normalized 0-100",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Min:  0,
			Max:  100,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	// Points are [date, value]; a type missing on a day has no point.
	for _, t := range metrics.TimelineTypes(rows) {
		items := make([]opts.LineData, 0, len(rows))
		for _, row := range rows {
			if v, ok := row.Scores[t]; ok {
				items = append(items, opts.LineData{Value: []interface{}{row.Date, v}})
			}
		}
		line.AddSeries(t, items).SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	}

	overall := make([]opts.LineData, 0, len(rows))
	for _, row := range rows {
		overall = append(overall, opts.LineData{Value: []interface{}{row.Date, row.Overall}})
	}
	line.AddSeries("overall", overall).SetSeriesOptions(
		charts.WithLineStyleOpts(opts.LineStyle{Width: 3, Type: "dashed"}),
	)
	return line
}
