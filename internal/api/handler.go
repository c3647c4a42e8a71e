package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"SynthChart/internal/collector"
	"SynthChart/internal/model"
	"SynthChart/internal/recorder"
)

const chartsBasePath = "/api/v1/charts"

var errMissingPair = errors.New("base and quote query params required")

// Handler serves synthesized pair charts over HTTP.
type Handler struct {
	router    *gin.Engine
	collector *collector.Collector
	recorder  recorder.Recorder
	logger    *logrus.Logger
}

func NewHandler(col *collector.Collector, rec recorder.Recorder, logger *logrus.Logger) *Handler {
	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware(), loggerMiddleware(logger), corsMiddleware())

	h := &Handler{
		router:    router,
		collector: col,
		recorder:  rec,
		logger:    logger,
	}
	h.registerRoutes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	charts := h.router.Group(chartsBasePath)
	{
		charts.GET("/pair", h.getPairChart)
		charts.GET("/pair/latest", h.getLatestPairChart)
	}
}

// getPairChart synthesizes the pair chart from live price history.
func (h *Handler) getPairChart(c *gin.Context) {
	base, quote, period, err := parsePairQuery(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	chart, err := h.collector.CollectPair(c.Request.Context(), base, quote, period)
	if errors.Is(err, collector.ErrSamePair) {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		h.logger.WithError(err).Warn("collect pair chart")
		writeError(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, newChartResponse(chart))
}

// getLatestPairChart returns the last chart recorded by the scheduler.
func (h *Handler) getLatestPairChart(c *gin.Context) {
	base, quote, period, err := parsePairQuery(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	chart, err := h.recorder.LatestPairChart(base, quote, period)
	if errors.Is(err, recorder.ErrNotFound) {
		writeError(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, newChartResponse(chart))
}

func parsePairQuery(c *gin.Context) (base, quote model.CurrencyKey, period model.Period, err error) {
	base, quote = model.CurrencyKey(c.Query("base")), model.CurrencyKey(c.Query("quote"))
	if base == "" || quote == "" {
		return "", "", model.Period{}, errMissingPair
	}
	label := c.DefaultQuery("period", model.OneDay.Label)
	period, err = model.ParsePeriod(label)
	if err != nil {
		return "", "", model.Period{}, fmt.Errorf("period: %w", err)
	}
	return base, quote, period, nil
}

func writeError(c *gin.Context, status int, err error) {
	if err == nil {
		status = http.StatusInternalServerError
		err = errors.New("unknown error")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
