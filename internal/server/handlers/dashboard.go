package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abiwaumi/tablewater/internal/repository"
	"github.com/abiwaumi/tablewater/internal/service/reporting"
)

// DashboardHandler serves the aggregated summary views.
type DashboardHandler struct {
	reportingSvc *reporting.Service
	store        repository.Store
	logger       *zap.Logger
	now          func() time.Time
}

// NewDashboardHandler constructs the summary HTTP adapter.
func NewDashboardHandler(reportingSvc *reporting.Service, store repository.Store, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{
		reportingSvc: reportingSvc,
		store:        store,
		logger:       logger,
		now:          time.Now,
	}
}

// Stats returns today's and month-to-date dashboard figures.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.reportingSvc.DashboardStats(c.Request.Context(), h.now())
	if err != nil {
		respondStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RevenueSummary returns the month-to-date revenue view.
func (h *DashboardHandler) RevenueSummary(c *gin.Context) {
	summary, err := h.reportingSvc.RevenueSummary(c.Request.Context(), h.now())
	if err != nil {
		respondStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DailyReports lists stored end-of-day snapshots, newest first. ?limit=
// bounds the result.
func (h *DashboardHandler) DailyReports(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer", "field": "limit"})
			return
		}
		limit = parsed
	}

	reports, err := h.store.ListDailyReports(c.Request.Context(), limit)
	if err != nil {
		respondStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}
