package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nexdata/internal/service/inventory"
	"nexdata/internal/service/reporting"
)

// DashboardHandler serves the aggregated dashboard metrics.
type DashboardHandler struct {
	store     *inventory.Store
	reporting *reporting.Service
	logger    *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(store *inventory.Store, reportingSvc *reporting.Service, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{store: store, reporting: reportingSvc, logger: logger}
}

// Summary recomputes the dashboard metrics from the current collection.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary := h.reporting.Summarize(h.store.Records())
	c.JSON(http.StatusOK, summary)
}
