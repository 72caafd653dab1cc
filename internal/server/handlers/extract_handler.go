package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nexdata/internal/domain/models"
	"nexdata/internal/service/extraction"
)

// ExtractHandler serves the AI text-extraction endpoint.
type ExtractHandler struct {
	svc    *extraction.Service
	logger *zap.Logger
}

// NewExtractHandler constructs the HTTP handler adapter.
func NewExtractHandler(svc *extraction.Service, logger *zap.Logger) *ExtractHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExtractHandler{svc: svc, logger: logger}
}

// Extract parses free-form text into records and stores them. An empty
// result is a 200 with zero records; extraction faults surface as errors.
func (h *ExtractHandler) Extract(c *gin.Context) {
	var req models.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid extract payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	created, err := h.svc.Extract(c.Request.Context(), req.Text)
	switch {
	case errors.Is(err, extraction.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI Service Error. Check API Key."})
		return
	case errors.Is(err, extraction.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "an extraction is already in progress"})
		return
	case err != nil:
		h.logger.Error("extraction failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI Service Error"})
		return
	}

	c.JSON(http.StatusOK, models.ExtractResponse{Records: created, Count: len(created)})
}
