package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexdata/internal/domain/models"
	"nexdata/internal/service/inventory"
)

// RecordHandler serves the record list and entry endpoints.
type RecordHandler struct {
	store  *inventory.Store
	logger *zap.Logger
}

// NewRecordHandler constructs the HTTP handler adapter.
func NewRecordHandler(store *inventory.Store, logger *zap.Logger) *RecordHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordHandler{store: store, logger: logger}
}

// List returns the filtered, optionally sorted collection.
// Query params: q (search term), sort (field name), dir (asc|desc).
func (h *RecordHandler) List(c *gin.Context) {
	query := inventory.Query{Search: c.Query("q")}

	if raw := c.Query("sort"); raw != "" {
		key, ok := inventory.ParseSortKey(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sort field"})
			return
		}
		query.Sort = &inventory.SortSpec{
			Key:       key,
			Direction: inventory.ParseDirection(c.Query("dir")),
		}
	}

	records, count := h.store.List(query)
	c.JSON(http.StatusOK, models.RecordListResponse{Records: records, Count: count})
}

// Create adds a record from a manual entry submission.
func (h *RecordHandler) Create(c *gin.Context) {
	var req models.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid record payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "productName is required"})
		return
	}

	dateAdded := req.DateAdded
	if dateAdded == "" {
		dateAdded = time.Now().Format(models.DateLayout)
	}

	record := models.DataRecord{
		ID:          uuid.NewString(),
		ProductName: req.ProductName,
		Category:    models.CoerceCategory(req.Category),
		Quantity:    req.Quantity,
		Price:       req.Price,
		DateAdded:   dateAdded,
		Status:      models.CoerceStatus(req.Status),
		Notes:       req.Notes,
	}

	if err := h.store.Add(c.Request.Context(), record); err != nil {
		h.logger.Error("failed adding record", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, record)
}

// Delete removes a record by id.
func (h *RecordHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		h.logger.Error("failed deleting record", zap.Error(err), zap.String("id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to delete record"})
		return
	}

	c.Status(http.StatusNoContent)
}
