// server/internal/api/handlers/waste_handler.go
package handlers

import (
	"net/http"
	"time"

	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/records"

	"github.com/gin-gonic/gin"
)

type WasteHandler struct {
	Types *records.Repo[models.WasteType]
	Logs  *records.Repo[models.WasteLog]
}

// --- Catalog: waste types ---

type CreateWasteTypeRequest struct {
	Name           string        `json:"name" binding:"required"`
	Classification models.CRETIB `json:"classification"`
	Container      string        `json:"container"`
	DisposalMethod string        `json:"disposalMethod"`
}

func (h *WasteHandler) CreateWasteType(c *gin.Context) {
	var req CreateWasteTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Types.Add(c.Request.Context(), models.WasteType{
		Name:           req.Name,
		Classification: req.Classification,
		Container:      req.Container,
		DisposalMethod: req.DisposalMethod,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create waste type"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *WasteHandler) GetAllWasteTypes(c *gin.Context) {
	types, err := h.Types.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query waste types"})
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *WasteHandler) UpdateWasteType(c *gin.Context) {
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	updated, err := h.Types.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteWasteType cascades the type's own generation logs, mirroring the
// equipment/log ownership: logs are history of the type, not independent
// references.
func (h *WasteHandler) DeleteWasteType(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if err := h.Logs.DeleteWhere(ctx, func(l models.WasteLog) bool { return l.WasteTypeID == id }); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete waste logs"})
		return
	}
	if err := h.Types.Delete(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete waste type"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Waste type and its logs deleted successfully"})
}

// --- Transactional: waste logs ---

type CreateWasteLogRequest struct {
	WasteTypeID    string  `json:"wasteTypeID" binding:"required"`
	Date           string  `json:"date" binding:"required"`
	Quantity       float64 `json:"quantity" binding:"required"`
	Unit           string  `json:"unit"`
	ManifestNumber string  `json:"manifestNumber"`
}

func (h *WasteHandler) CreateWasteLog(c *gin.Context) {
	var req CreateWasteLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	if _, err := h.Types.Get(ctx, req.WasteTypeID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown waste type"})
		return
	}

	created, err := h.Logs.Add(ctx, models.WasteLog{
		WasteTypeID:    req.WasteTypeID,
		Date:           req.Date,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		ManifestNumber: req.ManifestNumber,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create waste log"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetAllWasteLogs returns logs joined with their waste type name.
func (h *WasteHandler) GetAllWasteLogs(c *gin.Context) {
	ctx := c.Request.Context()

	logs, err := h.Logs.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query waste logs"})
		return
	}
	types, err := h.Types.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query waste types"})
		return
	}

	names := map[string]string{}
	for _, t := range types {
		names[t.ID] = t.Name
	}

	views := make([]models.WasteLogView, 0, len(logs))
	for _, l := range logs {
		views = append(views, models.WasteLogView{WasteLog: l, WasteTypeName: names[l.WasteTypeID]})
	}
	c.JSON(http.StatusOK, views)
}

func (h *WasteHandler) DeleteWasteLog(c *gin.Context) {
	if err := h.Logs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete waste log"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Waste log deleted successfully"})
}
