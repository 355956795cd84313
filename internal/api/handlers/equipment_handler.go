// server/internal/api/handlers/equipment_handler.go
package handlers

import (
	"net/http"
	"time"

	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/notify"
	"ehs-compliance-api-server/internal/records"
	"ehs-compliance-api-server/internal/status"

	"github.com/gin-gonic/gin"
)

type EquipmentHandler struct {
	Equipment *records.Repo[models.Equipment]
	Logs      *records.Repo[models.EquipmentLog]
}

type CreateEquipmentRequest struct {
	Name                   string `json:"name" binding:"required"`
	Type                   string `json:"type" binding:"required"`
	Location               string `json:"location" binding:"required"`
	SerialNumber           string `json:"serialNumber"`
	InspectionIntervalDays int    `json:"inspectionIntervalDays" binding:"required,min=1"`
}

func (h *EquipmentHandler) CreateEquipment(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Equipment.Add(c.Request.Context(), models.Equipment{
		Name:                   req.Name,
		Type:                   req.Type,
		Location:               req.Location,
		SerialNumber:           req.SerialNumber,
		InspectionIntervalDays: req.InspectionIntervalDays,
		CreatedAt:              time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create equipment"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetAllEquipment returns every piece of equipment with its derived status:
// latest inspection log joined at read time, then the date rules applied. A
// flagged latest log beats any date-based category.
func (h *EquipmentHandler) GetAllEquipment(c *gin.Context) {
	ctx := c.Request.Context()

	equipment, err := h.Equipment.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query equipment"})
		return
	}
	logs, err := h.Logs.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query equipment logs"})
		return
	}

	latest := notify.LatestLogs(logs)
	today := time.Now()

	views := make([]models.EquipmentView, 0, len(equipment))
	for _, eq := range equipment {
		last := latest[eq.ID]
		views = append(views, models.EquipmentView{
			Equipment:          eq,
			LastInspectionDate: last.InspectionDate,
			LatestLogStatus:    last.Status,
			Derived:            status.Compute(last.InspectionDate, eq.InspectionIntervalDays, last.Status, today),
		})
	}
	c.JSON(http.StatusOK, views)
}

func (h *EquipmentHandler) UpdateEquipment(c *gin.Context) {
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	updated, err := h.Equipment.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteEquipment cascades the equipment's own inspection logs: they are
// owned sub-records, not independent references, so they go with their
// parent instead of blocking it.
func (h *EquipmentHandler) DeleteEquipment(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if err := h.Logs.DeleteWhere(ctx, func(l models.EquipmentLog) bool { return l.EquipmentID == id }); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete equipment logs"})
		return
	}
	if err := h.Equipment.Delete(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete equipment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Equipment and its logs deleted successfully"})
}

// --- Inspection logs ---

type CreateEquipmentLogRequest struct {
	InspectionDate string `json:"inspectionDate" binding:"required"`
	Status         string `json:"status" binding:"required"`
	Notes          string `json:"notes"`
}

func (h *EquipmentHandler) AddLog(c *gin.Context) {
	equipmentID := c.Param("id")
	ctx := c.Request.Context()

	if _, err := h.Equipment.Get(ctx, equipmentID); err != nil {
		respondRepoError(c, err)
		return
	}

	var req CreateEquipmentLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Logs.Add(ctx, models.EquipmentLog{
		EquipmentID:    equipmentID,
		InspectionDate: req.InspectionDate,
		Status:         req.Status,
		InspectorID:    c.GetString("user_id"),
		Notes:          req.Notes,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create equipment log"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *EquipmentHandler) GetLogs(c *gin.Context) {
	equipmentID := c.Param("id")

	logs, err := h.Logs.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query equipment logs"})
		return
	}

	out := []models.EquipmentLog{}
	for _, l := range logs {
		if l.EquipmentID == equipmentID {
			out = append(out, l)
		}
	}
	c.JSON(http.StatusOK, out)
}
