// server/internal/api/handlers/inspection_handler.go
package handlers

import (
	"net/http"
	"time"

	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/records"

	"github.com/gin-gonic/gin"
)

type InspectionHandler struct {
	Inspections *records.Repo[models.Inspection]
}

type CreateInspectionRequest struct {
	Area     string           `json:"area" binding:"required"`
	Date     string           `json:"date" binding:"required"`
	Findings []models.Finding `json:"findings" binding:"dive"`
}

func (h *InspectionHandler) CreateInspection(c *gin.Context) {
	var req CreateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Inspections.Add(c.Request.Context(), models.Inspection{
		Area:        req.Area,
		Date:        req.Date,
		InspectorID: c.GetString("user_id"),
		Findings:    req.Findings,
		Status:      "Abierta",
		CreatedAt:   time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create inspection"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *InspectionHandler) GetAllInspections(c *gin.Context) {
	inspections, err := h.Inspections.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query inspections"})
		return
	}
	c.JSON(http.StatusOK, inspections)
}

func (h *InspectionHandler) UpdateInspection(c *gin.Context) {
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	updated, err := h.Inspections.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *InspectionHandler) DeleteInspection(c *gin.Context) {
	if err := h.Inspections.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inspection"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inspection deleted successfully"})
}
