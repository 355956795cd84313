// server/internal/api/handlers/permit_handler.go
package handlers

import (
	"net/http"
	"time"

	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/records"

	"github.com/gin-gonic/gin"
)

type PermitHandler struct {
	Permits     *records.Repo[models.WorkPermit]
	Contractors *records.Repo[models.Contractor]
}

type CreatePermitRequest struct {
	Type         string `json:"type" binding:"required"`
	ContractorID string `json:"contractorID"`
	Area         string `json:"area" binding:"required"`
	StartDate    string `json:"startDate" binding:"required"`
	EndDate      string `json:"endDate" binding:"required"`
}

func (h *PermitHandler) CreatePermit(c *gin.Context) {
	var req CreatePermitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	if req.ContractorID != "" {
		if _, err := h.Contractors.Get(ctx, req.ContractorID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown contractor"})
			return
		}
	}

	created, err := h.Permits.Add(ctx, models.WorkPermit{
		Type:         req.Type,
		ContractorID: req.ContractorID,
		Area:         req.Area,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       "Abierto",
		IssuedBy:     c.GetString("user_id"),
		CreatedAt:    time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create work permit"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *PermitHandler) GetAllPermits(c *gin.Context) {
	permits, err := h.Permits.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query work permits"})
		return
	}
	c.JSON(http.StatusOK, permits)
}

func (h *PermitHandler) UpdatePermit(c *gin.Context) {
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	updated, err := h.Permits.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *PermitHandler) DeletePermit(c *gin.Context) {
	if err := h.Permits.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete work permit"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Work permit deleted successfully"})
}
