// server/internal/api/handlers/chemical_handler.go
package handlers

import (
	"net/http"
	"time"

	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/records"
	"ehs-compliance-api-server/internal/status"

	"github.com/gin-gonic/gin"
)

type ChemicalHandler struct {
	Chemicals *records.Repo[models.Chemical]
}

type CreateChemicalRequest struct {
	Name          string  `json:"name" binding:"required"`
	CASNumber     string  `json:"casNumber"`
	StorageArea   string  `json:"storageArea"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	SDSExpiryDate string  `json:"sdsExpiryDate"`
}

func (h *ChemicalHandler) CreateChemical(c *gin.Context) {
	var req CreateChemicalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Chemicals.Add(c.Request.Context(), models.Chemical{
		Name:          req.Name,
		CASNumber:     req.CASNumber,
		StorageArea:   req.StorageArea,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		SDSExpiryDate: req.SDSExpiryDate,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create chemical"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

type chemicalView struct {
	models.Chemical
	SDSStatus status.Result `json:"sdsStatus"`
}

// GetAllChemicals lists chemicals with the SDS expiry status derived per
// read.
func (h *ChemicalHandler) GetAllChemicals(c *gin.Context) {
	chemicals, err := h.Chemicals.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query chemicals"})
		return
	}

	today := time.Now()
	views := make([]chemicalView, 0, len(chemicals))
	for _, ch := range chemicals {
		views = append(views, chemicalView{
			Chemical:  ch,
			SDSStatus: status.ComputeExpiry(ch.SDSExpiryDate, status.DefaultWindowDays, today),
		})
	}
	c.JSON(http.StatusOK, views)
}

func (h *ChemicalHandler) UpdateChemical(c *gin.Context) {
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	updated, err := h.Chemicals.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ChemicalHandler) DeleteChemical(c *gin.Context) {
	if err := h.Chemicals.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete chemical"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chemical deleted successfully"})
}
