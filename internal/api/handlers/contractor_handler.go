// server/internal/api/handlers/contractor_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/records"
	"ehs-compliance-api-server/internal/status"

	"github.com/gin-gonic/gin"
)

type ContractorHandler struct {
	Contractors *records.Repo[models.Contractor]
	Documents   *records.Repo[models.ContractorDocument]
	Permits     *records.Repo[models.WorkPermit]
}

type CreateContractorRequest struct {
	CompanyName string `json:"companyName" binding:"required"`
	RFC         string `json:"rfc"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
}

func (h *ContractorHandler) CreateContractor(c *gin.Context) {
	var req CreateContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Contractors.Add(c.Request.Context(), models.Contractor{
		CompanyName: req.CompanyName,
		RFC:         req.RFC,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Status:      "Activo",
		CreatedAt:   time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contractor"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ContractorHandler) GetAllContractors(c *gin.Context) {
	contractors, err := h.Contractors.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query contractors"})
		return
	}
	c.JSON(http.StatusOK, contractors)
}

func (h *ContractorHandler) UpdateContractor(c *gin.Context) {
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	updated, err := h.Contractors.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// IsContractorInUse blocks deletion while work permits reference the
// contractor. Its own documents do not block: they are owned sub-records
// and cascade instead.
func (h *ContractorHandler) IsContractorInUse(c *gin.Context, id string) (records.InUse, error) {
	permits, err := h.Permits.GetAll(c.Request.Context())
	if err != nil {
		return records.Free, err
	}
	return records.FirstReference(permits,
		func(p models.WorkPermit) bool { return p.ContractorID == id },
		func(p models.WorkPermit) string {
			return fmt.Sprintf("No se puede eliminar: el permiso de trabajo %s hace referencia a este contratista", p.Folio)
		}), nil
}

func (h *ContractorHandler) DeleteContractor(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	inUse, err := h.IsContractorInUse(c, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check contractor references"})
		return
	}
	if inUse.InUse {
		c.JSON(http.StatusConflict, inUse)
		return
	}

	if err := h.Documents.DeleteWhere(ctx, func(d models.ContractorDocument) bool { return d.ContractorID == id }); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contractor documents"})
		return
	}
	if err := h.Contractors.Delete(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contractor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contractor and its documents deleted successfully"})
}

// --- Documents ---

type CreateContractorDocumentRequest struct {
	Name       string `json:"name" binding:"required"`
	ExpiryDate string `json:"expiryDate" binding:"required"`
}

func (h *ContractorHandler) AddDocument(c *gin.Context) {
	contractorID := c.Param("id")
	ctx := c.Request.Context()

	if _, err := h.Contractors.Get(ctx, contractorID); err != nil {
		respondRepoError(c, err)
		return
	}

	var req CreateContractorDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Documents.Add(ctx, models.ContractorDocument{
		ContractorID: contractorID,
		Name:         req.Name,
		ExpiryDate:   req.ExpiryDate,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contractor document"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

type contractorDocumentView struct {
	models.ContractorDocument
	ExpiryStatus status.Result `json:"expiryStatus"`
}

// GetDocuments lists a contractor's documents with their expiry status;
// legal documents use the wide 30-day due-soon window.
func (h *ContractorHandler) GetDocuments(c *gin.Context) {
	contractorID := c.Param("id")

	docs, err := h.Documents.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query contractor documents"})
		return
	}

	today := time.Now()
	out := []contractorDocumentView{}
	for _, d := range docs {
		if d.ContractorID != contractorID {
			continue
		}
		out = append(out, contractorDocumentView{
			ContractorDocument: d,
			ExpiryStatus:       status.ComputeExpiry(d.ExpiryDate, 30, today),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *ContractorHandler) DeleteDocument(c *gin.Context) {
	if err := h.Documents.Delete(c.Request.Context(), c.Param("docID")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contractor document"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contractor document deleted successfully"})
}
