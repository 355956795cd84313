// server/internal/api/handlers/audit_handler.go
package handlers

import (
	"net/http"
	"time"

	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/records"
	"ehs-compliance-api-server/internal/status"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	Audits *records.Repo[models.Audit]
	CAPAs  *records.Repo[models.CorrectiveAction]
	Users  *records.Repo[models.User]
}

// --- Audits ---

type CreateAuditRequest struct {
	Standard string           `json:"standard" binding:"required"`
	Date     string           `json:"date" binding:"required"`
	Auditor  string           `json:"auditor"`
	Findings []models.Finding `json:"findings" binding:"dive"`
}

func (h *AuditHandler) CreateAudit(c *gin.Context) {
	var req CreateAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Audits.Add(c.Request.Context(), models.Audit{
		Standard:  req.Standard,
		Date:      req.Date,
		Auditor:   req.Auditor,
		Findings:  req.Findings,
		Status:    "Programada",
		CreatedAt: time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create audit"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *AuditHandler) GetAllAudits(c *gin.Context) {
	audits, err := h.Audits.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query audits"})
		return
	}
	c.JSON(http.StatusOK, audits)
}

func (h *AuditHandler) UpdateAudit(c *gin.Context) {
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	updated, err := h.Audits.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *AuditHandler) DeleteAudit(c *gin.Context) {
	if err := h.Audits.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete audit"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Audit deleted successfully"})
}

// --- Corrective actions (CAPA) ---

type CreateCAPARequest struct {
	SourceType     string `json:"sourceType"`
	SourceID       string `json:"sourceID"`
	Description    string `json:"description" binding:"required"`
	ResponsibleID  string `json:"responsibleID" binding:"required"`
	CommitmentDate string `json:"commitmentDate" binding:"required"`
}

func (h *AuditHandler) CreateCAPA(c *gin.Context) {
	var req CreateCAPARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	if _, err := h.Users.Get(ctx, req.ResponsibleID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown responsible user"})
		return
	}

	created, err := h.CAPAs.Add(ctx, models.CorrectiveAction{
		SourceType:     req.SourceType,
		SourceID:       req.SourceID,
		Description:    req.Description,
		ResponsibleID:  req.ResponsibleID,
		CommitmentDate: req.CommitmentDate,
		Status:         models.CAPAAbierta,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create corrective action"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetAllCAPAs returns corrective actions joined with the assignee name and
// the derived commitment-date status.
func (h *AuditHandler) GetAllCAPAs(c *gin.Context) {
	ctx := c.Request.Context()

	capas, err := h.CAPAs.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query corrective actions"})
		return
	}
	users, err := h.Users.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
		return
	}

	names := map[string]string{}
	for _, u := range users {
		names[u.ID] = u.Name
	}

	today := time.Now()
	views := make([]models.CorrectiveActionView, 0, len(capas))
	for _, capa := range capas {
		due := status.ComputeExpiry(capa.CommitmentDate, status.DefaultWindowDays, today)
		if capa.Status == models.CAPACerrada {
			due.Status = status.Current
			due.Note = ""
		}
		views = append(views, models.CorrectiveActionView{
			CorrectiveAction: capa,
			ResponsibleName:  names[capa.ResponsibleID],
			DueStatus:        due.Status,
		})
	}
	c.JSON(http.StatusOK, views)
}

func (h *AuditHandler) UpdateCAPA(c *gin.Context) {
	patch, ok := bindPatch(c)
	if !ok {
		return
	}

	// Closing a CAPA stamps the closure date unless the caller set one.
	if s, _ := patch["status"].(string); s == models.CAPACerrada {
		if _, ok := patch["closedDate"]; !ok {
			patch["closedDate"] = time.Now().Format("2006-01-02")
		}
	}

	updated, err := h.CAPAs.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *AuditHandler) DeleteCAPA(c *gin.Context) {
	if err := h.CAPAs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete corrective action"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Corrective action deleted successfully"})
}
