// server/internal/api/handlers/incident_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"ehs-compliance-api-server/internal/media"
	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/records"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type IncidentHandler struct {
	Incidents *records.Repo[models.Incident]
	Uploader  *media.Uploader
}

type CreateIncidentRequest struct {
	Date        string `json:"date" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Severity    string `json:"severity" binding:"required"`
	Description string `json:"description" binding:"required"`
	EmployeeID  string `json:"employeeID"`
}

func (h *IncidentHandler) CreateIncident(c *gin.Context) {
	var req CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Incidents.Add(c.Request.Context(), models.Incident{
		Date:        req.Date,
		Location:    req.Location,
		Type:        req.Type,
		Severity:    req.Severity,
		Description: req.Description,
		EmployeeID:  req.EmployeeID,
		Status:      "Abierto",
		ReportedBy:  c.GetString("user_id"),
		CreatedAt:   time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create incident"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *IncidentHandler) GetAllIncidents(c *gin.Context) {
	incidents, err := h.Incidents.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query incidents"})
		return
	}
	c.JSON(http.StatusOK, incidents)
}

func (h *IncidentHandler) GetIncidentByID(c *gin.Context) {
	incident, err := h.Incidents.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, incident)
}

func (h *IncidentHandler) UpdateIncident(c *gin.Context) {
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	updated, err := h.Incidents.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *IncidentHandler) DeleteIncident(c *gin.Context) {
	if err := h.Incidents.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete incident"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Incident deleted successfully"})
}

// UploadEvidence attaches a photo or document to an incident. The file goes
// to S3; the record only stores the pointer.
func (h *IncidentHandler) UploadEvidence(c *gin.Context) {
	ctx := c.Request.Context()

	incident, err := h.Incidents.Get(ctx, c.Param("id"))
	if err != nil {
		respondRepoError(c, err)
		return
	}

	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Evidence storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A 'file' form field is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectKey := fmt.Sprintf("incidents/%s/%s-%s", incident.ID, uuid.New().String()[:8], fileHeader.Filename)
	url, err := h.Uploader.UploadFile(ctx, file, objectKey, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload evidence", "details": err.Error()})
		return
	}

	evidence := append(incident.Evidence, models.Evidence{
		ID:       records.NewID(),
		URL:      url,
		FileName: fileHeader.Filename,
		FileType: contentType,
	})
	updated, err := h.Incidents.Update(ctx, incident.ID, map[string]interface{}{
		"evidence": evidence,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach evidence"})
		return
	}

	c.JSON(http.StatusOK, updated)
}
