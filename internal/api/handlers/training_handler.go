// server/internal/api/handlers/training_handler.go
package handlers

import (
	"net/http"
	"time"

	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/records"

	"github.com/gin-gonic/gin"
)

type TrainingHandler struct {
	Trainings *records.Repo[models.Training]
}

type CreateTrainingRequest struct {
	Topic         string   `json:"topic" binding:"required"`
	Date          string   `json:"date" binding:"required"`
	DurationHours float64  `json:"durationHours"`
	Instructor    string   `json:"instructor"`
	AttendeeIDs   []string `json:"attendeeIDs"`
}

func (h *TrainingHandler) CreateTraining(c *gin.Context) {
	var req CreateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Trainings.Add(c.Request.Context(), models.Training{
		Topic:         req.Topic,
		Date:          req.Date,
		DurationHours: req.DurationHours,
		Instructor:    req.Instructor,
		AttendeeIDs:   req.AttendeeIDs,
		Status:        "Programada",
		CreatedAt:     time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create training"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TrainingHandler) GetAllTrainings(c *gin.Context) {
	trainings, err := h.Trainings.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query trainings"})
		return
	}
	c.JSON(http.StatusOK, trainings)
}

func (h *TrainingHandler) UpdateTraining(c *gin.Context) {
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	updated, err := h.Trainings.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *TrainingHandler) DeleteTraining(c *gin.Context) {
	if err := h.Trainings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete training"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Training deleted successfully"})
}
