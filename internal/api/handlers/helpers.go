// server/internal/api/handlers/helpers.go
package handlers

import (
	"errors"
	"net/http"

	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/records"

	"github.com/gin-gonic/gin"
)

// currentUser rebuilds the caller identity from the claims Authenticate put
// into the context.
func currentUser(c *gin.Context) models.User {
	return models.User{
		Base:  models.Base{ID: c.GetString("user_id")},
		Email: c.GetString("user_email"),
		Name:  c.GetString("user_name"),
		Role:  c.GetString("user_role"),
	}
}

// bindPatch reads the request body as a shallow patch map for Update calls.
func bindPatch(c *gin.Context) (map[string]interface{}, bool) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return patch, true
}

// respondRepoError maps repo errors to HTTP: a missing id is the caller's
// problem, anything else is the store's. Used on read and write paths alike.
func respondRepoError(c *gin.Context, err error) {
	if errors.Is(err, records.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage error"})
}
