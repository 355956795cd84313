// server/internal/api/handlers/notification_handler.go
package handlers

import (
	"log"
	"net/http"

	"ehs-compliance-api-server/internal/notify"
	"ehs-compliance-api-server/internal/socket"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	Aggregator *notify.Aggregator
	Hub        *socket.Hub
}

// GetNotifications rebuilds the alert list for the caller from current
// collection state. Nothing here is persisted except the read-id set. When
// the rebuilt list has unread entries, the count is also pushed to the
// caller's websocket connection if one is open.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	user := currentUser(c)
	notifications, err := h.Aggregator.Build(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build notifications"})
		return
	}

	unread := 0
	for _, n := range notifications {
		if !n.IsRead {
			unread++
		}
	}
	if unread > 0 && h.Hub != nil {
		if err := h.Hub.SendJSON(user.ID, gin.H{"event": "unread_count", "count": unread}); err != nil {
			log.Printf("Failed to push unread count to %s: %v", user.ID, err)
		}
	}

	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	if err := h.Aggregator.MarkAsRead(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification as read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	if err := h.Aggregator.MarkAllAsRead(c.Request.Context(), currentUser(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications as read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
