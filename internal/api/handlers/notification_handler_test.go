package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/notify"
	"ehs-compliance-api-server/internal/records"
	"ehs-compliance-api-server/internal/socket"
	"ehs-compliance-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// newNotificationFixture seeds one piece of equipment whose inspection is
// long overdue, so every role sees exactly one unread notification.
func newNotificationFixture(t *testing.T) *notify.Aggregator {
	t.Helper()
	st := store.NewMemoryStore()
	agg := &notify.Aggregator{
		Store:          st,
		Equipment:      records.New[models.Equipment](st, store.KeyEquipment, ""),
		EquipmentLogs:  records.New[models.EquipmentLog](st, store.KeyEquipmentLogs, ""),
		Deliveries:     records.New[models.PPEDelivery](st, store.KeyPPEDeliveries, "EPP"),
		PPEItems:       records.New[models.PPEItem](st, store.KeyPPEItems, ""),
		Employees:      records.New[models.Employee](st, store.KeyEmployees, ""),
		CAPAs:          records.New[models.CorrectiveAction](st, store.KeyCorrectiveActions, "AC"),
		Contractors:    records.New[models.Contractor](st, store.KeyContractors, ""),
		ContractorDocs: records.New[models.ContractorDocument](st, store.KeyContractorDocuments, ""),
	}
	ctx := context.Background()

	eq, err := agg.Equipment.Add(ctx, models.Equipment{Name: "Extintor Pasillo 1", Location: "Nave A", InspectionIntervalDays: 30})
	if err != nil {
		t.Fatalf("seeding equipment: %v", err)
	}
	if _, err := agg.EquipmentLogs.Add(ctx, models.EquipmentLog{
		EquipmentID:    eq.ID,
		InspectionDate: time.Now().AddDate(0, 0, -45).Format("2006-01-02"),
		Status:         "Operational",
	}); err != nil {
		t.Fatalf("seeding log: %v", err)
	}
	return agg
}

func notificationContext(userID string) (*gin.Context, *httptest.ResponseRecorder) {
	c, w := testContext(http.MethodGet, "")
	c.Set("user_id", userID)
	c.Set("user_role", models.RoleOperador)
	return c, w
}

func TestGetNotifications_PushesUnreadCount(t *testing.T) {
	agg := newNotificationFixture(t)
	hub := socket.NewHub()

	registered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrading test connection: %v", err)
			return
		}
		hub.Register("user-1", conn)
		close(registered)
	}))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dialing test server: %v", err)
	}
	defer client.Close()
	<-registered

	h := &NotificationHandler{Aggregator: agg, Hub: hub}
	c, w := notificationContext("user-1")
	h.GetNotifications(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("no websocket push received: %v", err)
	}

	var msg struct {
		Event string `json:"event"`
		Count int    `json:"count"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("decoding push: %v", err)
	}
	if msg.Event != "unread_count" || msg.Count != 1 {
		t.Errorf("push = %+v, want event unread_count with count 1", msg)
	}
}

func TestGetNotifications_OfflineUserStillAnswers(t *testing.T) {
	agg := newNotificationFixture(t)

	// No websocket connection registered for this user; the push is skipped
	// and the HTTP response is unaffected.
	h := &NotificationHandler{Aggregator: agg, Hub: socket.NewHub()}
	c, w := notificationContext("user-2")
	h.GetNotifications(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var list []notify.Notification
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(list) != 1 || list[0].IsRead {
		t.Errorf("notifications = %+v, want one unread", list)
	}
}
