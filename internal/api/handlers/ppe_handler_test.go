package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/records"
	"ehs-compliance-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

func testContext(method, id string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", nil)
	if id != "" {
		c.Params = gin.Params{{Key: "id", Value: id}}
	}
	return c, w
}

// newPPEFixture seeds one item referenced both by a pending delivery and by
// an employee PPE assignment.
func newPPEFixture(t *testing.T) (*PPEHandler, models.PPEItem, models.PPEDelivery, models.Employee) {
	t.Helper()
	st := store.NewMemoryStore()
	h := &PPEHandler{
		Items:      records.New[models.PPEItem](st, store.KeyPPEItems, ""),
		Deliveries: records.New[models.PPEDelivery](st, store.KeyPPEDeliveries, "EPP"),
		Employees:  records.New[models.Employee](st, store.KeyEmployees, ""),
		Users:      records.New[models.User](st, store.KeyUsers, ""),
	}
	ctx := context.Background()

	item, err := h.Items.Add(ctx, models.PPEItem{Name: "Casco de Seguridad", Type: "Casco", Stock: 10})
	if err != nil {
		t.Fatalf("seeding item: %v", err)
	}
	emp, err := h.Employees.Add(ctx, models.Employee{
		Name:           "Luis Pérez",
		Position:       "Operador",
		Department:     "Producción",
		PPEAssignments: []models.PPEAssignment{{PPEItemID: item.ID}},
	})
	if err != nil {
		t.Fatalf("seeding employee: %v", err)
	}
	delivery, err := h.Deliveries.Add(ctx, models.PPEDelivery{
		EmployeeID: emp.ID,
		PPEItemID:  item.ID,
		Quantity:   1,
		Status:     models.DeliveryPendiente,
	})
	if err != nil {
		t.Fatalf("seeding delivery: %v", err)
	}
	return h, item, delivery, emp
}

func TestDeleteItem_BlockedByDeliveryNamesFolio(t *testing.T) {
	h, item, delivery, _ := newPPEFixture(t)

	c, w := testContext(http.MethodDelete, item.ID)
	h.DeleteItem(c)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", w.Code, w.Body.String())
	}
	// Both a delivery and an assignment reference the item; the delivery
	// check runs first, so its folio names the block.
	if !strings.Contains(w.Body.String(), delivery.Folio) {
		t.Errorf("body %q does not name blocking folio %q", w.Body.String(), delivery.Folio)
	}

	if _, err := h.Items.Get(context.Background(), item.ID); err != nil {
		t.Errorf("item was deleted despite references: %v", err)
	}
}

func TestDeleteItem_BlockedByEmployeeAssignment(t *testing.T) {
	h, item, delivery, emp := newPPEFixture(t)
	ctx := context.Background()

	if err := h.Deliveries.Delete(ctx, delivery.ID); err != nil {
		t.Fatalf("deleting delivery: %v", err)
	}

	c, w := testContext(http.MethodDelete, item.ID)
	h.DeleteItem(c)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), emp.Name) {
		t.Errorf("body %q does not name assigned employee %q", w.Body.String(), emp.Name)
	}
}

func TestDeleteItem_UnreferencedItemIsDeleted(t *testing.T) {
	h, item, delivery, emp := newPPEFixture(t)
	ctx := context.Background()

	if err := h.Deliveries.Delete(ctx, delivery.ID); err != nil {
		t.Fatalf("deleting delivery: %v", err)
	}
	if _, err := h.Employees.Update(ctx, emp.ID, map[string]interface{}{
		"ppeAssignments": []models.PPEAssignment{},
	}); err != nil {
		t.Fatalf("clearing assignments: %v", err)
	}

	c, w := testContext(http.MethodDelete, item.ID)
	h.DeleteItem(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	if _, err := h.Items.Get(ctx, item.ID); !errors.Is(err, records.ErrNotFound) {
		t.Errorf("item still present after delete: %v", err)
	}
}

func TestApproveDelivery_UnknownIDIs404(t *testing.T) {
	h, _, _, _ := newPPEFixture(t)

	c, w := testContext(http.MethodPost, "no-such-delivery")
	h.ApproveDelivery(c)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404; body %s", w.Code, w.Body.String())
	}
}
