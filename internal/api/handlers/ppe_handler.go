// server/internal/api/handlers/ppe_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/records"
	"ehs-compliance-api-server/internal/socket"

	"github.com/gin-gonic/gin"
)

type PPEHandler struct {
	Items      *records.Repo[models.PPEItem]
	Deliveries *records.Repo[models.PPEDelivery]
	Employees  *records.Repo[models.Employee]
	Users      *records.Repo[models.User]
	Hub        *socket.Hub
}

// --- Catalog: PPE items ---

type CreatePPEItemRequest struct {
	Name     string   `json:"name" binding:"required"`
	Type     string   `json:"type" binding:"required"`
	Sizes    []string `json:"sizes"`
	Stock    int      `json:"stock" binding:"min=0"`
	MinStock int      `json:"minStock" binding:"min=0"`
	UnitCost float64  `json:"unitCost"`
}

func (h *PPEHandler) CreateItem(c *gin.Context) {
	var req CreatePPEItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Items.Add(c.Request.Context(), models.PPEItem{
		Name:     req.Name,
		Type:     req.Type,
		Sizes:    req.Sizes,
		Stock:    req.Stock,
		MinStock: req.MinStock,
		UnitCost: req.UnitCost,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create PPE item"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *PPEHandler) GetAllItems(c *gin.Context) {
	items, err := h.Items.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query PPE items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *PPEHandler) UpdateItem(c *gin.Context) {
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	updated, err := h.Items.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// IsItemInUse refuses catalog deletion while deliveries or employee PPE
// assignments still reference the item. The message names the first
// blocking record.
func (h *PPEHandler) IsItemInUse(c *gin.Context, id string) (records.InUse, error) {
	ctx := c.Request.Context()

	deliveries, err := h.Deliveries.GetAll(ctx)
	if err != nil {
		return records.Free, err
	}
	if r := records.FirstReference(deliveries,
		func(d models.PPEDelivery) bool { return d.PPEItemID == id },
		func(d models.PPEDelivery) string {
			return fmt.Sprintf("No se puede eliminar: la entrega %s hace referencia a este EPP", d.Folio)
		}); r.InUse {
		return r, nil
	}

	employees, err := h.Employees.GetAll(ctx)
	if err != nil {
		return records.Free, err
	}
	if r := records.FirstReference(employees,
		func(e models.Employee) bool {
			for _, a := range e.PPEAssignments {
				if a.PPEItemID == id {
					return true
				}
			}
			return false
		},
		func(e models.Employee) string {
			return fmt.Sprintf("No se puede eliminar: el empleado %s tiene asignado este EPP", e.Name)
		}); r.InUse {
		return r, nil
	}

	return records.Free, nil
}

func (h *PPEHandler) DeleteItem(c *gin.Context) {
	id := c.Param("id")

	inUse, err := h.IsItemInUse(c, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check PPE item references"})
		return
	}
	if inUse.InUse {
		c.JSON(http.StatusConflict, inUse)
		return
	}

	if err := h.Items.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete PPE item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "PPE item deleted successfully"})
}

// --- Transactional: deliveries ---

type CreateDeliveryRequest struct {
	EmployeeID string `json:"employeeID" binding:"required"`
	PPEItemID  string `json:"ppeItemID" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	Size       string `json:"size"`
}

func (h *PPEHandler) CreateDelivery(c *gin.Context) {
	var req CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	if _, err := h.Employees.Get(ctx, req.EmployeeID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown employee"})
		return
	}
	if _, err := h.Items.Get(ctx, req.PPEItemID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown PPE item"})
		return
	}

	created, err := h.Deliveries.Add(ctx, models.PPEDelivery{
		EmployeeID:  req.EmployeeID,
		PPEItemID:   req.PPEItemID,
		Quantity:    req.Quantity,
		Size:        req.Size,
		Status:      models.DeliveryPendiente,
		RequestedBy: c.GetString("user_id"),
		CreatedAt:   time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create delivery"})
		return
	}

	// Nudge connected clients; administrators rebuild their alert list on it.
	if h.Hub != nil {
		h.Hub.Broadcast(gin.H{"event": "ppe_approval_requested", "folio": created.Folio})
	}

	c.JSON(http.StatusCreated, created)
}

// GetAllDeliveries returns the denormalized join view: employee, item and
// requester/approver names resolved at read time. The store only holds the
// foreign keys.
func (h *PPEHandler) GetAllDeliveries(c *gin.Context) {
	ctx := c.Request.Context()

	deliveries, err := h.Deliveries.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query deliveries"})
		return
	}
	employees, err := h.Employees.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query employees"})
		return
	}
	items, err := h.Items.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query PPE items"})
		return
	}
	users, err := h.Users.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
		return
	}

	employeeNames := map[string]string{}
	for _, e := range employees {
		employeeNames[e.ID] = e.Name
	}
	itemNames := map[string]string{}
	for _, it := range items {
		itemNames[it.ID] = it.Name
	}
	userNames := map[string]string{}
	for _, u := range users {
		userNames[u.ID] = u.Name
	}

	views := make([]models.PPEDeliveryView, 0, len(deliveries))
	for _, d := range deliveries {
		views = append(views, models.PPEDeliveryView{
			PPEDelivery:   d,
			EmployeeName:  employeeNames[d.EmployeeID],
			PPEItemName:   itemNames[d.PPEItemID],
			RequesterName: userNames[d.RequestedBy],
			ApproverName:  userNames[d.ApprovedBy],
		})
	}
	c.JSON(http.StatusOK, views)
}

// ApproveDelivery decrements the item stock and then marks the delivery
// approved. These are two independent writes with no shared transaction:
// the kv store offers none, so the inconsistency window between them is a
// known property of this flow.
func (h *PPEHandler) ApproveDelivery(c *gin.Context) {
	ctx := c.Request.Context()

	delivery, err := h.Deliveries.Get(ctx, c.Param("id"))
	if err != nil {
		respondRepoError(c, err)
		return
	}
	if delivery.Status != models.DeliveryPendiente {
		c.JSON(http.StatusConflict, gin.H{"error": "Delivery is not pending approval"})
		return
	}

	item, err := h.Items.Get(ctx, delivery.PPEItemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load PPE item"})
		return
	}
	if item.Stock < delivery.Quantity {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Stock insuficiente: %d disponibles", item.Stock)})
		return
	}

	if _, err := h.Items.Update(ctx, item.ID, map[string]interface{}{
		"stock": item.Stock - delivery.Quantity,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
		return
	}

	updated, err := h.Deliveries.Update(ctx, delivery.ID, map[string]interface{}{
		"status":     models.DeliveryAprobada,
		"approvedBy": c.GetString("user_id"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *PPEHandler) RejectDelivery(c *gin.Context) {
	ctx := c.Request.Context()

	delivery, err := h.Deliveries.Get(ctx, c.Param("id"))
	if err != nil {
		respondRepoError(c, err)
		return
	}
	if delivery.Status != models.DeliveryPendiente {
		c.JSON(http.StatusConflict, gin.H{"error": "Delivery is not pending approval"})
		return
	}

	updated, err := h.Deliveries.Update(ctx, delivery.ID, map[string]interface{}{
		"status":     models.DeliveryRechazada,
		"approvedBy": c.GetString("user_id"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ConfirmDelivery marks an approved delivery as handed over to the worker.
func (h *PPEHandler) ConfirmDelivery(c *gin.Context) {
	ctx := c.Request.Context()

	delivery, err := h.Deliveries.Get(ctx, c.Param("id"))
	if err != nil {
		respondRepoError(c, err)
		return
	}
	if delivery.Status != models.DeliveryAprobada {
		c.JSON(http.StatusConflict, gin.H{"error": "Delivery is not approved"})
		return
	}

	updated, err := h.Deliveries.Update(ctx, delivery.ID, map[string]interface{}{
		"status":       models.DeliveryEntregada,
		"deliveryDate": time.Now().Format("2006-01-02"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery"})
		return
	}
	c.JSON(http.StatusOK, updated)
}
