// server/internal/models/ppe.go
package models

import "time"

// Delivery statuses.
const (
	DeliveryPendiente = "Pendiente"
	DeliveryAprobada  = "Aprobada"
	DeliveryRechazada = "Rechazada"
	DeliveryEntregada = "Entregada"
)

// PPEItem is a catalog entry for personal protective equipment.
type PPEItem struct {
	Base
	Name     string   `json:"name"`
	Type     string   `json:"type"` // e.g. "Casco", "Guantes", "Lentes"
	Sizes    []string `json:"sizes,omitempty"`
	Stock    int      `json:"stock"`
	MinStock int      `json:"minStock"`
	UnitCost float64  `json:"unitCost,omitempty"`
}

// PPEDelivery is a transactional request/delivery of a PPE item to an
// employee. Folio format "EPP-####".
type PPEDelivery struct {
	Base
	Folio        string    `json:"folio"`
	EmployeeID   string    `json:"employeeID"`
	PPEItemID    string    `json:"ppeItemID"`
	Quantity     int       `json:"quantity"`
	Size         string    `json:"size,omitempty"`
	Status       string    `json:"status"`
	RequestedBy  string    `json:"requestedBy"`            // user id
	ApprovedBy   string    `json:"approvedBy,omitempty"`   // user id
	DeliveryDate string    `json:"deliveryDate,omitempty"` // "YYYY-MM-DD"
	CreatedAt    time.Time `json:"createdAt"`
}

// PPEDeliveryView is the read-time join returned to clients. The store only
// ever holds the foreign keys.
type PPEDeliveryView struct {
	PPEDelivery
	EmployeeName  string `json:"employeeName"`
	PPEItemName   string `json:"ppeItemName"`
	RequesterName string `json:"requesterName,omitempty"`
	ApproverName  string `json:"approverName,omitempty"`
}
