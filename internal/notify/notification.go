// server/internal/notify/notification.go
package notify

import "time"

// Notification types. The id of a notification is "<type>-<sourceRecordID>",
// deterministic so regeneration never duplicates read tracking.
const (
	TypeEquipmentDue       = "equipment_due"
	TypePPEApproval        = "ppe_approval"
	TypeCAPADue            = "capa_due"
	TypeContractorDocument = "contractor_document"
)

// Notification is ephemeral: generated fresh on every load from current
// collection state, never persisted itself. Only the read-id set survives.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"isRead"`
}
