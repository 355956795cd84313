// server/internal/store/store.go
package store

import "context"

// Store is the keyed persistence abstraction behind every collection. Values
// are JSON-serialized under namespaced keys; the store is the sole owner of
// durable state.
//
// Storage failures are returned to the caller as errors rather than
// swallowed, so the HTTP layer can decide how to surface them.
type Store interface {
	// Read deserializes the value at key into out. It returns found=false
	// and leaves out untouched when the key is absent.
	Read(ctx context.Context, key string, out interface{}) (found bool, err error)
	// Write serializes value and persists it at key, replacing any previous
	// value wholesale.
	Write(ctx context.Context, key string, value interface{}) error
	// Delete removes key if present. Absent keys are a no-op.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Namespaced keys for every persisted collection, plus the seed guard flag
// and the flat read-notification-id set.
const (
	KeySeeded            = "ehs:seeded"
	KeyReadNotifications = "ehs:read_notifications"

	KeyUsers               = "ehs:users"
	KeyEmployees           = "ehs:employees"
	KeyPPEItems            = "ehs:ppe_items"
	KeyPPEDeliveries       = "ehs:ppe_deliveries"
	KeyEquipment           = "ehs:equipment"
	KeyEquipmentLogs       = "ehs:equipment_logs"
	KeyIncidents           = "ehs:incidents"
	KeyTrainings           = "ehs:trainings"
	KeyInspections         = "ehs:inspections"
	KeyChemicals           = "ehs:chemicals"
	KeyWasteTypes          = "ehs:waste_types"
	KeyWasteLogs           = "ehs:waste_logs"
	KeyWorkPermits         = "ehs:work_permits"
	KeyAudits              = "ehs:audits"
	KeyCorrectiveActions   = "ehs:corrective_actions"
	KeyContractors         = "ehs:contractors"
	KeyContractorDocuments = "ehs:contractor_documents"
)

// CollectionKeys lists every collection key the seeder initializes.
var CollectionKeys = []string{
	KeyUsers,
	KeyEmployees,
	KeyPPEItems,
	KeyPPEDeliveries,
	KeyEquipment,
	KeyEquipmentLogs,
	KeyIncidents,
	KeyTrainings,
	KeyInspections,
	KeyChemicals,
	KeyWasteTypes,
	KeyWasteLogs,
	KeyWorkPermits,
	KeyAudits,
	KeyCorrectiveActions,
	KeyContractors,
	KeyContractorDocuments,
}
