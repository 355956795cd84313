// server/internal/models/inspection.go
package models

import "time"

// Inspection is a workplace walkthrough inspection with structured findings.
// Folio format "INSP-####".
type Inspection struct {
	Base
	Folio       string    `json:"folio"`
	Area        string    `json:"area"`
	Date        string    `json:"date"` // "YYYY-MM-DD"
	InspectorID string    `json:"inspectorID,omitempty"` // user id
	Findings    []Finding `json:"findings,omitempty"`
	Status      string    `json:"status"` // "Abierta", "Cerrada"
	CreatedAt   time.Time `json:"createdAt"`
}
