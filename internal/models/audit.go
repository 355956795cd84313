// server/internal/models/audit.go
package models

import "time"

// CAPA statuses.
const (
	CAPAAbierta   = "Abierta"
	CAPAEnProceso = "En Proceso"
	CAPACerrada   = "Cerrada"
)

// Audit is an internal or external compliance audit. Folio format
// "AUD-####".
type Audit struct {
	Base
	Folio     string    `json:"folio"`
	Standard  string    `json:"standard"` // e.g. "ISO 45001", "NOM-017-STPS"
	Date      string    `json:"date"`     // "YYYY-MM-DD"
	Auditor   string    `json:"auditor,omitempty"`
	Findings  []Finding `json:"findings,omitempty"`
	Status    string    `json:"status"` // "Programada", "En Curso", "Cerrada"
	CreatedAt time.Time `json:"createdAt"`
}

// CorrectiveAction is a CAPA commitment raised from an audit, incident or
// inspection. Folio format "AC-####".
type CorrectiveAction struct {
	Base
	Folio          string    `json:"folio"`
	SourceType     string    `json:"sourceType,omitempty"` // "audit", "incident", "inspection"
	SourceID       string    `json:"sourceID,omitempty"`
	Description    string    `json:"description"`
	ResponsibleID  string    `json:"responsibleID"`  // user id of the assignee
	CommitmentDate string    `json:"commitmentDate"` // "YYYY-MM-DD"
	Status         string    `json:"status"`
	ClosedDate     string    `json:"closedDate,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CorrectiveActionView joins a CAPA with its assignee name and derived
// due-date status for list views.
type CorrectiveActionView struct {
	CorrectiveAction
	ResponsibleName string `json:"responsibleName,omitempty"`
	DueStatus       string `json:"dueStatus"`
}
