// server/internal/models/permit.go
package models

import "time"

// WorkPermit is a transactional permit-to-work record. Folio format
// "PT-####".
type WorkPermit struct {
	Base
	Folio        string    `json:"folio"`
	Type         string    `json:"type"` // "Trabajo en Caliente", "Espacio Confinado", "Altura"
	ContractorID string    `json:"contractorID,omitempty"`
	Area         string    `json:"area"`
	StartDate    string    `json:"startDate"` // "YYYY-MM-DD"
	EndDate      string    `json:"endDate"`
	Status       string    `json:"status"` // "Abierto", "Cerrado", "Cancelado"
	IssuedBy     string    `json:"issuedBy,omitempty"` // user id
	CreatedAt    time.Time `json:"createdAt"`
}
