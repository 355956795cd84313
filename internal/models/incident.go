// server/internal/models/incident.go
package models

import "time"

// Incident is a transactional record of an accident, near miss or unsafe
// condition. Folio format "INC-####".
type Incident struct {
	Base
	Folio       string     `json:"folio"`
	Date        string     `json:"date"` // "YYYY-MM-DD"
	Location    string     `json:"location"`
	Type        string     `json:"type"`     // "Accidente", "Casi Accidente", "Condición Insegura"
	Severity    string     `json:"severity"` // "Leve", "Moderada", "Grave"
	Description string     `json:"description"`
	EmployeeID  string     `json:"employeeID,omitempty"` // involved person
	Status      string     `json:"status"`               // "Abierto", "En Investigación", "Cerrado"
	Evidence    []Evidence `json:"evidence,omitempty"`
	ReportedBy  string     `json:"reportedBy,omitempty"` // user id
	CreatedAt   time.Time  `json:"createdAt"`
}
