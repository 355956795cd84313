// server/internal/models/employee.go
package models

import "time"

type Employee struct {
	Base
	Name           string          `json:"name"`
	Position       string          `json:"position"`
	Department     string          `json:"department"`
	Email          string          `json:"email,omitempty"`
	HireDate       string          `json:"hireDate,omitempty"` // "YYYY-MM-DD"
	Status         string          `json:"status"`             // "Activo", "Baja"
	PPEAssignments []PPEAssignment `json:"ppeAssignments,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// PPEAssignment records the PPE a worker is entitled to, by catalog reference.
type PPEAssignment struct {
	PPEItemID    string `json:"ppeItemID"`
	Size         string `json:"size,omitempty"`
	AssignedDate string `json:"assignedDate,omitempty"` // "YYYY-MM-DD"
}
