// server/internal/models/user.go
package models

import "time"

// Roles understood by the permission checks.
const (
	RoleAdministrador = "Administrador"
	RoleSupervisor    = "Supervisor"
	RoleOperador      = "Operador"
)

type User struct {
	Base
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Password   string    `json:"password,omitempty"` // bcrypt hash; handlers blank it before responding
	Role       string    `json:"role"`
	EmployeeID string    `json:"employeeID,omitempty"` // optional link to an Employee record
	Status     string    `json:"status"`               // "Activo", "Inactivo"
	CreatedAt  time.Time `json:"createdAt"`
}
