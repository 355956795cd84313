// server/internal/api/handlers/employee_handler.go
package handlers

import (
	"net/http"
	"time"

	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/records"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	Employees  *records.Repo[models.Employee]
	Deliveries *records.Repo[models.PPEDelivery]
	Incidents  *records.Repo[models.Incident]
}

type CreateEmployeeRequest struct {
	Name           string                 `json:"name" binding:"required"`
	Position       string                 `json:"position" binding:"required"`
	Department     string                 `json:"department" binding:"required"`
	Email          string                 `json:"email"`
	HireDate       string                 `json:"hireDate"`
	PPEAssignments []models.PPEAssignment `json:"ppeAssignments"`
}

func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Employees.Add(c.Request.Context(), models.Employee{
		Name:           req.Name,
		Position:       req.Position,
		Department:     req.Department,
		Email:          req.Email,
		HireDate:       req.HireDate,
		Status:         "Activo",
		PPEAssignments: req.PPEAssignments,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *EmployeeHandler) GetAllEmployees(c *gin.Context) {
	employees, err := h.Employees.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query employees"})
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) GetEmployeeByID(c *gin.Context) {
	employee, err := h.Employees.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	updated, err := h.Employees.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// IsEmployeeInUse blocks deletion while transactional records still point at
// the employee.
func (h *EmployeeHandler) IsEmployeeInUse(c *gin.Context, id string) (records.InUse, error) {
	ctx := c.Request.Context()

	deliveries, err := h.Deliveries.GetAll(ctx)
	if err != nil {
		return records.Free, err
	}
	if r := records.FirstReference(deliveries,
		func(d models.PPEDelivery) bool { return d.EmployeeID == id },
		func(d models.PPEDelivery) string {
			return "No se puede eliminar: la entrega de EPP " + d.Folio + " hace referencia a este empleado"
		}); r.InUse {
		return r, nil
	}

	incidents, err := h.Incidents.GetAll(ctx)
	if err != nil {
		return records.Free, err
	}
	if r := records.FirstReference(incidents,
		func(i models.Incident) bool { return i.EmployeeID == id },
		func(i models.Incident) string {
			return "No se puede eliminar: el incidente " + i.Folio + " hace referencia a este empleado"
		}); r.InUse {
		return r, nil
	}

	return records.Free, nil
}

func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id := c.Param("id")

	inUse, err := h.IsEmployeeInUse(c, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check employee references"})
		return
	}
	if inUse.InUse {
		c.JSON(http.StatusConflict, inUse)
		return
	}

	if err := h.Employees.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete employee"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}
