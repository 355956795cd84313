// server/internal/models/contractor.go
package models

import "time"

// Contractor is a catalog entry for an external company working on site.
// Its documents are owned sub-records (cascade on delete); work permits
// referencing the contractor block deletion.
type Contractor struct {
	Base
	CompanyName string    `json:"companyName"`
	RFC         string    `json:"rfc,omitempty"`
	ContactName string    `json:"contactName,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Status      string    `json:"status"` // "Activo", "Inactivo"
	CreatedAt   time.Time `json:"createdAt"`
}

// ContractorDocument is a compliance document (insurance policy, IMSS
// registration...) with a hard expiry date. The due-soon window for these is
// 30 days.
type ContractorDocument struct {
	Base
	ContractorID string    `json:"contractorID"`
	Name         string    `json:"name"`
	ExpiryDate   string    `json:"expiryDate"` // "YYYY-MM-DD"
	Evidence     *Evidence `json:"evidence,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
