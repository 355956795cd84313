// server/internal/models/equipment.go
package models

import (
	"time"

	"ehs-compliance-api-server/internal/status"
)

// Inspection log outcomes. "Repair Required" and "Replacement Required"
// override any date-based status on the equipment they belong to.
const (
	EquipmentOperational         = "Operational"
	EquipmentRepairRequired      = "Repair Required"
	EquipmentReplacementRequired = "Replacement Required"
)

// Equipment is a catalog entry for safety equipment subject to periodic
// inspection (extinguishers, emergency showers, eyewash stations...).
type Equipment struct {
	Base
	Name                   string    `json:"name"`
	Type                   string    `json:"type"`
	Location               string    `json:"location"`
	SerialNumber           string    `json:"serialNumber,omitempty"`
	InspectionIntervalDays int       `json:"inspectionIntervalDays"`
	CreatedAt              time.Time `json:"createdAt"`
}

// EquipmentLog is an owned child record of Equipment: deleting the equipment
// cascades its logs.
type EquipmentLog struct {
	Base
	EquipmentID    string    `json:"equipmentID"`
	InspectionDate string    `json:"inspectionDate"` // "YYYY-MM-DD"
	Status         string    `json:"status"`
	InspectorID    string    `json:"inspectorID,omitempty"` // user id
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// EquipmentView joins a piece of equipment with its latest log and the
// derived compliance status, recomputed on every read.
type EquipmentView struct {
	Equipment
	LastInspectionDate string        `json:"lastInspectionDate,omitempty"`
	LatestLogStatus    string        `json:"latestLogStatus,omitempty"`
	Derived            status.Result `json:"derived"`
}
