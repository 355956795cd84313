// server/internal/models/common.go
package models

// Base carries the fields every stored record has. The id is opaque,
// generated once at creation and never reassigned.
type Base struct {
	ID string `json:"id"`
}

// RecordID implements records.Keyed.
func (b Base) RecordID() string { return b.ID }

// Evidence is a pointer to a file stored on S3 or a compatible service.
type Evidence struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"` // e.g. "image/jpeg", "application/pdf"
}

// Finding is a structured observation raised by an inspection or audit.
type Finding struct {
	Description string `json:"description"`
	Severity    string `json:"severity"` // "Baja", "Media", "Alta", "Crítica"
	Status      string `json:"status"`   // "Abierta", "Cerrada"
}

// CRETIB holds the hazard classification flags for hazardous waste.
type CRETIB struct {
	Corrosive  bool `json:"corrosive"`
	Reactive   bool `json:"reactive"`
	Explosive  bool `json:"explosive"`
	Flammable  bool `json:"flammable"`
	Toxic      bool `json:"toxic"`
	Biological bool `json:"biological"`
}
