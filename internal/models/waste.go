// server/internal/models/waste.go
package models

import "time"

// WasteType is a catalog entry for a hazardous or non-hazardous waste
// stream. Deleting a waste type cascades its logs (owned sub-records).
type WasteType struct {
	Base
	Name           string    `json:"name"`
	Classification CRETIB    `json:"classification"`
	Container      string    `json:"container,omitempty"`
	DisposalMethod string    `json:"disposalMethod,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// WasteLog is a generation/disposal entry for a waste type. Folio format
// "RES-####".
type WasteLog struct {
	Base
	Folio          string    `json:"folio"`
	WasteTypeID    string    `json:"wasteTypeID"`
	Date           string    `json:"date"` // "YYYY-MM-DD"
	Quantity       float64   `json:"quantity"`
	Unit           string    `json:"unit,omitempty"`
	ManifestNumber string    `json:"manifestNumber,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// WasteLogView joins a log with its waste type name for list views.
type WasteLogView struct {
	WasteLog
	WasteTypeName string `json:"wasteTypeName"`
}
