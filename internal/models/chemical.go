// server/internal/models/chemical.go
package models

import "time"

// Chemical is a catalog entry for a hazardous substance in use on site. The
// SDS (safety data sheet) carries a hard expiry date.
type Chemical struct {
	Base
	Name          string    `json:"name"`
	CASNumber     string    `json:"casNumber,omitempty"`
	StorageArea   string    `json:"storageArea,omitempty"`
	Quantity      float64   `json:"quantity"`
	Unit          string    `json:"unit,omitempty"` // e.g. "L", "kg"
	SDSExpiryDate string    `json:"sdsExpiryDate,omitempty"` // "YYYY-MM-DD"
	CreatedAt     time.Time `json:"createdAt"`
}
