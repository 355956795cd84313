// server/internal/models/training.go
package models

import "time"

// Training is a transactional training session record. Folio format
// "CAP-####".
type Training struct {
	Base
	Folio         string    `json:"folio"`
	Topic         string    `json:"topic"`
	Date          string    `json:"date"` // "YYYY-MM-DD"
	DurationHours float64   `json:"durationHours,omitempty"`
	Instructor    string    `json:"instructor,omitempty"`
	AttendeeIDs   []string  `json:"attendeeIDs,omitempty"` // employee ids
	Status        string    `json:"status"`                // "Programada", "Completada", "Cancelada"
	CreatedAt     time.Time `json:"createdAt"`
}
