// server/internal/records/id.go
package records

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID generates an opaque record id from the current time plus a random
// suffix. Collisions within a collection are astronomically unlikely.
func NewID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}

// Folio builds the human-facing sequential code for a transactional record,
// e.g. Folio("INC", 3) == "INC-0003".
func Folio(prefix string, n int) string {
	return fmt.Sprintf("%s-%04d", prefix, n)
}
