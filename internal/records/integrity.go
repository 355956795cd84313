// server/internal/records/integrity.go
package records

import "fmt"

// InUse is the result of a referential-integrity check before deleting a
// catalog entity. It is returned as data, never as an error: the caller
// must check InUse and render Message when deletion is refused.
type InUse struct {
	InUse   bool   `json:"inUse"`
	Message string `json:"message,omitempty"`
}

// Free means no dependent records block the deletion.
var Free = InUse{}

// Blocked builds a refusal naming the first blocking reference.
func Blocked(format string, args ...interface{}) InUse {
	return InUse{InUse: true, Message: fmt.Sprintf(format, args...)}
}

// FirstReference scans list for the first record matching match and, when
// found, returns a Blocked result built by describe. Catalog delete handlers
// chain one call per referencing collection; the first hit wins.
func FirstReference[T any](list []T, match func(T) bool, describe func(T) string) InUse {
	for _, rec := range list {
		if match(rec) {
			return InUse{InUse: true, Message: describe(rec)}
		}
	}
	return Free
}
