// server/internal/status/status.go
package status

import (
	"fmt"
	"math"
	"time"
)

// Status categories shown across the application.
const (
	Current   = "En Regla"
	DueSoon   = "Próximo a Vencer"
	Overdue   = "Vencido"
	Never     = "Nunca"
	Attention = "Atención Requerida"
)

// DefaultWindowDays is the due-soon window used by most entities. Legal and
// contractor documents use 30; see the call sites.
const DefaultWindowDays = 7

// AttentionStatuses are the inspection-log outcomes that override any
// date-based computation. Equipment flagged broken is never reported as
// merely overdue.
var AttentionStatuses = map[string]bool{
	"Repair Required":      true,
	"Replacement Required": true,
}

// Result is the derived compliance status of a record. It is never stored;
// it is recomputed from the source dates on every read.
type Result struct {
	Status      string `json:"status"`
	NextDueDate string `json:"nextDueDate,omitempty"` // "YYYY-MM-DD"
	Note        string `json:"note,omitempty"`
}

// ParseLocalDate parses a date string as local time. Bare dates
// ("YYYY-MM-DD") parse as local midnight, not UTC, to avoid off-by-one-day
// errors across timezones.
func ParseLocalDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// midnight truncates t to local midnight.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysUntil returns ceil((target - today) / 1 day) with today normalized to
// midnight.
func daysUntil(target, today time.Time) int {
	diff := target.Sub(midnight(today))
	return int(math.Ceil(diff.Hours() / 24))
}

// Compute derives the status of an entity with a last-event date and a
// recurrence interval. A flagged latest log status wins over any date math;
// a missing or unparseable date degrades to Never rather than failing.
//
// Boundaries: diffDays < 1 is overdue (due today counts as overdue),
// 1..7 inclusive is due-soon, above 7 is current.
func Compute(lastEventDate string, intervalDays int, latestLogStatus string, today time.Time) Result {
	if AttentionStatuses[latestLogStatus] {
		return Result{Status: Attention, Note: latestLogStatus}
	}

	last, ok := ParseLocalDate(lastEventDate)
	if !ok {
		return Result{Status: Never}
	}

	nextDue := midnight(last).AddDate(0, 0, intervalDays)
	diffDays := daysUntil(nextDue, today)

	res := Result{NextDueDate: nextDue.Format("2006-01-02")}
	switch {
	case diffDays < 1:
		res.Status = Overdue
		res.Note = fmt.Sprintf("Venció hace %d días", 1-diffDays)
	case diffDays <= DefaultWindowDays:
		res.Status = DueSoon
		res.Note = fmt.Sprintf("Vence en %d días", diffDays)
	default:
		res.Status = Current
	}
	return res
}

// ComputeExpiry derives the status of a record with a hard expiry date
// (documents, SDS sheets, compliance requirements). Unlike Compute, a record
// expiring today is still due-soon: diffDays < 0 is overdue, 0..windowDays
// inclusive is due-soon.
func ComputeExpiry(expiryDate string, windowDays int, today time.Time) Result {
	expiry, ok := ParseLocalDate(expiryDate)
	if !ok {
		return Result{Status: Never}
	}

	diffDays := daysUntil(midnight(expiry), today)

	res := Result{NextDueDate: midnight(expiry).Format("2006-01-02")}
	switch {
	case diffDays < 0:
		res.Status = Overdue
		res.Note = fmt.Sprintf("Venció hace %d días", -diffDays)
	case diffDays <= windowDays:
		res.Status = DueSoon
		res.Note = fmt.Sprintf("Vence en %d días", diffDays)
	default:
		res.Status = Current
	}
	return res
}
