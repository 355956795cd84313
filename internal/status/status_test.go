package status

import (
	"testing"
	"time"
)

var today = time.Date(2026, 3, 15, 10, 30, 0, 0, time.Local)

func daysAgo(n int) string {
	return today.AddDate(0, 0, -n).Format("2006-01-02")
}

func TestCompute_Current(t *testing.T) {
	res := Compute(daysAgo(10), 30, "", today)
	if res.Status != Current {
		t.Errorf("Status = %q, want %q", res.Status, Current)
	}
	want := today.AddDate(0, 0, 20).Format("2006-01-02")
	if res.NextDueDate != want {
		t.Errorf("NextDueDate = %q, want %q", res.NextDueDate, want)
	}
}

func TestCompute_DueSoonWindowBoundary(t *testing.T) {
	// Interval 30, last event 23 days ago: due in exactly 7 days, the
	// inclusive edge of the due-soon window.
	res := Compute(daysAgo(23), 30, "", today)
	if res.Status != DueSoon {
		t.Errorf("Status = %q, want %q", res.Status, DueSoon)
	}

	// One day earlier falls back to current.
	res = Compute(daysAgo(22), 30, "", today)
	if res.Status != Current {
		t.Errorf("Status = %q, want %q", res.Status, Current)
	}
}

func TestCompute_DueTodayIsOverdue(t *testing.T) {
	// Due exactly today: diffDays = 0, which counts as overdue, not
	// due-soon.
	res := Compute(daysAgo(30), 30, "", today)
	if res.Status != Overdue {
		t.Errorf("Status = %q, want %q", res.Status, Overdue)
	}
}

func TestCompute_Overdue(t *testing.T) {
	res := Compute(daysAgo(31), 30, "", today)
	if res.Status != Overdue {
		t.Errorf("Status = %q, want %q", res.Status, Overdue)
	}
}

func TestCompute_NeverOnMissingDate(t *testing.T) {
	res := Compute("", 30, "", today)
	if res.Status != Never {
		t.Errorf("Status = %q, want %q", res.Status, Never)
	}
	if res.NextDueDate != "" {
		t.Errorf("NextDueDate = %q, want empty", res.NextDueDate)
	}
}

func TestCompute_NeverOnUnparseableDate(t *testing.T) {
	res := Compute("no es una fecha", 30, "", today)
	if res.Status != Never {
		t.Errorf("Status = %q, want %q", res.Status, Never)
	}
}

func TestCompute_AttentionOverridesDates(t *testing.T) {
	// A flagged latest log wins even when the dates say current.
	res := Compute(daysAgo(1), 30, "Repair Required", today)
	if res.Status != Attention {
		t.Errorf("Status = %q, want %q", res.Status, Attention)
	}
	if res.NextDueDate != "" {
		t.Errorf("NextDueDate = %q, want empty", res.NextDueDate)
	}

	res = Compute("", 30, "Replacement Required", today)
	if res.Status != Attention {
		t.Errorf("Status = %q, want %q", res.Status, Attention)
	}
}

func TestCompute_UnflaggedLogStatusDoesNotOverride(t *testing.T) {
	res := Compute(daysAgo(40), 30, "Operational", today)
	if res.Status != Overdue {
		t.Errorf("Status = %q, want %q", res.Status, Overdue)
	}
}

func TestComputeExpiry_ExpiringTodayIsDueSoon(t *testing.T) {
	// Unlike the interval variant, a document expiring today is still
	// due-soon.
	res := ComputeExpiry(today.Format("2006-01-02"), 7, today)
	if res.Status != DueSoon {
		t.Errorf("Status = %q, want %q", res.Status, DueSoon)
	}
}

func TestComputeExpiry_Windows(t *testing.T) {
	in := func(n int) string { return today.AddDate(0, 0, n).Format("2006-01-02") }

	cases := []struct {
		name   string
		expiry string
		window int
		want   string
	}{
		{"yesterday overdue", in(-1), 7, Overdue},
		{"window edge due-soon", in(7), 7, DueSoon},
		{"past window current", in(8), 7, Current},
		{"wide window edge", in(30), 30, DueSoon},
		{"past wide window", in(31), 30, Current},
	}
	for _, tc := range cases {
		res := ComputeExpiry(tc.expiry, tc.window, today)
		if res.Status != tc.want {
			t.Errorf("%s: Status = %q, want %q", tc.name, res.Status, tc.want)
		}
	}
}

func TestComputeExpiry_NeverOnMissingDate(t *testing.T) {
	res := ComputeExpiry("", 30, today)
	if res.Status != Never {
		t.Errorf("Status = %q, want %q", res.Status, Never)
	}
}

func TestParseLocalDate_BareDateIsLocalMidnight(t *testing.T) {
	parsed, ok := ParseLocalDate("2026-03-15")
	if !ok {
		t.Fatal("expected bare date to parse")
	}
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	if !parsed.Equal(want) {
		t.Errorf("parsed = %v, want local midnight %v", parsed, want)
	}
}
