package engine

import (
	"testing"
	"time"
)

func TestWeekKey(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local), "2025-W09"},
		// Monday 2024-12-30 belongs to week 1 of 2025.
		{time.Date(2024, 12, 30, 0, 0, 0, 0, time.Local), "2025-W01"},
		// Friday 2021-01-01 belongs to week 53 of 2020.
		{time.Date(2021, 1, 1, 0, 0, 0, 0, time.Local), "2020-W53"},
		// Thursday 2026-01-01 anchors week 1 of 2026.
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local), "2026-W01"},
	}
	for _, c := range cases {
		if got := WeekKey(c.date); got != c.want {
			t.Fatalf("WeekKey(%s)=%q, want %q", c.date.Format(DateLayout), got, c.want)
		}
	}
}

func TestReconcileWeekResets(t *testing.T) {
	prev := time.Date(2025, 2, 20, 10, 0, 0, 0, time.Local) // 2025-W08
	now := time.Date(2025, 2, 26, 10, 0, 0, 0, time.Local)  // 2025-W09

	rec := NewRecord("tester", prev)
	rec.Level = 5
	rec.XP = 120
	rec.Streak = 9
	rec.History = []Entry{{ID: "e1", Date: "2025-02-20", Title: "old", Points: 50}}

	out, changed := ReconcileWeek(rec, now, DefaultWeekResetPolicy())
	if !changed {
		t.Fatalf("expected reset across week boundary")
	}
	if out.Level != 1 || out.XP != 0 {
		t.Fatalf("level=%d xp=%d, want 1/0", out.Level, out.XP)
	}
	if out.WeekKey != "2025-W09" {
		t.Fatalf("weekKey=%q, want 2025-W09", out.WeekKey)
	}
	// History and streak persist across resets.
	if out.Streak != 9 {
		t.Fatalf("streak=%d, want untouched 9", out.Streak)
	}
	if len(out.History) != 1 || out.History[0].ID != "e1" {
		t.Fatalf("history touched by weekly reset")
	}

	// Input not mutated.
	if rec.Level != 5 || rec.WeekKey != "2025-W08" {
		t.Fatalf("input record mutated: %+v", rec)
	}
}

func TestReconcileWeekSameWeekNoop(t *testing.T) {
	now := time.Date(2025, 2, 26, 10, 0, 0, 0, time.Local)
	rec := NewRecord("tester", now)
	rec.Level = 3
	rec.XP = 40

	out, changed := ReconcileWeek(rec, now.AddDate(0, 0, 2), DefaultWeekResetPolicy())
	if changed {
		t.Fatalf("unexpected reset within the same ISO week")
	}
	if out.Level != 3 || out.XP != 40 {
		t.Fatalf("record changed without reset: level=%d xp=%d", out.Level, out.XP)
	}
}

func TestReconcileWeekCustomPolicy(t *testing.T) {
	rec := NewRecord("tester", time.Date(2025, 2, 20, 0, 0, 0, 0, time.Local))
	rec.Level = 8

	out, changed := ReconcileWeek(rec, time.Date(2025, 3, 5, 0, 0, 0, 0, time.Local), WeekResetPolicy{Level: 2, XP: 10})
	if !changed || out.Level != 2 || out.XP != 10 {
		t.Fatalf("custom policy not applied: changed=%v level=%d xp=%d", changed, out.Level, out.XP)
	}
}
