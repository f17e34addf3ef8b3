package engine

import (
	"fmt"
	"time"
)

// WeekResetPolicy holds the level/XP values applied when a new ISO week
// begins.
type WeekResetPolicy struct {
	Level int
	XP    int
}

func DefaultWeekResetPolicy() WeekResetPolicy {
	return WeekResetPolicy{Level: 1, XP: 0}
}

// WeekKey returns the Monday-based ISO calendar-week identifier for t,
// e.g. "2025-W09". time.ISOWeek anchors on the Thursday of the week, so
// year boundaries (week 1 covering late December, week 52/53 covering early
// January) come out right.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// ReconcileWeek applies the weekly reset if now falls in a different ISO
// week than the record's stored key. Level and XP drop to the policy values
// and the stored key is updated; history and streak are never touched.
//
// Callers run this on every profile load/activation, not at a fixed reset
// time, so a profile reopened mid-week-transition is still corrected.
func ReconcileWeek(rec *Record, now time.Time, policy WeekResetPolicy) (*Record, bool) {
	key := WeekKey(now)
	if rec.WeekKey == key {
		return rec, false
	}
	out := rec.Clone()
	out.Level = policy.Level
	out.XP = policy.XP
	out.WeekKey = key
	return out, true
}
