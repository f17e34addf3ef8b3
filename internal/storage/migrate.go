package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"sidequest/internal/engine"
)

// storedSettings mirrors persisted settings with optional fields, so a
// missing field can be told apart from an explicit zero and merged with the
// current defaults field by field. New settings fields therefore never
// clobber old records, and old records pick up new defaults.
type storedSettings struct {
	DailyGoal         *int    `json:"dailyGoal"`
	PomodoroMinutes   *int    `json:"pomodoroMinutes"`
	ShortBreakMinutes *int    `json:"shortBreakMinutes"`
	LongBreakMinutes  *int    `json:"longBreakMinutes"`
	Theme             *string `json:"theme"`
}

// storedRecord is the loosely-typed shape of any historical record version.
type storedRecord struct {
	Version      int             `json:"version"`
	Name         string          `json:"name"`
	Settings     *storedSettings `json:"settings"`
	Quests       []engine.Quest  `json:"quests"`
	History      []engine.Entry  `json:"history"`
	XP           *int            `json:"xp"`
	Level        *int            `json:"level"`
	Streak       *int            `json:"streak"`
	LastGoalDate string          `json:"lastGoalDate"`
	WeekKey      string          `json:"weekKey"`
}

// migrateRecord upgrades a raw stored record to the current schema. It is a
// pure function of its inputs so each defaulting rule is testable on its
// own. Unparseable data is an error; the caller treats that as "no prior
// data". Version 1 records predate weekKey: the key is backfilled with the
// current week, deliberately avoiding a forced reset on first migration.
func migrateRecord(raw []byte, name string, now time.Time) (*engine.Record, error) {
	var sr storedRecord
	if err := json.Unmarshal(raw, &sr); err != nil {
		return nil, fmt.Errorf("decode profile record: %w", err)
	}

	rec := engine.NewRecord(name, now)

	if sr.Settings != nil {
		st := sr.Settings
		if st.DailyGoal != nil && *st.DailyGoal >= 0 {
			rec.Settings.DailyGoal = *st.DailyGoal
		}
		if st.PomodoroMinutes != nil && *st.PomodoroMinutes > 0 {
			rec.Settings.PomodoroMinutes = *st.PomodoroMinutes
		}
		if st.ShortBreakMinutes != nil && *st.ShortBreakMinutes > 0 {
			rec.Settings.ShortBreakMinutes = *st.ShortBreakMinutes
		}
		if st.LongBreakMinutes != nil && *st.LongBreakMinutes > 0 {
			rec.Settings.LongBreakMinutes = *st.LongBreakMinutes
		}
		if st.Theme != nil && engine.Theme(*st.Theme).IsValid() {
			rec.Settings.Theme = engine.Theme(*st.Theme)
		}
	}

	// Quest list is replaced by defaults only when empty or absent; stored
	// quests are kept, re-clamped and backfilled with a default icon.
	if len(sr.Quests) > 0 {
		quests := make([]engine.Quest, 0, len(sr.Quests))
		for _, q := range sr.Quests {
			q.Points = engine.ClampQuestPoints(q.Points)
			if q.Icon == "" {
				q.Icon = engine.DefaultQuestIcon
			}
			if q.Category == "" {
				q.Category = engine.DefaultCategory
			}
			quests = append(quests, q)
		}
		rec.Quests = quests
	}

	if sr.History != nil {
		rec.History = sr.History
	}
	if sr.XP != nil && *sr.XP > 0 {
		rec.XP = *sr.XP
	}
	if sr.Level != nil && *sr.Level >= 1 {
		rec.Level = *sr.Level
	}
	if sr.Streak != nil && *sr.Streak > 0 {
		rec.Streak = *sr.Streak
	}
	rec.LastGoalDate = sr.LastGoalDate
	if sr.WeekKey != "" {
		rec.WeekKey = sr.WeekKey
	}

	rec.Version = engine.CurrentSchemaVersion
	return rec, nil
}
