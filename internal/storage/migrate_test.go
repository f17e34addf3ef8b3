package storage

import (
	"testing"
	"time"

	"sidequest/internal/engine"
)

var migrateNow = time.Date(2025, 3, 5, 12, 0, 0, 0, time.Local) // 2025-W10

func TestMigrateBackfillsWeekKey(t *testing.T) {
	// A version-1 record has no weekKey. It gets the current week instead
	// of being forced through a downgrade reset.
	raw := []byte(`{"version":1,"name":"ada","level":4,"xp":30,"streak":6,"history":[]}`)

	rec, err := migrateRecord(raw, "ada", migrateNow)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if rec.WeekKey != engine.WeekKey(migrateNow) {
		t.Fatalf("weekKey=%q, want current %q", rec.WeekKey, engine.WeekKey(migrateNow))
	}
	if rec.Level != 4 || rec.XP != 30 || rec.Streak != 6 {
		t.Fatalf("stored progression lost: %+v", rec)
	}
	if rec.Version != engine.CurrentSchemaVersion {
		t.Fatalf("version=%d, want %d", rec.Version, engine.CurrentSchemaVersion)
	}
}

func TestMigrateKeepsStoredWeekKey(t *testing.T) {
	raw := []byte(`{"version":2,"name":"ada","weekKey":"2025-W01"}`)
	rec, err := migrateRecord(raw, "ada", migrateNow)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if rec.WeekKey != "2025-W01" {
		t.Fatalf("weekKey=%q, want stored 2025-W01", rec.WeekKey)
	}
}

func TestMigrateMergesSettingsFieldByField(t *testing.T) {
	// Only dailyGoal stored; newer settings fields pick up defaults.
	raw := []byte(`{"version":1,"settings":{"dailyGoal":250}}`)

	rec, err := migrateRecord(raw, "ada", migrateNow)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	defaults := engine.DefaultSettings()
	if rec.Settings.DailyGoal != 250 {
		t.Fatalf("dailyGoal=%d, want 250", rec.Settings.DailyGoal)
	}
	if rec.Settings.PomodoroMinutes != defaults.PomodoroMinutes ||
		rec.Settings.Theme != defaults.Theme {
		t.Fatalf("missing settings not defaulted: %+v", rec.Settings)
	}
}

func TestMigrateQuestDefaults(t *testing.T) {
	// Empty quest list is replaced by defaults.
	raw := []byte(`{"version":1,"quests":[]}`)
	rec, err := migrateRecord(raw, "ada", migrateNow)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if len(rec.Quests) != len(engine.DefaultQuests()) {
		t.Fatalf("empty quests not replaced by defaults: %d", len(rec.Quests))
	}

	// Stored quests are kept, icon-backfilled and clamped.
	raw = []byte(`{"version":1,"quests":[{"id":"q1","title":"Custom","points":9999}]}`)
	rec, err = migrateRecord(raw, "ada", migrateNow)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if len(rec.Quests) != 1 {
		t.Fatalf("stored quests replaced: %d", len(rec.Quests))
	}
	q := rec.Quests[0]
	if q.Icon != engine.DefaultQuestIcon {
		t.Fatalf("icon=%q, want backfilled default", q.Icon)
	}
	if q.Points != engine.MaxQuestPoints {
		t.Fatalf("points=%d, want clamped %d", q.Points, engine.MaxQuestPoints)
	}
	if q.Category != engine.DefaultCategory {
		t.Fatalf("category=%q, want default", q.Category)
	}
}

func TestMigrateDefaultsForMissingFields(t *testing.T) {
	rec, err := migrateRecord([]byte(`{}`), "ada", migrateNow)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if rec.Level != 1 || rec.XP != 0 || rec.Streak != 0 {
		t.Fatalf("defaults wrong: %+v", rec)
	}
	if rec.Name != "ada" {
		t.Fatalf("name=%q, want key name", rec.Name)
	}
	if rec.LastGoalDate != "" {
		t.Fatalf("lastGoalDate=%q, want empty", rec.LastGoalDate)
	}
}

func TestMigrateTolerantOfNulls(t *testing.T) {
	raw := []byte(`{"version":1,"lastGoalDate":null,"history":[{"id":"e1","date":"2025-03-01","questId":null,"title":"x","category":"Work","points":5,"icon":"⭐","timestamp":1740800000000}]}`)
	rec, err := migrateRecord(raw, "ada", migrateNow)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if len(rec.History) != 1 || rec.History[0].QuestID != nil {
		t.Fatalf("history=%+v", rec.History)
	}
}

func TestMigrateRejectsGarbage(t *testing.T) {
	if _, err := migrateRecord([]byte("not json"), "ada", migrateNow); err == nil {
		t.Fatalf("expected error for unparseable data")
	}
}
