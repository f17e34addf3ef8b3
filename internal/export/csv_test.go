package export

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"sidequest/internal/engine"
	"sidequest/internal/storage"
)

func TestWriteHistory(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local)
	rec := engine.NewRecord("ada", now)
	qid := "deep-work"
	rec.History = []engine.Entry{
		{ID: "e1", Date: "2025-03-01", QuestID: &qid, Title: "Deep work", Category: "Work", Points: 50, Icon: "🧠", Timestamp: 1740800000000},
		{ID: "e2", Date: "2025-03-02", Title: "Ad hoc", Category: "Chores", Points: 10, Icon: "⭐", Timestamp: 1740900000000},
	}

	var buf bytes.Buffer
	if err := WriteHistory(&buf, "ada", rec); err != nil {
		t.Fatalf("WriteHistory: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows:\n%s", len(lines), buf.String())
	}
	if lines[0] != "profile,date,title,category,points,quest_id,timestamp" {
		t.Fatalf("header=%q", lines[0])
	}
	if lines[1] != "ada,2025-03-01,Deep work,Work,50,deep-work,1740800000000" {
		t.Fatalf("row=%q", lines[1])
	}
	// Ad-hoc entries have an empty quest id column.
	if lines[2] != "ada,2025-03-02,Ad hoc,Chores,10,,1740900000000" {
		t.Fatalf("row=%q", lines[2])
	}
}

func TestWriteAll(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local)
	store := storage.NewProfileStore(storage.NewMemoryBackend())

	for _, name := range []string{"ada", "bob"} {
		rec := engine.NewRecord(name, now)
		rec.History = []engine.Entry{{ID: name, Date: "2025-03-01", Title: "x", Category: "Work", Points: 5, Timestamp: 1}}
		if err := store.Save(ctx, name, rec); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := WriteAll(ctx, &buf, store, []string{"ada", "bob"}); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[1], "ada,") || !strings.HasPrefix(lines[2], "bob,") {
		t.Fatalf("rows out of order:\n%s", buf.String())
	}
}
