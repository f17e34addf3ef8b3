package engine

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Action describes one completed activity about to be logged: either a quest
// completion (QuestID set) or an ad-hoc/timer entry.
type Action struct {
	QuestID  *string
	Title    string
	Category string
	Points   int
	Icon     string
}

func (a Action) validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return InvalidActionError{Field: "title", Reason: "title is required"}
	}
	if a.Points < 0 {
		return InvalidActionError{Field: "points", Reason: "points must be non-negative"}
	}
	return nil
}

// Threshold returns the XP required to advance from the given level to the
// next: 100 + (level-1)*75. Monotonically increasing, so level-up resolution
// always terminates.
func Threshold(level int) int {
	if level < 1 {
		level = 1
	}
	return 100 + (level-1)*75
}

// ApplyAction logs an action against a record and returns the updated record
// together with the appended entry. It is pure: the input record is not
// mutated, and persistence and remote sync are caller responsibilities.
//
// Steps: append an entry stamped with now, add the points to XP, consume
// level thresholds while XP allows (one large action can cross several
// levels), then resolve the streak against the daily goal.
func ApplyAction(rec *Record, a Action, now time.Time) (*Record, Entry, error) {
	if err := a.validate(); err != nil {
		return nil, Entry{}, err
	}

	category := strings.TrimSpace(a.Category)
	if category == "" {
		category = DefaultCategory
	}
	icon := a.Icon
	if icon == "" {
		icon = DefaultQuestIcon
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Date:      DateKey(now),
		QuestID:   a.QuestID,
		Title:     strings.TrimSpace(a.Title),
		Category:  category,
		Points:    a.Points,
		Icon:      icon,
		Timestamp: now.UnixMilli(),
	}

	out := rec.Clone()
	out.History = append(out.History, entry)
	out.XP += entry.Points
	for out.XP >= Threshold(out.Level) {
		out.XP -= Threshold(out.Level)
		out.Level++
	}

	resolveStreak(out, now)
	return out, entry, nil
}

// resolveStreak updates streak state after an entry for today was appended.
// Once the goal has been marked met for today, further points change nothing.
func resolveStreak(rec *Record, now time.Time) {
	today := DateKey(now)
	if rec.LastGoalDate == today {
		return
	}
	if rec.PointsOn(today) < rec.Settings.DailyGoal {
		return
	}
	yesterday := DateKey(now.AddDate(0, 0, -1))
	if rec.LastGoalDate == yesterday {
		rec.Streak++
	} else {
		rec.Streak = 1
	}
	rec.LastGoalDate = today
}
