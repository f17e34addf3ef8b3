package engine

import "time"

// CurrentSchemaVersion is the version tag written into every saved record.
// Older stored shapes are upgraded on load by the storage migration.
const CurrentSchemaVersion = 2

// DateLayout is the calendar-day key format. All day-level comparisons in
// the engine are string comparisons on keys in this layout, computed from
// local time.
const DateLayout = "2006-01-02"

// DateKey returns the calendar-day key for t in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}

// Settings are the per-profile preferences stored inside the record.
type Settings struct {
	DailyGoal         int   `json:"dailyGoal"`
	PomodoroMinutes   int   `json:"pomodoroMinutes"`
	ShortBreakMinutes int   `json:"shortBreakMinutes"`
	LongBreakMinutes  int   `json:"longBreakMinutes"`
	Theme             Theme `json:"theme"`
}

func DefaultSettings() Settings {
	return Settings{
		DailyGoal:         100,
		PomodoroMinutes:   25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		Theme:             ThemeSystem,
	}
}

const (
	MinQuestPoints = 0
	MaxQuestPoints = 1000
)

// ClampQuestPoints bounds a quest's point value to [MinQuestPoints, MaxQuestPoints].
func ClampQuestPoints(p int) int {
	if p < MinQuestPoints {
		return MinQuestPoints
	}
	if p > MaxQuestPoints {
		return MaxQuestPoints
	}
	return p
}

const (
	DefaultQuestIcon = "⭐"
	DefaultCategory  = "Work"
)

// DefaultCategories is the seed category set; quest categories are otherwise
// free-form.
var DefaultCategories = []string{"Work", "Health", "Learning", "Chores", "Focus"}

// Quest is a reusable action template. Deleting a quest never deletes
// history entries that reference it.
type Quest struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Points   int    `json:"points"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

// DefaultQuests seeds fresh records. IDs are stable slugs so a profile that
// is reset keeps referencing the same templates.
func DefaultQuests() []Quest {
	return []Quest{
		{ID: "deep-work", Title: "1h of deep work", Points: 50, Category: "Work", Icon: "🧠"},
		{ID: "inbox-zero", Title: "Clear the inbox", Points: 20, Category: "Work", Icon: "📬"},
		{ID: "workout", Title: "Work out", Points: 40, Category: "Health", Icon: "💪"},
		{ID: "reading", Title: "Read 30 pages", Points: 30, Category: "Learning", Icon: "📚"},
		{ID: "tidy-up", Title: "Tidy the desk", Points: 10, Category: "Chores", Icon: "🧹"},
	}
}

// Entry is one completed, timestamped activity. Entries are immutable once
// appended; the owning record's history is append-only and only destroyed
// by a full profile reset.
type Entry struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"` // YYYY-MM-DD, local time
	QuestID   *string `json:"questId"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Points    int     `json:"points"`
	Icon      string  `json:"icon"`
	Timestamp int64   `json:"timestamp"` // epoch milliseconds
}

// Record is the full persisted state of one profile.
//
// XP counts progress since the last level-up, not a lifetime total, and is
// always below Threshold(Level) after level-up resolution. LastGoalDate is
// empty when the daily goal has never been met.
type Record struct {
	Version      int      `json:"version"`
	Name         string   `json:"name"`
	Settings     Settings `json:"settings"`
	Quests       []Quest  `json:"quests"`
	History      []Entry  `json:"history"`
	XP           int      `json:"xp"`
	Level        int      `json:"level"`
	Streak       int      `json:"streak"`
	LastGoalDate string   `json:"lastGoalDate"`
	WeekKey      string   `json:"weekKey"`
}

// NewRecord returns a fresh level-1 record for the given profile name.
func NewRecord(name string, now time.Time) *Record {
	return &Record{
		Version:  CurrentSchemaVersion,
		Name:     name,
		Settings: DefaultSettings(),
		Quests:   DefaultQuests(),
		History:  []Entry{},
		Level:    1,
		WeekKey:  WeekKey(now),
	}
}

// Clone returns a deep copy. Engine operations return modified clones and
// never mutate their input record.
func (r *Record) Clone() *Record {
	out := *r
	out.Quests = append([]Quest(nil), r.Quests...)
	out.History = append([]Entry(nil), r.History...)
	return &out
}

// PointsOn sums the points of all history entries logged on the given day.
func (r *Record) PointsOn(date string) int {
	total := 0
	for i := range r.History {
		if r.History[i].Date == date {
			total += r.History[i].Points
		}
	}
	return total
}

// QuestByID returns the quest template with the given id, or nil.
func (r *Record) QuestByID(id string) *Quest {
	for i := range r.Quests {
		if r.Quests[i].ID == id {
			return &r.Quests[i]
		}
	}
	return nil
}
