package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store is the profile persistence contract the service depends on. The
// production implementation is internal/storage.ProfileStore over SQLite;
// tests use the same store over an in-memory backend.
type Store interface {
	Names(ctx context.Context) ([]string, error)
	Active(ctx context.Context) (string, error)
	SetActive(ctx context.Context, name string) error
	Add(ctx context.Context, name string) error
	Remove(ctx context.Context, name string) error
	Load(ctx context.Context, name string) (*Record, error)
	Save(ctx context.Context, name string, rec *Record) error
}

// Notifier receives committed-action events after local state is saved.
// Implementations must never block the caller or feed failures back into
// the record; the remote dispatcher logs and drops.
type Notifier interface {
	ActionCommitted(profile string, e Entry)
}

type Service struct {
	store    Store
	notifier Notifier
	reset    WeekResetPolicy
	now      func() time.Time
}

// NewService wires the progression engine to a profile store. notifier may
// be nil when remote sync is not configured.
func NewService(store Store, notifier Notifier) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		reset:    DefaultWeekResetPolicy(),
		now:      time.Now,
	}
}

func (s *Service) Profiles(ctx context.Context) ([]string, error) {
	return s.store.Names(ctx)
}

func (s *Service) ActiveProfile(ctx context.Context) (string, error) {
	return s.store.Active(ctx)
}

func (s *Service) AddProfile(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return InvalidActionError{Field: "profile", Reason: "profile name is required"}
	}
	return s.store.Add(ctx, name)
}

func (s *Service) RemoveProfile(ctx context.Context, name string) error {
	return s.store.Remove(ctx, name)
}

func (s *Service) UseProfile(ctx context.Context, name string) error {
	return s.store.SetActive(ctx, name)
}

// CurrentRecord loads the active profile's record, running the weekly reset
// reconciliation (and persisting its outcome) on the way. This is the only
// load path service operations use, so every activation gets reconciled.
func (s *Service) CurrentRecord(ctx context.Context) (string, *Record, error) {
	name, err := s.store.Active(ctx)
	if err != nil {
		return "", nil, err
	}
	if name == "" {
		return "", nil, ErrNoActiveProfile
	}
	rec, err := s.store.Load(ctx, name)
	if err != nil {
		return "", nil, err
	}
	rec, changed := ReconcileWeek(rec, s.now(), s.reset)
	if changed {
		if err := s.store.Save(ctx, name, rec); err != nil {
			return "", nil, err
		}
	}
	return name, rec, nil
}

// LogResult reports what one logged action changed.
type LogResult struct {
	Entry       Entry
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	XP          int
	NextAt      int // threshold of the level reached
	Streak      int
	GoalMet     bool // daily goal satisfied as of today
	TodayPoints int
}

// LogAction applies an action to the active profile, persists the result,
// and emits a committed event for best-effort remote sync. The local save
// has already happened by the time the notifier runs; sync failures never
// roll it back.
func (s *Service) LogAction(ctx context.Context, a Action) (*LogResult, error) {
	name, rec, err := s.CurrentRecord(ctx)
	if err != nil {
		return nil, err
	}

	levelBefore := rec.Level
	updated, entry, err := ApplyAction(rec, a, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, name, updated); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.ActionCommitted(name, entry)
	}

	return &LogResult{
		Entry:       entry,
		LevelBefore: levelBefore,
		LevelAfter:  updated.Level,
		LevelUp:     updated.Level > levelBefore,
		XP:          updated.XP,
		NextAt:      Threshold(updated.Level),
		Streak:      updated.Streak,
		GoalMet:     updated.LastGoalDate == entry.Date,
		TodayPoints: updated.PointsOn(entry.Date),
	}, nil
}

// LogQuest logs a completion of a stored quest template by id.
func (s *Service) LogQuest(ctx context.Context, questID string) (*LogResult, error) {
	_, rec, err := s.CurrentRecord(ctx)
	if err != nil {
		return nil, err
	}
	q := rec.QuestByID(questID)
	if q == nil {
		return nil, fmt.Errorf("quest %q not found", questID)
	}
	id := q.ID
	return s.LogAction(ctx, Action{
		QuestID:  &id,
		Title:    q.Title,
		Category: q.Category,
		Points:   q.Points,
		Icon:     q.Icon,
	})
}

// FocusCategory and FocusIcon mark entries produced by completed pomodoro
// work phases.
const (
	FocusCategory = "Focus"
	FocusIcon     = "🍅"
)

// CompleteFocusSession logs one finished work countdown. Points equal the
// minutes of the completed phase.
func (s *Service) CompleteFocusSession(ctx context.Context, minutes int) (*LogResult, error) {
	return s.LogAction(ctx, Action{
		Title:    "Focus session",
		Category: FocusCategory,
		Points:   minutes,
		Icon:     FocusIcon,
	})
}

func (s *Service) Quests(ctx context.Context) ([]Quest, error) {
	_, rec, err := s.CurrentRecord(ctx)
	if err != nil {
		return nil, err
	}
	return rec.Quests, nil
}

// AddQuest stores a new quest template on the active profile. Points are
// clamped to the allowed range; category and icon fall back to defaults.
func (s *Service) AddQuest(ctx context.Context, title, category string, points int, icon string) (*Quest, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, InvalidActionError{Field: "title", Reason: "quest title is required"}
	}
	name, rec, err := s.CurrentRecord(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}
	if icon == "" {
		icon = DefaultQuestIcon
	}
	q := Quest{
		ID:       uuid.NewString(),
		Title:    title,
		Points:   ClampQuestPoints(points),
		Category: category,
		Icon:     icon,
	}

	updated := rec.Clone()
	updated.Quests = append(updated.Quests, q)
	if err := s.store.Save(ctx, name, updated); err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateQuestInput carries optional quest edits; nil fields are untouched.
type UpdateQuestInput struct {
	Title    *string
	Points   *int
	Category *string
	Icon     *string
}

func (s *Service) UpdateQuest(ctx context.Context, questID string, in UpdateQuestInput) (*Quest, error) {
	name, rec, err := s.CurrentRecord(ctx)
	if err != nil {
		return nil, err
	}
	updated := rec.Clone()
	q := updated.QuestByID(questID)
	if q == nil {
		return nil, fmt.Errorf("quest %q not found", questID)
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		q.Title = strings.TrimSpace(*in.Title)
	}
	if in.Points != nil {
		q.Points = ClampQuestPoints(*in.Points)
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) != "" {
		q.Category = strings.TrimSpace(*in.Category)
	}
	if in.Icon != nil && *in.Icon != "" {
		q.Icon = *in.Icon
	}
	if err := s.store.Save(ctx, name, updated); err != nil {
		return nil, err
	}
	return q, nil
}

// DeleteQuest removes a template. History entries referencing it are kept;
// quests and entries have independent lifecycles.
func (s *Service) DeleteQuest(ctx context.Context, questID string) error {
	name, rec, err := s.CurrentRecord(ctx)
	if err != nil {
		return err
	}
	updated := rec.Clone()
	kept := updated.Quests[:0]
	found := false
	for _, q := range updated.Quests {
		if q.ID == questID {
			found = true
			continue
		}
		kept = append(kept, q)
	}
	if !found {
		return fmt.Errorf("quest %q not found", questID)
	}
	updated.Quests = kept
	return s.store.Save(ctx, name, updated)
}

// UpdateSettingsInput carries optional settings edits; nil fields are
// untouched.
type UpdateSettingsInput struct {
	DailyGoal         *int
	PomodoroMinutes   *int
	ShortBreakMinutes *int
	LongBreakMinutes  *int
	Theme             *Theme
}

func (s *Service) UpdateSettings(ctx context.Context, in UpdateSettingsInput) (*Settings, error) {
	name, rec, err := s.CurrentRecord(ctx)
	if err != nil {
		return nil, err
	}
	updated := rec.Clone()
	if in.DailyGoal != nil {
		if *in.DailyGoal < 0 {
			return nil, InvalidActionError{Field: "dailyGoal", Reason: "daily goal must be non-negative"}
		}
		updated.Settings.DailyGoal = *in.DailyGoal
	}
	if in.PomodoroMinutes != nil && *in.PomodoroMinutes > 0 {
		updated.Settings.PomodoroMinutes = *in.PomodoroMinutes
	}
	if in.ShortBreakMinutes != nil && *in.ShortBreakMinutes > 0 {
		updated.Settings.ShortBreakMinutes = *in.ShortBreakMinutes
	}
	if in.LongBreakMinutes != nil && *in.LongBreakMinutes > 0 {
		updated.Settings.LongBreakMinutes = *in.LongBreakMinutes
	}
	if in.Theme != nil {
		if !in.Theme.IsValid() {
			return nil, InvalidActionError{Field: "theme", Reason: "theme must be light, dark or system"}
		}
		updated.Settings.Theme = *in.Theme
	}
	if err := s.store.Save(ctx, name, updated); err != nil {
		return nil, err
	}
	return &updated.Settings, nil
}

// ResetProfile replaces the active profile's record with a fresh one. This
// is the only operation that destroys history.
func (s *Service) ResetProfile(ctx context.Context) error {
	name, err := s.store.Active(ctx)
	if err != nil {
		return err
	}
	if name == "" {
		return ErrNoActiveProfile
	}
	return s.store.Save(ctx, name, NewRecord(name, s.now()))
}

// Loader exposes read-only record access for derived views (leaderboard,
// export).
func (s *Service) Loader() RecordLoader {
	return s.store
}

// Leaderboard ranks all known profiles over the trailing window.
func (s *Service) Leaderboard(ctx context.Context, windowDays int) ([]Standing, error) {
	names, err := s.store.Names(ctx)
	if err != nil {
		return nil, err
	}
	return Rank(ctx, s.store, names, windowDays, s.now())
}
