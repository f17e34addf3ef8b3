package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"sidequest/internal/engine"
)

const rosterKey = "roster"

func profileKey(name string) string {
	return "profile:" + name
}

// roster is the profile name list plus the active selection. It is stored
// separately from the individual profile records.
type roster struct {
	Names  []string `json:"names"`
	Active string   `json:"active"`
}

// ProfileStore maps profile names to persisted progression records over an
// injected key-value backend. Load migrates older stored shapes and treats
// corrupt data as absent.
type ProfileStore struct {
	backend Backend
	now     func() time.Time
}

func NewProfileStore(backend Backend) *ProfileStore {
	return &ProfileStore{backend: backend, now: time.Now}
}

func (s *ProfileStore) loadRoster(ctx context.Context) (*roster, error) {
	raw, err := s.backend.Get(ctx, rosterKey)
	if err == ErrNotFound {
		return &roster{Names: []string{}}, nil
	}
	if err != nil {
		return nil, err
	}
	var r roster
	if err := json.Unmarshal(raw, &r); err != nil {
		// Same policy as profile records: corrupt data is not fatal.
		slog.Warn("corrupt roster, starting empty", "error", err)
		return &roster{Names: []string{}}, nil
	}
	if r.Names == nil {
		r.Names = []string{}
	}
	return &r, nil
}

func (s *ProfileStore) saveRoster(ctx context.Context, r *roster) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	return s.backend.Put(ctx, rosterKey, raw)
}

// Names returns the known profile names, duplicate-free and sorted
// case-insensitively for display.
func (s *ProfileStore) Names(ctx context.Context) ([]string, error) {
	r, err := s.loadRoster(ctx)
	if err != nil {
		return nil, err
	}
	return r.Names, nil
}

// Active returns the active profile name, or "" when none is selected.
func (s *ProfileStore) Active(ctx context.Context) (string, error) {
	r, err := s.loadRoster(ctx)
	if err != nil {
		return "", err
	}
	return r.Active, nil
}

// SetActive switches the active profile to a known name.
func (s *ProfileStore) SetActive(ctx context.Context, name string) error {
	r, err := s.loadRoster(ctx)
	if err != nil {
		return err
	}
	if !contains(r.Names, name) {
		return fmt.Errorf("profile %q not found", name)
	}
	r.Active = name
	return s.saveRoster(ctx, r)
}

// Add registers a profile name and makes it active. Adding a name that
// already exists (case-sensitive exact match) only switches the active
// profile. For a new name the backing record is created idempotently: a
// retained record from an earlier Remove is kept as-is, so re-adding a name
// restores its prior history.
func (s *ProfileStore) Add(ctx context.Context, name string) error {
	r, err := s.loadRoster(ctx)
	if err != nil {
		return err
	}
	if !contains(r.Names, name) {
		if _, err := s.backend.Get(ctx, profileKey(name)); err == ErrNotFound {
			if err := s.Save(ctx, name, engine.NewRecord(name, s.now())); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		r.Names = append(r.Names, name)
		sortNames(r.Names)
	}
	r.Active = name
	return s.saveRoster(ctx, r)
}

// Remove drops a name from the roster only; the stored record is retained
// and recoverable by re-adding the same name.
func (s *ProfileStore) Remove(ctx context.Context, name string) error {
	r, err := s.loadRoster(ctx)
	if err != nil {
		return err
	}
	if !contains(r.Names, name) {
		return fmt.Errorf("profile %q not found", name)
	}
	kept := r.Names[:0]
	for _, n := range r.Names {
		if n != name {
			kept = append(kept, n)
		}
	}
	r.Names = kept
	if r.Active == name {
		r.Active = ""
	}
	return s.saveRoster(ctx, r)
}

// Load returns the record stored under name, migrated to the current
// schema. Absent or unparseable data yields a fresh record rather than an
// error.
func (s *ProfileStore) Load(ctx context.Context, name string) (*engine.Record, error) {
	raw, err := s.backend.Get(ctx, profileKey(name))
	if err == ErrNotFound {
		return engine.NewRecord(name, s.now()), nil
	}
	if err != nil {
		return nil, err
	}
	rec, err := migrateRecord(raw, name, s.now())
	if err != nil {
		slog.Warn("corrupt profile record, starting fresh", "profile", name, "error", err)
		return engine.NewRecord(name, s.now()), nil
	}
	return rec, nil
}

// Save persists a record under name with the current schema version.
func (s *ProfileStore) Save(ctx context.Context, name string, rec *engine.Record) error {
	rec.Version = engine.CurrentSchemaVersion
	rec.Name = name
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode profile %q: %w", name, err)
	}
	return s.backend.Put(ctx, profileKey(name), raw)
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func sortNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li == lj {
			return names[i] < names[j]
		}
		return li < lj
	})
}
