package engine

import (
	"context"
	"sort"
	"time"
)

// Standing is one row of the local leaderboard.
type Standing struct {
	Name   string
	Points int
}

// RecordLoader is the read-only slice of the profile store the aggregator
// needs.
type RecordLoader interface {
	Load(ctx context.Context, name string) (*Record, error)
}

// Rank sums each profile's history points over the trailing window and
// returns standings sorted descending by total. The window is
// [today-windowDays, today] inclusive, compared on calendar-date strings
// rather than elapsed time. Ties keep the input order, so pre-sorted names
// stay alphabetical. An empty name list yields an empty, non-error result.
func Rank(ctx context.Context, loader RecordLoader, names []string, windowDays int, now time.Time) ([]Standing, error) {
	today := DateKey(now)
	cutoff := DateKey(now.AddDate(0, 0, -windowDays))

	standings := make([]Standing, 0, len(names))
	for _, name := range names {
		rec, err := loader.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		total := 0
		for i := range rec.History {
			d := rec.History[i].Date
			if d >= cutoff && d <= today {
				total += rec.History[i].Points
			}
		}
		standings = append(standings, Standing{Name: name, Points: total})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Points > standings[j].Points
	})
	return standings, nil
}
