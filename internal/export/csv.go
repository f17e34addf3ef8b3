// Package export renders profile history as CSV. Purely mechanical; the
// engine is not involved.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"sidequest/internal/engine"
)

var header = []string{"profile", "date", "title", "category", "points", "quest_id", "timestamp"}

// WriteHistory writes one profile's history rows in stored (chronological)
// order.
func WriteHistory(w io.Writer, name string, rec *engine.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := writeRows(cw, name, rec); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteAll writes the history of every named profile into one CSV.
func WriteAll(ctx context.Context, w io.Writer, loader engine.RecordLoader, names []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, name := range names {
		rec, err := loader.Load(ctx, name)
		if err != nil {
			return err
		}
		if err := writeRows(cw, name, rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeRows(cw *csv.Writer, name string, rec *engine.Record) error {
	for i := range rec.History {
		e := &rec.History[i]
		questID := ""
		if e.QuestID != nil {
			questID = *e.QuestID
		}
		row := []string{
			name,
			e.Date,
			e.Title,
			e.Category,
			strconv.Itoa(e.Points),
			questID,
			strconv.FormatInt(e.Timestamp, 10),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	return nil
}
