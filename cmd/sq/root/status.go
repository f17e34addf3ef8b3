package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sidequest/internal/engine"
	"sidequest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, XP, streak and today's progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			name, rec, err := svc.CurrentRecord(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			today := engine.DateKey(time.Now())
			todayPoints := rec.PointsOn(today)
			nextAt := engine.Threshold(rec.Level)

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, name))
			fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d  %s %d/%d xp",
				rec.Level, ui.ProgressBar(rec.XP, nextAt, 20), rec.XP, nextAt)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d days", ui.IconFlame, rec.Streak)))

			goal := rec.Settings.DailyGoal
			goalLine := fmt.Sprintf("%d/%d pts", todayPoints, goal)
			if rec.LastGoalDate == today {
				goalLine += " " + ui.Good.Render("goal met")
			}
			fmt.Fprintln(out, ui.LabelValue("Today", goalLine))
			fmt.Fprintln(out, ui.LabelValue("Week", rec.WeekKey+" "+ui.Muted.Render("(level resets each ISO week)")))
			fmt.Fprintln(out, ui.LabelValue("Entries", len(rec.History)))
			return nil
		},
	}
}
