package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sidequest/internal/engine"
	"sidequest/internal/ui"
)

func newLogCmd() *cobra.Command {
	var title string
	var points int
	var category string
	var icon string

	cmd := &cobra.Command{
		Use:   "log [quest-id]",
		Short: "Log a completed quest, or an ad-hoc action with --title",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one quest id")
			}
			if len(args) == 0 && title == "" {
				return errors.New("give a quest id or --title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var res *engine.LogResult
			if len(args) == 1 {
				res, err = svc.LogQuest(ctx, args[0])
			} else {
				res, err = svc.LogAction(ctx, engine.Action{
					Title:    title,
					Category: category,
					Points:   points,
					Icon:     icon,
				})
			}
			if err != nil {
				return err
			}

			printLogResult(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Ad-hoc action title")
	cmd.Flags().IntVarP(&points, "points", "p", 0, "Ad-hoc point value")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Ad-hoc category")
	cmd.Flags().StringVar(&icon, "icon", "", "Ad-hoc icon emoji")
	return cmd
}

func printLogResult(cmd *cobra.Command, res *engine.LogResult) {
	out := cmd.OutOrStdout()
	line := fmt.Sprintf("%s %s %s %s",
		ui.Good.Render(ui.IconDone+" Logged"),
		res.Entry.Icon, res.Entry.Title,
		ui.Gold.Render(fmt.Sprintf("+%d pts", res.Entry.Points)))
	if res.LevelUp {
		line += " " + ui.BadgeLevelUp
	}
	fmt.Fprintln(out, line)
	fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d (%d/%d xp)", res.LevelAfter, res.XP, res.NextAt)))
	if res.GoalMet {
		fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d (daily goal met)", ui.IconFlame, res.Streak)))
	}
}
