package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sidequest/internal/engine"
	"sidequest/internal/ui"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the active profile's settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			_, rec, err := svc.CurrentRecord(ctx)
			if err != nil {
				return err
			}
			st := rec.Settings
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.LabelValue("goal", st.DailyGoal))
			fmt.Fprintln(out, ui.LabelValue("pomodoro", fmt.Sprintf("%d min", st.PomodoroMinutes)))
			fmt.Fprintln(out, ui.LabelValue("short-break", fmt.Sprintf("%d min", st.ShortBreakMinutes)))
			fmt.Fprintln(out, ui.LabelValue("long-break", fmt.Sprintf("%d min", st.LongBreakMinutes)))
			fmt.Fprintln(out, ui.LabelValue("theme", st.Theme))
			return nil
		},
	}
	cmd.AddCommand(newSettingsSetCmd())
	return cmd
}

func newSettingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting (goal, pomodoro, short-break, long-break, theme)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("key and value are required")
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

			key, value := args[0], args[1]
			in := engine.UpdateSettingsInput{}
			switch key {
			case "theme":
				theme := engine.Theme(value)
				in.Theme = &theme
			case "goal", "pomodoro", "short-break", "long-break":
				n, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("%s must be an integer", key)
				}
				switch key {
				case "goal":
					in.DailyGoal = &n
				case "pomodoro":
					in.PomodoroMinutes = &n
				case "short-break":
					in.ShortBreakMinutes = &n
				case "long-break":
					in.LongBreakMinutes = &n
				}
			default:
				return fmt.Errorf("unknown setting %q", key)
			}

			if _, err := svc.UpdateSettings(ctx, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", ui.Good.Render(ui.IconDone+" Set"), key, value)
			return nil
		},
	}
}
