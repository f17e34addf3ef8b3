package root

import (
	"context"

	"github.com/spf13/cobra"

	"sidequest/internal/tui"
)

func newTimerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timer",
		Short: "Run the pomodoro timer (logs a focus session per work phase)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunTimer(ctx, svc, cmd.OutOrStdout())
		},
	}
}
