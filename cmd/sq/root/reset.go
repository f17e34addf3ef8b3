package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sidequest/internal/ui"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the active profile with a fresh record",
		Long: `Reset the active profile to a fresh record: level 1, zero XP, empty
history, default quests and settings. This is the only operation that
destroys history, so it requires --yes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to reset without --yes")
			}
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			name, err := svc.ActiveProfile(ctx)
			if err != nil {
				return err
			}
			if err := svc.ResetProfile(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Reset ")+name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}
