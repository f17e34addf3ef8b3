package root

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"sidequest/internal/ui"
)

func newBoardCmd() *cobra.Command {
	var days int
	var useRemote bool

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the leaderboard over a trailing window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			if useRemote {
				client, err := openRemoteClient()
				if err != nil {
					return err
				}
				if client == nil {
					return fmt.Errorf("no remote endpoint configured (set remote.endpoint or SIDEQUEST_REMOTE_ENDPOINT)")
				}
				standings, err := client.FetchLeaderboard(ctx, days)
				if err != nil {
					// Remote failures are non-fatal: show an empty board.
					slog.Warn("remote leaderboard fetch failed", "error", err)
					fmt.Fprintln(out, ui.Muted.Render("Remote leaderboard unavailable."))
					return nil
				}
				fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Remote leaderboard (last %d days)", days)))
				for i, s := range standings {
					fmt.Fprintf(out, "%2d. %s %s\n", i+1, s.Name, ui.Gold.Render(fmt.Sprintf("%d pts", s.Points)))
				}
				return nil
			}

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			standings, err := svc.Leaderboard(ctx, days)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Leaderboard (last %d days)", days)))
			if len(standings) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No profiles yet."))
				return nil
			}
			for i, s := range standings {
				fmt.Fprintf(out, "%2d. %s %s\n", i+1, s.Name, ui.Gold.Render(fmt.Sprintf("%d pts", s.Points)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 7, "Window size in calendar days (including today)")
	cmd.Flags().BoolVar(&useRemote, "remote", false, "Fetch the shared remote leaderboard instead")
	return cmd
}
