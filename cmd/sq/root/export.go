package root

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sidequest/internal/export"
)

func newExportCmd() *cobra.Command {
	var outPath string
	var all bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export history as CSV (active profile, or --all)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer f.Close()
				w = f
			}

			if all {
				names, err := svc.Profiles(ctx)
				if err != nil {
					return err
				}
				return export.WriteAll(ctx, w, svc.Loader(), names)
			}

			name, rec, err := svc.CurrentRecord(ctx)
			if err != nil {
				return err
			}
			return export.WriteHistory(w, name, rec)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&all, "all", false, "Export every profile")
	return cmd
}
