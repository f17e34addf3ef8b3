package root

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"sidequest/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "sq",
	Short:         "Sidequest: log quests, earn points, keep the streak",
	Long:          "Sidequest is a local-first CLI that turns productivity actions into quests:\nlog them to earn points, level up, keep a daily streak and race friends on\na leaderboard.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newProfileCmd(),
		newQuestCmd(),
		newLogCmd(),
		newStatusCmd(),
		newBoardCmd(),
		newTimerCmd(),
		newSettingsCmd(),
		newExportCmd(),
		newResetCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	handler := tint.NewHandler(os.Stderr, &tint.Options{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
