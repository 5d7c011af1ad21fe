package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"parliamo/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "parliamo",
	Short:         "Parliamo — learn Italian from your terminal",
	Long:          "Parliamo is a local-first language-learning CLI: lessons, XP, streaks and achievements, all stored on your machine.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newInitCmd(),
		newLearnCmd(),
		newLessonsCmd(),
		newStatusCmd(),
		newAchievementsCmd(),
		newLevelCmd(),
		newResetCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
