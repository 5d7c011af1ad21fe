package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"parliamo/internal/catalog"
	"parliamo/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show study progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap := a.store.Snapshot()
			if snap.User == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No profile yet. Run `parliamo init <name> <email>` first."))
				return nil
			}

			u := snap.User
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSpeak, "Study Status"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Name", u.Name))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", string(u.CurrentLevel)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Total XP", u.TotalXP))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", fmt.Sprintf("%d %s", u.Streak, ui.IconFlame)))
			if snap.LastStudyDate != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Last study", snap.LastStudyDate))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Lessons", fmt.Sprintf("%d/%d completed", snap.CompletedCount(), catalog.Builtin().Len())))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Achievements", fmt.Sprintf("%d/%d unlocked", snap.UnlockedCount(), len(snap.Achievements))))
			return nil
		},
	}

	return cmd
}
