package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"parliamo/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List achievements and unlock dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap := a.store.Snapshot()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTrophy, "Achievements"))
			for _, ach := range snap.Achievements {
				if ach.Unlocked() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s — %s %s\n",
						ach.Icon,
						ui.Good.Render(ach.Name),
						ach.Description,
						ui.Muted.Render("unlocked "+ach.UnlockedAt.Format("2006-01-02")),
					)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s — %s\n",
					ui.IconLock,
					ui.Muted.Render(ach.Name),
					ui.Muted.Render(ach.Description),
				)
			}
			return nil
		},
	}

	return cmd
}
