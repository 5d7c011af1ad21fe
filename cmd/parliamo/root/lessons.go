package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"parliamo/internal/catalog"
	"parliamo/internal/ui"
)

func newLessonsCmd() *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "lessons",
		Short: "List available lessons",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap := a.store.Snapshot()
			completed := map[string]bool{}
			if snap.User != nil {
				for _, id := range snap.User.CompletedLessons {
					completed[id] = true
				}
			}

			cat := catalog.Builtin()
			lessons := cat.List()
			if level != "" {
				lessons = cat.ByLevel(level)
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBook, "Lessons"))
			for _, l := range lessons {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s — %s %s\n",
					ui.Checkmark(completed[l.ID]),
					ui.Muted.Render(l.Level),
					ui.Key.Render(l.ID),
					l.Title,
					ui.Muted.Render(fmt.Sprintf("(%d exercises, %d XP)", len(l.Exercises), l.XPReward)),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&level, "level", "", "filter by CEFR level (A1..C2)")
	return cmd
}
