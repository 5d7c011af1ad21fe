package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"parliamo/internal/progress"
	"parliamo/internal/ui"
)

func newLevelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "level <A1|A2|B1|B2|C1|C2>",
		Short: "Set the current CEFR level",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("level is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			level, err := progress.ParseLevel(args[0])
			if err != nil {
				return err
			}

			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.store.UpdateLevel(ctx, level); err != nil {
				return err
			}

			snap := a.store.Snapshot()
			if snap.User == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No profile yet, nothing updated."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconStar, "Level set to "+string(level)))
			return nil
		},
	}

	return cmd
}
