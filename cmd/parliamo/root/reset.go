package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"parliamo/internal/ui"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all progress (user, achievements, streak)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to erase progress without --yes")
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.store.ResetProgress(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("All progress erased."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm erasing all progress")
	return cmd
}
