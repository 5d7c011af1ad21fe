package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"parliamo/internal/ui"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <name> <email>",
		Short: "Create (or replace) the local user profile",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("name and email are required")
			}
			if strings.TrimSpace(args[0]) == "" {
				return errors.New("name must not be empty")
			}
			if !strings.Contains(args[1], "@") {
				return errors.New("email looks invalid")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.store.InitUser(ctx, strings.TrimSpace(args[0]), strings.TrimSpace(args[1])); err != nil {
				return err
			}

			snap := a.store.Snapshot()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Benvenuto, "+snap.User.Name+"!"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Profile created at level A1. Run `parliamo lessons` to get started."))
			return nil
		},
	}

	return cmd
}
