package root

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"parliamo/internal/catalog"
	"parliamo/internal/session"
	"parliamo/internal/tui"
)

func newLearnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learn <lesson-id>",
		Short: "Run a lesson interactively",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("lesson id is required")
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

			runner := session.NewRunner(
				catalog.Builtin(),
				a.store,
				session.WithExplanationPause(a.cfg.Session.ExplanationPause),
				session.WithLogger(a.log),
			)
			sess, err := runner.Start(ctx, args[0])
			if err != nil {
				return err
			}

			return tui.RunLesson(sess, cmd.OutOrStdout())
		},
	}

	return cmd
}
