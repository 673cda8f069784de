package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"
)

func (a *app) deleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a node and everything below it",
		ArgsUsage: "<path>",
		Description: `Removes the node at path together with all of its descendants, children
before parents, and prints how many nodes were removed.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := a.requiredArg(cmd, 0, "path")
			if err != nil {
				return err
			}

			n, err := a.newClient().Delete(ctx, path)
			if err != nil {
				return err
			}
			slog.Info("subtree deleted", "path", path, "nodes", n)
			return a.output(ctx, []deleteRecord{{Key: path, Deleted: n}})
		},
	}
}
