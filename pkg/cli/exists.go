package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

func (a *app) existsCmd() *cli.Command {
	return &cli.Command{
		Name:      "exists",
		Usage:     "Check whether a node exists",
		ArgsUsage: "<path>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := a.requiredArg(cmd, 0, "path")
			if err != nil {
				return err
			}

			ok, err := a.newClient().Exists(ctx, path)
			if err != nil {
				return err
			}
			return a.output(ctx, []existsRecord{{Key: path, Exists: ok}})
		},
	}
}
