package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

func (a *app) getCmd() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get the value and metadata of a node",
		ArgsUsage: "<path>",
		Description: `Reads one node and prints its value together with its stat fields.

Examples:
  zzk get /app/config
  zzk -f json get --watch /app/config`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "leave a watch on the node",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := a.requiredArg(cmd, 0, "path")
			if err != nil {
				return err
			}

			rec, err := a.newClient().Get(ctx, path, cmd.Bool("watch"))
			if err != nil {
				return err
			}
			return a.output(ctx, []nodeRecord{newNodeRecord(rec)})
		},
	}
}
