package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

func (a *app) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List the children of a node",
		ArgsUsage: "<path>",
		Description: `Lists the direct children of path by name. With --recursive every
descendant is listed by absolute path, parents before their children and
siblings in lexical order.

Examples:
  zzk list /
  zzk list -r -s /app`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "recursive",
				Aliases: []string{"r"},
				Usage:   "list all descendants",
			},
			&cli.BoolFlag{
				Name:    "show-value",
				Aliases: []string{"s"},
				Usage:   "fetch and print the value of every listed node",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := a.requiredArg(cmd, 0, "path")
			if err != nil {
				return err
			}
			recursive := cmd.Bool("recursive")
			client := a.newClient()

			if !cmd.Bool("show-value") {
				keys, err := client.List(ctx, path, recursive)
				if err != nil {
					return err
				}
				return a.output(ctx, newKeyRecords(keys))
			}

			entries, err := client.ListValues(ctx, path, recursive)
			if err != nil {
				if entries == nil {
					return err
				}
				return a.outputPartial(ctx, newKeyValueRecords(entries), err)
			}
			return a.output(ctx, newKeyValueRecords(entries))
		},
	}
}
