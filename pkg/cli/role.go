package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

func (a *app) roleCmd() *cli.Command {
	return &cli.Command{
		Name:  "role",
		Usage: "Show the current role of every host: Follower, Leader or Standalone",
		Description: `Sends the stat command to every host given with --zoo-hosts and reports
the mode it is running in. Hosts that answer without a recognizable mode are
reported as Unknown.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			results, err := a.newProber().Probe(ctx, a.cfg.Hosts())
			if err != nil {
				if results == nil {
					return err
				}
				return a.outputPartial(ctx, newRoleRecords(results), err)
			}
			return a.output(ctx, newRoleRecords(results))
		},
	}
}
