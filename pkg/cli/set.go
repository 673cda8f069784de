package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"
)

func (a *app) setCmd() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Set the value of a node, creating it and its parents if needed",
		ArgsUsage: "[--] <path> <value>",
		Description: `Writes value to the node at path. Missing parent nodes are created empty.
The write only succeeds if nobody else changed the node since it was read;
otherwise the command fails and nothing is retried.

Arguments are taken verbatim, so the value may be empty, padded with spaces
or start with a dash. Global flags go before the command name.

Examples:
  zzk set /app/config '{"replicas": 3}'
  zzk set /app/flag ''
  zzk -f json set -- /app/offset -1`,
		SkipFlagParsing: true,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if wantsHelp(cmd) {
				if a.quiet {
					return nil
				}
				return cli.ShowSubcommandHelp(cmd)
			}
			path, err := a.requiredArg(cmd, 0, "path")
			if err != nil {
				return err
			}
			value, err := a.requiredArg(cmd, 1, "value")
			if err != nil {
				return err
			}

			rec, err := a.newClient().Set(ctx, path, []byte(value))
			if err != nil {
				return err
			}
			slog.Info("node updated", "path", path, "version", rec.Stat.Version)
			return a.output(ctx, []nodeRecord{newNodeRecord(rec)})
		},
	}
}
