package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func (a *app) configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the effective configuration as TOML",
		Description: `Prints the settings this invocation would use after applying the config
file, environment variables and flags. The output is a valid config file.

Examples:
  zzk -z zk1:2181,zk2:2181 config > ~/.zzk.toml
  zzk --config ~/.zzk.toml get /app`,
		Action: func(_ context.Context, _ *cli.Command) error {
			if a.quiet {
				return nil
			}
			if err := a.cfg.WriteTOML(a.stdout); err != nil {
				return fmt.Errorf("failed to print config: %w", err)
			}
			return nil
		},
	}
}
