package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/zzk-cli/zzk/pkg/config"
	"github.com/zzk-cli/zzk/pkg/defaults"
	zzkerrors "github.com/zzk-cli/zzk/pkg/errors"
	"github.com/zzk-cli/zzk/pkg/logging"
	"github.com/zzk-cli/zzk/pkg/serializer"
	"github.com/zzk-cli/zzk/pkg/zookeeper"
)

const (
	name           = "zzk"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/zzk-cli/zzk/pkg/cli.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// app carries what the commands of one invocation share.
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	fs      afero.Fs
	connect zookeeper.Connector // nil means zookeeper.Connect

	cfg        *config.Config
	quiet      bool
	outputPath string
	runID      string
}

func newApp() *app {
	return &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		fs:     afero.NewOsFs(),
	}
}

// Execute runs the command line in args and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	return newApp().run(ctx, args)
}

func (a *app) run(ctx context.Context, args []string) int {
	if err := a.rootCmd().Run(ctx, args); err != nil {
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Administer a ZooKeeper ensemble from the command line",
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		Suggest:               true,
		Writer:                a.stdout,
		ErrWriter:             a.stderr,
		Flags:                 globalFlags(),
		Before:                a.before,
		After:                 a.after,
		ExitErrHandler:        a.handleExitErr,
		Commands: []*cli.Command{
			a.getCmd(),
			a.listCmd(),
			a.setCmd(),
			a.existsCmd(),
			a.deleteCmd(),
			a.roleCmd(),
			a.configCmd(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   "table",
			Usage:   "output format (table, json, yaml)",
		},
		&cli.StringFlag{
			Name:    "zoo-hosts",
			Aliases: []string{"z"},
			Value:   defaults.ZooHosts,
			Usage:   "comma separated list of host:port",
			Sources: cli.EnvVars(defaults.EnvZooHosts),
		},
		&cli.Int64Flag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Value:   defaults.ConnectTimeoutMillis,
			Usage:   "connect timeout in milliseconds",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "print nothing, report only through the exit code",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output file path (default: stdout)",
		},
		&cli.StringFlag{
			Name:  "on-error",
			Value: "abort",
			Usage: "what to do when one of many values or hosts fails (abort, skip, collect)",
		},
		&cli.IntFlag{
			Name:  "concurrency",
			Value: defaults.BatchConcurrency,
			Usage: "number of values or hosts fetched in parallel",
		},
		&cli.FloatFlag{
			Name:  "rate",
			Value: defaults.HydrationRate,
			Usage: "maximum value fetches per second, 0 for unlimited",
		},
		&cli.StringFlag{
			Name:    "config",
			Usage:   "TOML configuration file",
			Sources: cli.EnvVars(defaults.EnvConfig),
		},
		&cli.StringFlag{
			Name:  "metrics-file",
			Usage: "write Prometheus metrics to this file when the command ends",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
		&cli.BoolFlag{
			Name:  "log-json",
			Usage: "write logs as JSON",
		},
	}
}

// before resolves the configuration and sets up logging for the command.
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	a.quiet = cmd.Bool("quiet")
	a.outputPath = cmd.String("output")

	cfg, err := config.Load(a.fs, cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	applyFlags(cmd, cfg)
	if a.outputPath != "" && !cmd.IsSet("format") {
		if f, ok := serializer.FormatFromPath(a.outputPath); ok {
			cfg.Format = string(f)
		}
	}

	outFormat, err := parseOutputFormat(cfg.Format)
	if err != nil {
		return ctx, err
	}
	cfg.Format = string(outFormat)

	policy, err := parsePolicy(cfg.OnError)
	if err != nil {
		return ctx, err
	}
	cfg.OnError = string(policy)

	if err := cfg.Validate(); err != nil {
		return ctx, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return ctx, zzkerrors.Wrap(zzkerrors.ErrCodeInvalidRequest, "invalid log level", err)
	}
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}

	a.runID = uuid.NewString()
	logging.SetDefaultCLILogger(a.stderr, level, cfg.LogJSON, "run_id", a.runID)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"command", cmd.Args().First(),
		"hosts", cfg.Hosts(),
		"timeout", cfg.Timeout(),
		"format", cfg.Format,
		"on_error", cfg.OnError,
	)

	a.cfg = cfg
	return ctx, nil
}

// applyFlags copies explicitly set flags over the loaded configuration.
func applyFlags(cmd *cli.Command, cfg *config.Config) {
	if cmd.IsSet("zoo-hosts") && strings.TrimSpace(cmd.String("zoo-hosts")) != "" {
		cfg.ZooHosts = cmd.String("zoo-hosts")
	}
	if cmd.IsSet("timeout") {
		cfg.TimeoutMillis = cmd.Int64("timeout")
	}
	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
	}
	if cmd.IsSet("on-error") {
		cfg.OnError = cmd.String("on-error")
	}
	if cmd.IsSet("concurrency") {
		cfg.Concurrency = cmd.Int("concurrency")
	}
	if cmd.IsSet("rate") {
		cfg.Rate = cmd.Float("rate")
	}
	if cmd.IsSet("log-json") {
		cfg.LogJSON = cmd.Bool("log-json")
	}
}

func (a *app) after(_ context.Context, cmd *cli.Command) error {
	path := cmd.String("metrics-file")
	if path == "" || a.cfg == nil {
		return nil
	}
	return writeMetrics(path)
}

// handleExitErr reports a failed command. Nothing is printed in quiet mode.
func (a *app) handleExitErr(_ context.Context, _ *cli.Command, err error) {
	var se *zzkerrors.StructuredError
	if errors.As(err, &se) {
		slog.Debug("command failed", se.Attrs()...)
	}
	if a.quiet {
		return
	}
	fmt.Fprintf(a.stdout, "Error, %v\n", err)
}
