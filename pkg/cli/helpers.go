package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/zzk-cli/zzk/pkg/batch"
	"github.com/zzk-cli/zzk/pkg/config"
	zzkerrors "github.com/zzk-cli/zzk/pkg/errors"
	"github.com/zzk-cli/zzk/pkg/role"
	"github.com/zzk-cli/zzk/pkg/serializer"
	"github.com/zzk-cli/zzk/pkg/zookeeper"
)

// maxSuggestDistance is the largest edit distance still offered as a hint.
const maxSuggestDistance = 2

// parseOutputFormat validates the output format, suggesting the closest
// supported one on a typo.
func parseOutputFormat(value string) (serializer.Format, error) {
	outFormat := serializer.Format(strings.ToLower(value))
	if outFormat.IsUnknown() {
		return "", unknownValueError("output format", value, serializer.SupportedFormats())
	}
	return outFormat, nil
}

// parsePolicy validates the failure policy the same way.
func parsePolicy(value string) (batch.Policy, error) {
	p := batch.Policy(strings.ToLower(value))
	if p.IsUnknown() {
		return "", unknownValueError("error policy", value, batch.SupportedPolicies())
	}
	return p, nil
}

func unknownValueError(what, value string, supported []string) error {
	msg := fmt.Sprintf("unknown %s: %q, valid values are: %s", what, value, strings.Join(supported, ", "))
	if s := suggest(value, supported); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return zzkerrors.New(zzkerrors.ErrCodeInvalidRequest, msg)
}

// suggest returns the candidate closest to value, or "" when none is close.
func suggest(value string, candidates []string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(strings.ToLower(value), c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// requiredArg returns the positional argument at index n, printing the
// command help when it is missing unless output is quiet.
func (a *app) requiredArg(cmd *cli.Command, n int, name string) (string, error) {
	args := commandArgs(cmd)
	if n >= len(args) {
		if !a.quiet {
			_ = cli.ShowSubcommandHelp(cmd)
		}
		return "", zzkerrors.New(zzkerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("missing required argument <%s>", name))
	}
	return args[n], nil
}

// commandArgs returns the positional arguments of cmd. Commands that skip
// flag parsing get their arguments verbatim, so a leading "--" is dropped here.
func commandArgs(cmd *cli.Command) []string {
	args := cmd.Args().Slice()
	if cmd.SkipFlagParsing && len(args) > 0 && args[0] == "--" {
		return args[1:]
	}
	return args
}

// wantsHelp reports whether a command that skips flag parsing was asked for help.
func wantsHelp(cmd *cli.Command) bool {
	args := cmd.Args().Slice()
	return len(args) > 0 && (args[0] == "-h" || args[0] == "--help")
}

func batchOptions(cfg *config.Config) batch.Options {
	opts := batch.Options{
		Policy:      batch.Policy(cfg.OnError),
		Concurrency: cfg.Concurrency,
	}
	if cfg.Rate > 0 {
		burst := int(cfg.Rate)
		if burst < 1 {
			burst = 1
		}
		opts.Limiter = rate.NewLimiter(rate.Limit(cfg.Rate), burst)
	}
	return opts
}

func (a *app) newClient() *zookeeper.Client {
	opts := []zookeeper.Option{
		zookeeper.WithTimeout(a.cfg.Timeout()),
		zookeeper.WithBatchOptions(batchOptions(a.cfg)),
	}
	if a.connect != nil {
		opts = append(opts, zookeeper.WithConnector(a.connect))
	}
	return zookeeper.NewClient(a.cfg.Hosts(), opts...)
}

func (a *app) newProber() *role.Prober {
	return role.NewProber(
		role.WithTimeout(a.cfg.Timeout()),
		role.WithBatchOptions(batchOptions(a.cfg)),
	)
}

// output serializes data to the configured destination. Quiet mode prints
// nothing.
func (a *app) output(ctx context.Context, data any) error {
	if a.quiet {
		return nil
	}

	outFormat, err := parseOutputFormat(a.cfg.Format)
	if err != nil {
		return err
	}

	var ser serializer.Serializer
	if a.outputPath == "" || a.outputPath == serializer.StdoutURI {
		ser = serializer.NewWriter(outFormat, a.stdout)
	} else {
		ser, err = serializer.NewFileWriterOrStdout(outFormat, a.outputPath)
		if err != nil {
			return zzkerrors.Wrap(zzkerrors.ErrCodeInvalidRequest, "failed to open output", err)
		}
	}
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if cerr := closer.Close(); cerr != nil {
				slog.Warn("failed to close output", "error", cerr)
			}
		}
	}()

	if err := ser.Serialize(ctx, data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// outputPartial prints rows that came back together with an error, which
// only happens under the collect policy, and then returns the error.
func (a *app) outputPartial(ctx context.Context, data any, err error) error {
	if werr := a.output(ctx, data); werr != nil {
		return zzkerrors.Join(err, werr)
	}
	return err
}

// writeMetrics dumps the default registry in Prometheus text format.
func writeMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
