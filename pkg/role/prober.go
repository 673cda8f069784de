package role

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/zzk-cli/zzk/pkg/batch"
	"github.com/zzk-cli/zzk/pkg/defaults"
	zzkerrors "github.com/zzk-cli/zzk/pkg/errors"
)

// StatCommand is the four-letter word sent to every server.
const StatCommand = "stat"

// maxResponseBytes caps a stat response; a server sending more is reported
// as a failed probe rather than classified on a truncated reply.
const maxResponseBytes = 1 << 20

// Result is the outcome of probing one address.
type Result struct {
	Address string
	Role    Role
	Err     error
}

// Prober asks servers for their role.
type Prober struct {
	timeout time.Duration
	batch   batch.Options
	dial    func(ctx context.Context, network, address string) (net.Conn, error)
}

// Option configures a Prober.
type Option func(*Prober)

// WithTimeout bounds each probe, dial and read included.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithBatchOptions sets the failure policy and concurrency of Probe.
func WithBatchOptions(opts batch.Options) Option {
	return func(p *Prober) {
		p.batch = opts
	}
}

// NewProber returns a Prober with default timeout and sequential probing.
func NewProber(opts ...Option) *Prober {
	p := &Prober{
		timeout: defaults.ConnectTimeout,
		batch: batch.Options{
			Policy:      batch.PolicyAbort,
			Concurrency: defaults.BatchConcurrency,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.dial == nil {
		d := &net.Dialer{Timeout: p.timeout}
		p.dial = d.DialContext
	}
	return p
}

// Probe classifies every address, preserving input order.
func (p *Prober) Probe(ctx context.Context, addresses []string) ([]Result, error) {
	outcomes, err := batch.Run(ctx, addresses, p.batch, func(ctx context.Context, addr string) (Result, error) {
		r, err := p.ProbeOne(ctx, addr)
		if err != nil {
			probeTotal.WithLabelValues("error").Inc()
			return Result{Address: addr, Role: Unknown}, err
		}
		probeTotal.WithLabelValues(r.String()).Inc()
		return Result{Address: addr, Role: r}, nil
	})
	if outcomes == nil {
		return nil, err
	}

	results := make([]Result, len(outcomes))
	for i, o := range outcomes {
		r := o.Value.Role
		if r == "" {
			r = Unknown
		}
		results[i] = Result{Address: addresses[o.Index], Role: r, Err: o.Err}
	}
	return results, err
}

// ProbeOne sends the stat command to addr, reads the response until the
// server closes the connection and classifies it.
func (p *Prober) ProbeOne(ctx context.Context, addr string) (Role, error) {
	fail := func(msg string, cause error) error {
		return zzkerrors.WrapWithContext(zzkerrors.ErrCodeProbe,
			fmt.Sprintf("%s %s", msg, addr), cause, map[string]any{"address": addr})
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := p.dial(ctx, "tcp", addr)
	if err != nil {
		return Unknown, fail("failed to connect to", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return Unknown, fail("failed to set deadline on", err)
		}
	}

	// Unblock the read if ctx is canceled before the deadline.
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	if _, err := io.WriteString(conn, StatCommand); err != nil {
		return Unknown, fail("failed to send stat to", err)
	}

	resp, err := io.ReadAll(io.LimitReader(conn, maxResponseBytes+1))
	if err != nil {
		return Unknown, fail("failed to read stat response from", err)
	}
	if len(resp) > maxResponseBytes {
		return Unknown, fail(fmt.Sprintf("stat response exceeds %d bytes from", maxResponseBytes), nil)
	}

	r := Classify(string(resp))
	slog.Debug("probed server", "address", addr, "role", r, "bytes", len(resp))
	return r, nil
}
