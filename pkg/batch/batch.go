package batch

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	zzkerrors "github.com/zzk-cli/zzk/pkg/errors"
)

// Policy selects how a batch reacts to failing items.
type Policy string

const (
	PolicyAbort   Policy = "abort"
	PolicySkip    Policy = "skip"
	PolicyCollect Policy = "collect"
)

// SupportedPolicies returns the policy names accepted on the command line.
func SupportedPolicies() []string {
	return []string{string(PolicyAbort), string(PolicySkip), string(PolicyCollect)}
}

// IsUnknown reports whether p is not one of the supported policies.
func (p Policy) IsUnknown() bool {
	switch p {
	case PolicyAbort, PolicySkip, PolicyCollect:
		return false
	default:
		return true
	}
}

// Outcome is the result of processing one item.
type Outcome[T any] struct {
	Index int
	Value T
	Err   error
}

// Options configures Run.
type Options struct {
	// Policy defaults to PolicyAbort.
	Policy Policy
	// Concurrency is the number of items in flight; values below 1 mean 1.
	Concurrency int
	// Limiter, if set, is waited on before each item starts.
	Limiter *rate.Limiter
}

// Run applies fn to every item and returns the outcomes in input order.
//
// Under PolicyAbort the returned slice is nil whenever the error is non-nil.
// Under PolicySkip only successful outcomes are returned and the error is nil
// unless ctx itself was canceled. Under PolicyCollect every outcome is returned
// and the error joins all per-item failures.
func Run[I, T any](ctx context.Context, items []I, opts Options, fn func(ctx context.Context, item I) (T, error)) ([]Outcome[T], error) {
	if opts.Policy == "" {
		opts.Policy = PolicyAbort
	}
	if opts.Policy.IsUnknown() {
		return nil, zzkerrors.New(zzkerrors.ErrCodeInvalidRequest, fmt.Sprintf("unknown batch policy: %q", opts.Policy))
	}
	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	outcomes := make([]Outcome[T], len(items))

	if opts.Policy == PolicyAbort {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(limit)
		for i, item := range items {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				v, err := runOne(gctx, opts.Limiter, item, fn)
				if err != nil {
					return err
				}
				outcomes[i] = Outcome[T]{Index: i, Value: v}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return outcomes, nil
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, item := range items {
		g.Go(func() error {
			v, err := runOne(ctx, opts.Limiter, item, fn)
			outcomes[i] = Outcome[T]{Index: i, Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	if opts.Policy == PolicySkip {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		kept := make([]Outcome[T], 0, len(outcomes))
		for _, o := range outcomes {
			if o.Err != nil {
				slog.Warn("skipping failed item", "index", o.Index, "error", o.Err)
				continue
			}
			kept = append(kept, o)
		}
		return kept, nil
	}

	var errs []error
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return outcomes, zzkerrors.Join(errs...)
}

func runOne[I, T any](ctx context.Context, limiter *rate.Limiter, item I, fn func(context.Context, I) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return zero, err
		}
	}
	return fn(ctx, item)
}
