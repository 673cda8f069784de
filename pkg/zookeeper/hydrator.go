package zookeeper

import (
	"context"
	"fmt"

	"github.com/zzk-cli/zzk/pkg/batch"
	zzkerrors "github.com/zzk-cli/zzk/pkg/errors"
)

// target is a node to fetch: key is what gets reported, path what gets read.
type target struct {
	key  string
	path string
}

// hydrate fetches the value of every target in input order. Per-target
// failures are HYDRATION errors naming the path; opts decides whether they
// abort the batch, are dropped, or are reported alongside the values.
func hydrate(ctx context.Context, s Session, targets []target, opts batch.Options) ([]Entry, error) {
	outcomes, err := batch.Run(ctx, targets, opts, func(_ context.Context, t target) (Entry, error) {
		data, _, err := s.Get(t.path)
		if err != nil {
			hydratedTotal.WithLabelValues("error").Inc()
			return Entry{Path: t.key}, zzkerrors.WrapWithContext(zzkerrors.ErrCodeHydration,
				fmt.Sprintf("failed to fetch value of %s", t.path),
				translate(err, "get", t.path),
				map[string]any{"path": t.path})
		}
		hydratedTotal.WithLabelValues("success").Inc()
		return Entry{Path: t.key, Value: data}, nil
	})
	if outcomes == nil {
		return nil, err
	}

	entries := make([]Entry, len(outcomes))
	for i, o := range outcomes {
		e := o.Value
		e.Path = targets[o.Index].key
		e.Err = o.Err
		entries[i] = e
	}
	return entries, err
}
