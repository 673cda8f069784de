package zookeeper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-zookeeper/zk"

	"github.com/zzk-cli/zzk/pkg/batch"
	"github.com/zzk-cli/zzk/pkg/defaults"
	zzkerrors "github.com/zzk-cli/zzk/pkg/errors"
)

// Client runs namespace operations, each on a session of its own.
type Client struct {
	servers []string
	timeout time.Duration
	connect Connector
	batch   batch.Options
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets how long to wait for a session to be established.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithConnector replaces the function used to open sessions.
func WithConnector(fn Connector) Option {
	return func(c *Client) {
		if fn != nil {
			c.connect = fn
		}
	}
}

// WithBatchOptions sets the failure policy, concurrency and throttle used
// when fetching the values of listed nodes.
func WithBatchOptions(opts batch.Options) Option {
	return func(c *Client) {
		c.batch = opts
	}
}

// NewClient returns a client for the given ensemble members.
func NewClient(servers []string, opts ...Option) *Client {
	c := &Client{
		servers: servers,
		timeout: defaults.ConnectTimeout,
		connect: Connect,
		batch: batch.Options{
			Policy:      batch.PolicyAbort,
			Concurrency: defaults.BatchConcurrency,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// withSession opens a session, runs fn and closes the session on every path.
func (c *Client) withSession(ctx context.Context, op string, fn func(Session) error) (err error) {
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = string(zzkerrors.CodeOf(err))
		}
		operationTotal.WithLabelValues(op, status).Inc()
		operationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	s, err := c.connect(ctx, c.servers, c.timeout)
	if err != nil {
		return err
	}
	defer s.Close()

	slog.Debug("session opened", "operation", op)
	return fn(s)
}

// Get returns the value and metadata of the node at path. With watch set,
// the read also registers a watch whose notification is discarded.
func (c *Client) Get(ctx context.Context, path string, watch bool) (*NodeRecord, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}

	var rec *NodeRecord
	err := c.withSession(ctx, "get", func(s Session) error {
		var (
			data []byte
			stat *zk.Stat
			err  error
		)
		if watch {
			data, stat, _, err = s.GetW(path)
		} else {
			data, stat, err = s.Get(path)
		}
		if err != nil {
			return translate(err, "get", path)
		}
		rec = &NodeRecord{Path: path, Value: data, Stat: metadataFromStat(stat)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Set writes value to the node at path, creating the node and any missing
// ancestors first. The write is conditioned on the version read just before
// it; losing that race yields a VERSION_CONFLICT error.
func (c *Client) Set(ctx context.Context, path string, value []byte) (*NodeRecord, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}

	var rec *NodeRecord
	err := c.withSession(ctx, "set", func(s Session) error {
		if err := ensurePath(s, path); err != nil {
			return err
		}

		_, current, err := s.Get(path)
		if err != nil {
			return translate(err, "get", path)
		}

		stat, err := s.Set(path, value, current.Version)
		if err != nil {
			return translate(err, "set", path)
		}
		rec = &NodeRecord{Path: path, Value: value, Stat: metadataFromStat(stat)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ensurePath creates every missing node on the way to path, path included,
// as empty persistent nodes.
func ensurePath(s Session, path string) error {
	if path == RootPath {
		return nil
	}
	for _, p := range append(ParentPaths(path), path) {
		_, err := s.Create(p, []byte{}, zk.FlagPersistent, zk.WorldACL(zk.PermAll))
		if err != nil && !errors.Is(err, zk.ErrNodeExists) {
			return translate(err, "create", p)
		}
	}
	return nil
}

// Exists reports whether the node at path exists.
func (c *Client) Exists(ctx context.Context, path string) (bool, error) {
	if err := ValidatePath(path); err != nil {
		return false, err
	}

	var found bool
	err := c.withSession(ctx, "exists", func(s Session) error {
		ok, _, err := s.Exists(path)
		if err != nil {
			if errors.Is(err, zk.ErrNoNode) {
				return nil
			}
			return translate(err, "exists", path)
		}
		found = ok
		return nil
	})
	return found, err
}

// Delete removes the node at path together with all of its descendants and
// returns the number of nodes removed. Nodes that vanish concurrently are not
// counted and are not an error.
func (c *Client) Delete(ctx context.Context, path string) (int, error) {
	if err := ValidatePath(path); err != nil {
		return 0, err
	}
	if path == RootPath {
		return 0, zzkerrors.New(zzkerrors.ErrCodeInvalidRequest, "refusing to delete the root node")
	}

	var deleted int
	err := c.withSession(ctx, "delete", func(s Session) error {
		ok, _, err := s.Exists(path)
		if err != nil && !errors.Is(err, zk.ErrNoNode) {
			return translate(err, "exists", path)
		}
		if !ok {
			return translate(zk.ErrNoNode, "delete", path)
		}

		n, err := deleteTree(ctx, s, path)
		deleted = n
		return err
	})
	return deleted, err
}

func deleteTree(ctx context.Context, s Session, path string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	children, err := sortedChildren(s, path)
	if err != nil {
		if errors.Is(err, zk.ErrNoNode) {
			return 0, nil
		}
		return 0, translate(err, "children", path)
	}

	var deleted int
	for _, name := range children {
		child, err := JoinPath(path, name)
		if err != nil {
			return deleted, err
		}
		n, err := deleteTree(ctx, s, child)
		deleted += n
		if err != nil {
			return deleted, err
		}
	}

	if err := s.Delete(path, -1); err != nil {
		if errors.Is(err, zk.ErrNoNode) {
			return deleted, nil
		}
		return deleted, translate(err, "delete", path)
	}
	slog.Debug("deleted node", "path", path)
	return deleted + 1, nil
}

// List returns the children of root. Non-recursive listings are bare names;
// recursive listings are absolute paths of every descendant in depth-first
// pre-order, root excluded.
func (c *Client) List(ctx context.Context, root string, recursive bool) ([]string, error) {
	if err := ValidatePath(root); err != nil {
		return nil, err
	}

	var keys []string
	err := c.withSession(ctx, "list", func(s Session) error {
		var err error
		keys, err = list(ctx, s, root, recursive)
		return err
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// ListValues lists root like List and fetches the value of every listed node
// on the same session. Entries keep the listed keys and the listing order.
// How failed fetches are handled follows the client's batch options.
func (c *Client) ListValues(ctx context.Context, root string, recursive bool) ([]Entry, error) {
	if err := ValidatePath(root); err != nil {
		return nil, err
	}

	var entries []Entry
	err := c.withSession(ctx, "list", func(s Session) error {
		keys, err := list(ctx, s, root, recursive)
		if err != nil {
			return err
		}

		targets := make([]target, len(keys))
		for i, k := range keys {
			p := k
			if !recursive {
				if p, err = JoinPath(root, k); err != nil {
					return err
				}
			}
			targets[i] = target{key: k, path: p}
		}

		entries, err = hydrate(ctx, s, targets, c.batch)
		return err
	})
	return entries, err
}
