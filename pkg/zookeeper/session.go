package zookeeper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-zookeeper/zk"

	zzkerrors "github.com/zzk-cli/zzk/pkg/errors"
	"github.com/zzk-cli/zzk/pkg/logging"
)

// Session is the subset of *zk.Conn used by the client.
type Session interface {
	Get(path string) ([]byte, *zk.Stat, error)
	GetW(path string) ([]byte, *zk.Stat, <-chan zk.Event, error)
	Set(path string, data []byte, version int32) (*zk.Stat, error)
	Create(path string, data []byte, flags int32, acl []zk.ACL) (string, error)
	Delete(path string, version int32) error
	Exists(path string) (bool, *zk.Stat, error)
	Children(path string) ([]string, *zk.Stat, error)
	Close()
}

var _ Session = (*zk.Conn)(nil)

// Connector opens a session against one of the given servers.
type Connector func(ctx context.Context, servers []string, timeout time.Duration) (Session, error)

// Connect dials the ensemble and blocks until a session is established.
// When the session is not up within timeout, or ctx ends first, the
// half-open connection is closed and a CONNECTION error is returned.
func Connect(ctx context.Context, servers []string, timeout time.Duration) (Session, error) {
	if len(servers) == 0 {
		return nil, zzkerrors.New(zzkerrors.ErrCodeInvalidRequest, "no servers to connect to")
	}

	hosts := strings.Join(servers, ",")
	conn, events, err := zk.Connect(servers, timeout,
		zk.WithLogger(logging.ZKLogger{}),
		zk.WithLogInfo(false),
	)
	if err != nil {
		return nil, zzkerrors.WrapWithContext(zzkerrors.ErrCodeConnection,
			fmt.Sprintf("failed to connect to %s", hosts), err, map[string]any{"hosts": hosts})
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				conn.Close()
				return nil, zzkerrors.WrapWithContext(zzkerrors.ErrCodeConnection,
					fmt.Sprintf("failed to connect to %s", hosts), zk.ErrConnectionClosed, map[string]any{"hosts": hosts})
			}
			if ev.Type != zk.EventSession {
				continue
			}
			slog.Debug("session state changed", "state", ev.State.String(), "server", ev.Server)
			switch ev.State {
			case zk.StateHasSession:
				return conn, nil
			case zk.StateAuthFailed, zk.StateExpired:
				conn.Close()
				return nil, zzkerrors.WrapWithContext(zzkerrors.ErrCodeConnection,
					fmt.Sprintf("failed to establish session with %s: %s", hosts, ev.State), ev.Err, map[string]any{"hosts": hosts})
			}
		case <-timer.C:
			conn.Close()
			return nil, zzkerrors.WrapWithContext(zzkerrors.ErrCodeConnection,
				fmt.Sprintf("timed out after %s connecting to %s", timeout, hosts), nil, map[string]any{"hosts": hosts})
		case <-ctx.Done():
			conn.Close()
			return nil, zzkerrors.WrapWithContext(zzkerrors.ErrCodeConnection,
				fmt.Sprintf("failed to connect to %s", hosts), ctx.Err(), map[string]any{"hosts": hosts})
		}
	}
}
