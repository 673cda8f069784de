package zookeeper

import (
	"context"
	"time"

	"github.com/zzk-cli/zzk/pkg/zookeeper/zktest"
)

func newFakeServer() *zktest.Server {
	return zktest.NewServer()
}

func fakeConnector(srv *zktest.Server) Connector {
	return func(ctx context.Context, servers []string, timeout time.Duration) (Session, error) {
		conn, err := srv.Connect(ctx, servers, timeout)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
}

func fakeClient(srv *zktest.Server, opts ...Option) *Client {
	return NewClient([]string{"fake:2181"}, append([]Option{WithConnector(fakeConnector(srv))}, opts...)...)
}
