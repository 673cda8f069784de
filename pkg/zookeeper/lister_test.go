package zookeeper

import (
	"context"
	"testing"

	"github.com/go-zookeeper/zk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zzkerrors "github.com/zzk-cli/zzk/pkg/errors"
	"github.com/zzk-cli/zzk/pkg/zookeeper/zktest"
)

func treeServer() *zktest.Server {
	return newFakeServer().
		Put("/b/y", "by").
		Put("/a/x/deep", "deep").
		Put("/a/w", "aw").
		Put("/c", "c")
}

func TestList(t *testing.T) {
	tests := []struct {
		name      string
		root      string
		recursive bool
		want      []string
	}{
		{"root direct children are bare names", "/", false, []string{"a", "b", "c"}},
		{"nested direct children are bare names", "/a", false, []string{"w", "x"}},
		{"leaf has no children", "/c", false, []string{}},
		{"recursive from root is rerooted", "/", true, []string{"/a", "/a/w", "/a/x", "/a/x/deep", "/b", "/b/y", "/c"}},
		{"recursive below root", "/a", true, []string{"/a/w", "/a/x", "/a/x/deep"}},
		{"recursive leaf", "/a/x/deep", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := treeServer()
			got, err := fakeClient(srv).List(context.Background(), tt.root, tt.recursive)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestList_RecursiveIsStableAndComplete(t *testing.T) {
	srv := treeServer()
	c := fakeClient(srv)

	first, err := c.List(context.Background(), "/", true)
	require.NoError(t, err)
	for range 10 {
		again, err := c.List(context.Background(), "/", true)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	// Every key is absolute and appears exactly once; the root never does.
	seen := map[string]bool{}
	for _, k := range first {
		require.NoError(t, ValidatePath(k))
		assert.NotEqual(t, "/", k)
		assert.False(t, seen[k], "duplicate %s", k)
		seen[k] = true
	}
	// Parents precede their descendants.
	for i, k := range first {
		for _, p := range ParentPaths(k) {
			assert.Less(t, indexOf(first, p), i, "%s listed before %s", k, p)
		}
	}
}

func indexOf(keys []string, k string) int {
	for i, v := range keys {
		if v == k {
			return i
		}
	}
	return -1
}

func TestList_Missing(t *testing.T) {
	srv := newFakeServer()

	for _, recursive := range []bool{false, true} {
		_, err := fakeClient(srv).List(context.Background(), "/missing", recursive)
		require.Error(t, err)
		assert.Equal(t, zzkerrors.ErrCodeNotFound, zzkerrors.CodeOf(err))
	}
}

func TestList_FailureAbortsWithoutPartialResult(t *testing.T) {
	srv := treeServer()
	srv.FailChildren["/b"] = zk.ErrNoAuth

	got, err := fakeClient(srv).List(context.Background(), "/", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, zk.ErrNoAuth)
	assert.Nil(t, got)
}

func TestList_CanceledContext(t *testing.T) {
	srv := treeServer()
	ctx, cancel := context.WithCancel(context.Background())
	srv.Before = func(op, path string) {
		if op == "children" && path == "/a" {
			cancel()
		}
	}

	_, err := fakeClient(srv).List(ctx, "/", true)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, srv.CallsOf("children"), "/b")
}
