package zookeeper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zzkerrors "github.com/zzk-cli/zzk/pkg/errors"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"root", "/", false},
		{"single segment", "/a", false},
		{"nested", "/a/b/c", false},
		{"dots inside name", "/a/b.c", false},
		{"empty", "", true},
		{"relative", "a/b", true},
		{"trailing slash", "/a/", true},
		{"double slash", "/a//b", true},
		{"dot segment", "/a/./b", true},
		{"dot dot segment", "/a/..", true},
		{"nul byte", "/a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, zzkerrors.IsCode(err, zzkerrors.ErrCodeInvalidRequest))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestReroot(t *testing.T) {
	p, err := Reroot("a")
	require.NoError(t, err)
	assert.Equal(t, "/a", p)

	for _, bad := range []string{"", "a/b", "/a"} {
		_, err := Reroot(bad)
		assert.Error(t, err, "Reroot(%q)", bad)
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		parent, name, want string
	}{
		{"/", "a", "/a"},
		{"/a", "b", "/a/b"},
		{"/a/b", "c", "/a/b/c"},
	}
	for _, tt := range tests {
		got, err := JoinPath(tt.parent, tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := JoinPath("/a", "b/c")
	assert.Error(t, err)
}

func TestParentPaths(t *testing.T) {
	assert.Nil(t, ParentPaths("/"))
	assert.Nil(t, ParentPaths("/a"))
	assert.Equal(t, []string{"/a"}, ParentPaths("/a/b"))
	assert.Equal(t, []string{"/a", "/a/b"}, ParentPaths("/a/b/c"))
}

func TestValueString_InvalidUTF8(t *testing.T) {
	rec := NodeRecord{Value: []byte{'o', 'k', 0xff, 0xfe}}
	assert.Equal(t, "ok�", rec.ValueString())

	e := Entry{Value: []byte("plain")}
	assert.Equal(t, "plain", e.ValueString())
}
