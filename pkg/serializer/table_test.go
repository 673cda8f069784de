package serializer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tableStat struct {
	Version  int32 `json:"version"`
	Children int32 `json:"num_children"`
}

type tableRecord struct {
	Key   string    `json:"key"`
	Value string    `json:"value"`
	Stat  tableStat `json:"stat"`
	Error string    `json:"error,omitempty"`
}

func TestRenderTable_FlattensNestedStructs(t *testing.T) {
	out, err := renderTable([]tableRecord{{Key: "/a", Value: "1", Stat: tableStat{Version: 3, Children: 0}}})
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"key", "value", "version", "num_children"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"/a", "1", "3", "0"}, strings.Fields(lines[3]))
}

func TestRenderTable_OmitEmptyColumn(t *testing.T) {
	rows := []tableRecord{{Key: "/a"}, {Key: "/b"}}

	out, err := renderTable(rows)
	require.NoError(t, err)
	assert.NotContains(t, out, "error")

	rows[1].Error = "zk: node does not exist"
	out, err = renderTable(rows)
	require.NoError(t, err)
	assert.Contains(t, out, "error")
	assert.Contains(t, out, "zk: node does not exist")
}

func TestRenderTable_LeftAligned(t *testing.T) {
	type row struct {
		Host string `json:"host"`
		Role string `json:"role"`
	}
	out, err := renderTable([]row{{"127.0.0.1:2181", "Leader"}, {"h:1", "Follower"}})
	require.NoError(t, err)

	want := "" +
		"================ ==========\n" +
		" host             role\n" +
		"================ ==========\n" +
		" 127.0.0.1:2181   Leader\n" +
		" h:1              Follower\n" +
		"================ =========="
	assert.Equal(t, want, out)
}

func TestRenderTable_WideRunes(t *testing.T) {
	type row struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	out, err := renderTable([]row{{"/a", "日本語"}})
	require.NoError(t, err)

	want := "" +
		"===== ========\n" +
		" key   value\n" +
		"===== ========\n" +
		" /a    日本語\n" +
		"===== ========"
	assert.Equal(t, want, out)
}

func TestRenderTable_EmptySliceKeepsHeaders(t *testing.T) {
	out, err := renderTable([]tableRecord{})
	require.NoError(t, err)
	assert.Contains(t, out, "key")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestRenderTable_Nil(t *testing.T) {
	out, err := renderTable(nil)
	require.NoError(t, err)
	assert.Equal(t, emptyTable, out)

	var p *tableRecord
	out, err = renderTable(p)
	require.NoError(t, err)
	assert.Equal(t, emptyTable, out)
}

func TestRenderTable_SingleStruct(t *testing.T) {
	out, err := renderTable(tableRecord{Key: "/x", Value: "y"})
	require.NoError(t, err)
	assert.Contains(t, out, " /x ")
}

func TestRenderTable_Scalars(t *testing.T) {
	out, err := renderTable([]string{"a", "bb"})
	require.NoError(t, err)
	assert.Equal(t, "=======\n value\n=======\n a\n bb\n=======", out)
}

func TestRenderTable_InterfaceSlice(t *testing.T) {
	out, err := renderTable([]any{tableRecord{Key: "/a"}, &tableRecord{Key: "/b"}})
	require.NoError(t, err)
	assert.Contains(t, out, "/a")
	assert.Contains(t, out, "/b")
}

func TestRenderTable_MixedTypesRejected(t *testing.T) {
	_, err := renderTable([]any{tableRecord{Key: "/a"}, tableStat{}})
	assert.Error(t, err)
}

func TestRenderTable_EscapesNewlinesAndBytes(t *testing.T) {
	type row struct {
		Key   string `json:"key"`
		Value []byte `json:"value"`
	}
	out, err := renderTable([]row{{Key: "/a", Value: []byte("line1\nline2")}})
	require.NoError(t, err)
	assert.Contains(t, out, `line1\nline2`)
}

func TestRenderTable_TableTagOverrides(t *testing.T) {
	type row struct {
		Key     string `json:"key"`
		Hidden  string `json:"hidden" table:"-"`
		Renamed string `json:"r" table:"renamed"`
	}
	out, err := renderTable([]row{{Key: "/a", Hidden: "secret", Renamed: "v"}})
	require.NoError(t, err)
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "renamed")
}
