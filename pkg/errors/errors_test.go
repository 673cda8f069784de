package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *StructuredError
		want string
	}{
		{"message only", New(ErrCodeInvalidRequest, "bad path"), "bad path"},
		{"message and cause", Wrap(ErrCodeNotFound, "get /a", stderrors.New("zk: node does not exist")), "get /a: zk: node does not exist"},
		{"cause only", Wrap(ErrCodeInternal, "", stderrors.New("boom")), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestStructuredError_UnwrapKeepsSentinel(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := fmt.Errorf("outer: %w", Wrap(ErrCodeConnection, "connect", sentinel))

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, ErrCodeConnection, CodeOf(err))
}

func TestCodeOf_Plain(t *testing.T) {
	assert.Equal(t, ErrCodeInternal, CodeOf(stderrors.New("plain")))
}

func TestIsCode(t *testing.T) {
	inner := Wrap(ErrCodeNotFound, "missing", nil)
	outer := Wrap(ErrCodeHydration, "hydrate /a", inner)

	assert.True(t, IsCode(outer, ErrCodeHydration))
	assert.True(t, IsCode(outer, ErrCodeNotFound))
	assert.False(t, IsCode(outer, ErrCodeProbe))
	assert.False(t, IsCode(nil, ErrCodeProbe))
}

func TestIsCode_Joined(t *testing.T) {
	err := Join(
		Wrap(ErrCodeProbe, "probe a:1", stderrors.New("refused")),
		nil,
		Wrap(ErrCodeTimeout, "probe b:2", stderrors.New("i/o timeout")),
	)

	assert.True(t, IsCode(err, ErrCodeProbe))
	assert.True(t, IsCode(err, ErrCodeTimeout))
	assert.Equal(t, "probe a:1: refused; probe b:2: i/o timeout", err.Error())
}

func TestJoin_AllNil(t *testing.T) {
	assert.NoError(t, Join(nil, nil))
}

func TestAttrs_Sorted(t *testing.T) {
	err := WrapWithContext(ErrCodeProbe, "probe", nil, map[string]any{"b": 2, "a": 1})
	assert.Equal(t, []any{"code", "PROBE", "a", 1, "b", 2}, err.Attrs())
}
