package zookeeper

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-zookeeper/zk"

	zzkerrors "github.com/zzk-cli/zzk/pkg/errors"
)

// translate maps a session library error onto a structured error code.
func translate(err error, op, path string) error {
	if err == nil {
		return nil
	}
	var se *zzkerrors.StructuredError
	if errors.As(err, &se) {
		return err
	}

	code := zzkerrors.ErrCodeInternal
	switch {
	case errors.Is(err, zk.ErrNoNode):
		code = zzkerrors.ErrCodeNotFound
	case errors.Is(err, zk.ErrBadVersion):
		code = zzkerrors.ErrCodeVersionConflict
	case errors.Is(err, zk.ErrConnectionClosed),
		errors.Is(err, zk.ErrClosing),
		errors.Is(err, zk.ErrSessionExpired),
		errors.Is(err, zk.ErrNoServer):
		code = zzkerrors.ErrCodeConnection
	case errors.Is(err, zk.ErrInvalidPath), errors.Is(err, zk.ErrBadArguments):
		code = zzkerrors.ErrCodeInvalidRequest
	case errors.Is(err, context.DeadlineExceeded):
		code = zzkerrors.ErrCodeTimeout
	}
	return zzkerrors.WrapWithContext(code, fmt.Sprintf("%s %s", op, path), err, map[string]any{"path": path})
}
