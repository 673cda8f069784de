package zookeeper

import (
	"fmt"
	"strings"

	zzkerrors "github.com/zzk-cli/zzk/pkg/errors"
)

// RootPath is the root of the namespace.
const RootPath = "/"

// ValidatePath checks that p is "/" or an absolute path without a trailing
// slash, empty segments, "." or ".." segments, or NUL bytes.
func ValidatePath(p string) error {
	invalid := func(reason string) error {
		return zzkerrors.WrapWithContext(zzkerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid path %q: %s", p, reason), nil, map[string]any{"path": p})
	}

	switch {
	case p == RootPath:
		return nil
	case p == "":
		return invalid("path is empty")
	case !strings.HasPrefix(p, "/"):
		return invalid("path must start with /")
	case strings.HasSuffix(p, "/"):
		return invalid("path must not end with /")
	case strings.ContainsRune(p, 0):
		return invalid("path must not contain NUL")
	}

	for _, seg := range strings.Split(p[1:], "/") {
		switch seg {
		case "":
			return invalid("empty segment")
		case ".", "..":
			return invalid("relative segment")
		}
	}
	return nil
}

// Reroot turns a bare child name of the root into an absolute path.
// The name must be non-empty and must not contain a slash.
func Reroot(name string) (string, error) {
	if name == "" || strings.Contains(name, "/") {
		return "", zzkerrors.New(zzkerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid child name %q", name))
	}
	return RootPath + name, nil
}

// JoinPath appends a bare child name to an absolute parent path.
func JoinPath(parent, name string) (string, error) {
	if parent == RootPath {
		return Reroot(name)
	}
	if _, err := Reroot(name); err != nil {
		return "", err
	}
	return parent + "/" + name, nil
}

// ParentPaths returns the proper ancestors of p, excluding the root, from the
// top down: "/a/b/c" yields ["/a", "/a/b"].
func ParentPaths(p string) []string {
	if p == RootPath || p == "" {
		return nil
	}
	var parents []string
	for i := 1; i < len(p); i++ {
		if p[i] == '/' {
			parents = append(parents, p[:i])
		}
	}
	return parents
}
