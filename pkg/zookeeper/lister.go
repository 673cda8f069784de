package zookeeper

import (
	"context"
	"sort"
)

// list enumerates root on an open session. Any failure aborts the listing.
func list(ctx context.Context, s Session, root string, recursive bool) ([]string, error) {
	if !recursive {
		names, err := sortedChildren(s, root)
		if err != nil {
			return nil, translate(err, "list", root)
		}
		return names, nil
	}

	var out []string
	if err := walk(ctx, s, root, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// walk appends every descendant of parent in depth-first pre-order.
// Children of the root come back as bare names and are re-rooted first.
func walk(ctx context.Context, s Session, parent string, out *[]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	names, err := sortedChildren(s, parent)
	if err != nil {
		return translate(err, "list", parent)
	}

	for _, name := range names {
		var child string
		if parent == RootPath {
			child, err = Reroot(name)
		} else {
			child, err = JoinPath(parent, name)
		}
		if err != nil {
			return err
		}

		*out = append(*out, child)
		if err := walk(ctx, s, child, out); err != nil {
			return err
		}
	}
	return nil
}

func sortedChildren(s Session, path string) ([]string, error) {
	names, _, err := s.Children(path)
	if err != nil {
		return nil, err
	}
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	return sorted, nil
}
