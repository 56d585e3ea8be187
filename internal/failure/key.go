package failure

import (
	"fmt"
	"strings"
)

// Key returns the node's structural identity: a canonical string over the
// kind, message and cause subtree. Two independently built trees with the
// same shape compare equal. Memoized per node; safe because nodes are
// immutable after construction.
func (f *Failure) Key() string {
	if f.key == "" {
		f.key = buildKey(f)
	}
	return f.key
}

func buildKey(f *Failure) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%q|%q[", f.Kind, f.Message)
	for i, c := range f.Causes {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(c.Key())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Equal reports structural equality of two trees.
func Equal(a, b *Failure) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Key() == b.Key()
}
