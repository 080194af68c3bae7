package models

import (
	"sort"
	"strings"
)

// Path is the ordered, non-empty sequence of segments identifying a location
// in the tree, outermost segment first.
type Path []string

// String renders the path for error messages, joining segments with dots.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Join renders the path with an explicit separator, which is what the
// serializer uses to rebuild flat keys.
func (p Path) Join(sep string) string {
	return strings.Join(p, sep)
}

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Compare orders paths lexicographically by segment sequence. A path that is
// a strict prefix of another sorts first. The result is negative, zero or
// positive in the usual way.
func (p Path) Compare(q Path) int {
	n := len(p)
	if len(q) < n {
		n = len(q)
	}
	for i := 0; i < n; i++ {
		if c := strings.Compare(p[i], q[i]); c != 0 {
			return c
		}
	}
	return len(p) - len(q)
}

// CommonPrefixLen returns the length of the longest shared leading segment
// sequence of p and q.
func (p Path) CommonPrefixLen(q Path) int {
	n := len(p)
	if len(q) < n {
		n = len(q)
	}
	i := 0
	for i < n && p[i] == q[i] {
		i++
	}
	return i
}

// Pair is one (path, raw value) unit consumed by the assembler. The raw
// value keeps its textual form until the assembler places it into the tree.
type Pair struct {
	Path  Path
	Value string
}

// SortPairs orders pairs by Path.Compare so that all pairs sharing an
// ancestor prefix are contiguous, which the assembler relies on. The sort is
// stable; duplicate paths keep their relative order and are later rejected
// by the assembler.
func SortPairs(pairs []Pair) {
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Path.Compare(pairs[j].Path) < 0
	})
}

// PairsSorted reports whether pairs already satisfy the order SortPairs
// establishes.
func PairsSorted(pairs []Pair) bool {
	for i := 1; i < len(pairs); i++ {
		if pairs[i-1].Path.Compare(pairs[i].Path) > 0 {
			return false
		}
	}
	return true
}
