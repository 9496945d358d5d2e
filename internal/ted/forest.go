package ted

import (
	"fmt"
	"strings"
)

// span is a half-open range into Forest.children.
type span struct {
	start, end int
}

// Forest is an ordered forest stored as an immutable arena.
//
// Nodes are numbered 0..n-1 in pre-order, so a parent always precedes its
// descendants and the subtree of node i occupies the index range [i, end(i)).
// The child lists of all nodes are concatenated into one index slice and each
// node keeps the span of its own children.
type Forest struct {
	labels   []Label
	children []int
	spans    []span
	parent   []int // -1 for roots
	end      []int // exclusive end of each subtree
	roots    []int
}

// Size returns the number of nodes in the forest.
func (f *Forest) Size() int {
	return len(f.labels)
}

// Label returns the label of node i.
func (f *Forest) Label(i int) Label {
	return f.labels[i]
}

// Labels returns a copy of the label sequence in pre-order.
func (f *Forest) Labels() []Label {
	out := make([]Label, len(f.labels))
	copy(out, f.labels)
	return out
}

// Children returns the ordered child indices of node i.
// The returned slice aliases the arena and must not be modified.
func (f *Forest) Children(i int) []int {
	s := f.spans[i]
	return f.children[s.start:s.end:s.end]
}

// Parent returns the parent index of node i, or -1 for a root.
func (f *Forest) Parent(i int) int {
	return f.parent[i]
}

// Roots returns the root indices in left-to-right order.
func (f *Forest) Roots() []int {
	out := make([]int, len(f.roots))
	copy(out, f.roots)
	return out
}

// SubtreeEnd returns the exclusive end of the pre-order range covered by the subtree of i.
func (f *Forest) SubtreeEnd(i int) int {
	return f.end[i]
}

// IsAncestor reports whether a is a proper ancestor of d.
func (f *Forest) IsAncestor(a, d int) bool {
	return a < d && d < f.end[a]
}

// Adjacency returns the child lists as a slice of slices, one per node.
func (f *Forest) Adjacency() [][]int {
	adj := make([][]int, len(f.labels))
	for i := range adj {
		c := f.Children(i)
		adj[i] = make([]int, len(c))
		copy(adj[i], c)
	}
	return adj
}

// EdgeCount returns the total number of entries across all child lists.
func (f *Forest) EdgeCount() int {
	return len(f.children)
}

// String renders the forest in bracket notation, e.g. "{a{b}{c}}".
func (f *Forest) String() string {
	var sb strings.Builder
	var write func(i int)
	write = func(i int) {
		sb.WriteByte('{')
		sb.WriteString(f.labels[i].String())
		for _, c := range f.Children(i) {
			write(c)
		}
		sb.WriteByte('}')
	}
	for _, r := range f.roots {
		write(r)
	}
	return sb.String()
}

// NewForest validates a pre-order label sequence with its adjacency lists and
// returns the corresponding arena. adjacency may be shorter than labels, in
// which case the missing nodes are leaves.
func NewForest(labels []Label, adjacency [][]int) (*Forest, error) {
	n := len(labels)
	if n == 0 {
		return nil, ErrEmptyForest
	}
	if len(adjacency) > n {
		return nil, fmt.Errorf("%w: %d adjacency lists for %d labels", ErrInvalidForest, len(adjacency), n)
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}
	edges := 0
	for p, kids := range adjacency {
		for _, c := range kids {
			if c < 0 || c >= n {
				return nil, fmt.Errorf("%w: child %d of node %d out of range", ErrInvalidForest, c, p)
			}
			if c <= p {
				return nil, fmt.Errorf("%w: child %d does not follow its parent %d", ErrInvalidForest, c, p)
			}
			if parent[c] != -1 {
				return nil, fmt.Errorf("%w: node %d has two parents (%d and %d)", ErrInvalidForest, c, parent[c], p)
			}
			parent[c] = p
			edges++
		}
	}

	f := &Forest{
		labels:   make([]Label, n),
		children: make([]int, 0, edges),
		spans:    make([]span, n),
		parent:   parent,
		end:      make([]int, n),
	}
	copy(f.labels, labels)
	for i := 0; i < n; i++ {
		start := len(f.children)
		if i < len(adjacency) {
			f.children = append(f.children, adjacency[i]...)
		}
		f.spans[i] = span{start: start, end: len(f.children)}
		if parent[i] == -1 {
			f.roots = append(f.roots, i)
		}
	}

	// The numbering must be exactly the pre-order of the roots taken left to right.
	next := 0
	var check func(i int) error
	check = func(i int) error {
		if i != next {
			return fmt.Errorf("%w: node %d visited at pre-order position %d", ErrInvalidForest, i, next)
		}
		next++
		for _, c := range f.Children(i) {
			if err := check(c); err != nil {
				return err
			}
		}
		f.end[i] = next
		return nil
	}
	for _, r := range f.roots {
		if err := check(r); err != nil {
			return nil, err
		}
	}
	return f, nil
}
