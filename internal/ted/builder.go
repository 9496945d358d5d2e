package ted

import "reflect"

// Node is a read-only handle on an externally owned tree, such as a token of
// a parsed sentence. Children must be returned in left-to-right order.
type Node interface {
	Label() Label
	Children() []Node
}

// LabeledNode is a simple in-memory Node, useful for building trees by hand.
type LabeledNode struct {
	Lbl  Label
	Kids []Node
}

// NewNode creates an in-memory node with the given label and children.
func NewNode(label Label, children ...Node) *LabeledNode {
	return &LabeledNode{Lbl: label, Kids: children}
}

// Label returns the node label.
func (n *LabeledNode) Label() Label { return n.Lbl }

// Children returns the node children.
func (n *LabeledNode) Children() []Node { return n.Kids }

// frame is one pending visit of the builder traversal.
type frame struct {
	node   Node
	parent int
}

// BuildForest flattens the trees rooted at roots into a Forest.
//
// Each node receives the next unused index before any of its children, and
// children are visited left to right, so the numbering is a pre-order and
// sibling order is preserved in the child lists. Nil roots and nil children
// are skipped. A forest without any node is rejected with ErrEmptyForest.
func BuildForest(roots ...Node) (*Forest, error) {
	var (
		labels []Label
		parent []int
	)

	// Explicit stack; children are pushed in reverse so the leftmost is visited first.
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		if !isNilNode(roots[i]) {
			stack = append(stack, frame{node: roots[i], parent: -1})
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		idx := len(labels)
		labels = append(labels, top.node.Label())
		parent = append(parent, top.parent)

		kids := top.node.Children()
		for k := len(kids) - 1; k >= 0; k-- {
			if !isNilNode(kids[k]) {
				stack = append(stack, frame{node: kids[k], parent: idx})
			}
		}
	}

	n := len(labels)
	if n == 0 {
		return nil, ErrEmptyForest
	}

	// Count children per node, then lay them out contiguously. Iterating in
	// index order fills each child list left to right.
	f := &Forest{
		labels:   labels,
		children: make([]int, 0, n),
		spans:    make([]span, n),
		parent:   parent,
		end:      make([]int, n),
	}
	counts := make([]int, n)
	for i, p := range parent {
		if p >= 0 {
			counts[p]++
		} else {
			f.roots = append(f.roots, i)
		}
	}
	offset := 0
	for i := 0; i < n; i++ {
		f.spans[i] = span{start: offset, end: offset}
		offset += counts[i]
	}
	f.children = f.children[:offset]
	for i, p := range parent {
		if p >= 0 {
			f.children[f.spans[p].end] = i
			f.spans[p].end++
		}
	}

	// Children follow their parent, so a backward walk completes every
	// subtree size before it is added to the parent.
	size := make([]int, n)
	for i := n - 1; i >= 0; i-- {
		size[i]++
		if p := parent[i]; p >= 0 {
			size[p] += size[i]
		}
	}
	for i := 0; i < n; i++ {
		f.end[i] = i + size[i]
	}

	return f, nil
}

// isNilNode reports whether n is nil, including typed nil pointers, maps,
// slices and funcs behind the interface.
func isNilNode(n Node) bool {
	if n == nil {
		return true
	}
	switch v := reflect.ValueOf(n); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}
