package ted

// op is the edit operation that produced a search state.
type op uint8

const (
	opStart op = iota
	opSubstitute
	opDelete
	opInsert
)

// openPair is a mapped pair whose source or target still has unresolved descendants.
type openPair struct {
	src, dst int
}

// state is one node of the search tree: the next unresolved source index i,
// the next unresolved target index j, the cost so far and the mapped pairs
// that still constrain future substitutions.
type state struct {
	i, j   int
	g, f   float64
	op     op
	parent *state
	open   []openPair
	seq    int
}

// frontier is a min-heap of states ordered by f, then by progress (i+j,
// larger first), then by creation order.
type frontier []*state

func (h frontier) Len() int { return len(h) }

func (h frontier) Less(a, b int) bool {
	if h[a].f != h[b].f {
		return h[a].f < h[b].f
	}
	pa, pb := h[a].i+h[a].j, h[b].i+h[b].j
	if pa != pb {
		return pa > pb
	}
	return h[a].seq < h[b].seq
}

func (h frontier) Swap(a, b int) { h[a], h[b] = h[b], h[a] }

func (h *frontier) Push(x any) { *h = append(*h, x.(*state)) }

func (h *frontier) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
