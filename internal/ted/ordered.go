package ted

import "math"

// postOrderTree is a forest re-indexed in post-order (1-based) under a
// virtual root, the layout required by the keyroot dynamic program.
type postOrderTree struct {
	labels   []Label // labels[k] for k in 1..size; index 0 unused
	leftmost []int   // leftmost leaf descendant of k
	virtual  int     // post-order index of the virtual root (== size)
	keyRoots []int   // ascending
}

func newPostOrderTree(f *Forest) *postOrderTree {
	size := f.Size() + 1
	t := &postOrderTree{
		labels:   make([]Label, size+1),
		leftmost: make([]int, size+1),
		virtual:  size,
	}

	next := 1
	var visit func(i int) int
	visit = func(i int) int {
		first := 0
		for _, c := range f.Children(i) {
			lm := visit(c)
			if first == 0 {
				first = lm
			}
		}
		k := next
		next++
		t.labels[k] = f.Label(i)
		if first == 0 {
			first = k
		}
		t.leftmost[k] = first
		return first
	}
	rootLeftmost := 0
	for _, r := range f.roots {
		lm := visit(r)
		if rootLeftmost == 0 {
			rootLeftmost = lm
		}
	}
	t.leftmost[size] = rootLeftmost

	// A key root is the highest node among those sharing a leftmost leaf.
	seen := make(map[int]bool)
	for k := size; k >= 1; k-- {
		if !seen[t.leftmost[k]] {
			seen[t.leftmost[k]] = true
			t.keyRoots = append(t.keyRoots, k)
		}
	}
	for a, b := 0, len(t.keyRoots)-1; a < b; a, b = a+1, b-1 {
		t.keyRoots[a], t.keyRoots[b] = t.keyRoots[b], t.keyRoots[a]
	}
	return t
}

// OrderedDistance computes the ordered forest edit distance with the
// Zhang-Shasha keyroot dynamic program in O(n²m²) time in the worst case.
// It returns the same value as the A* search but no alignment.
//
// Both forests are hung under a virtual root. The two virtual roots map onto
// each other for free and are prohibitively expensive to edit otherwise, so
// the tree distance of the extended trees equals the forest distance.
func OrderedDistance(src, dst *Forest, model CostModel) (float64, error) {
	if src == nil || dst == nil || src.Size() == 0 || dst.Size() == 0 {
		return 0, ErrEmptyForest
	}
	if model == nil {
		return 0, ErrNilCostModel
	}

	t1, t2 := newPostOrderTree(src), newPostOrderTree(dst)
	d := &orderedDP{t1: t1, t2: t2, model: model}

	// Any real edit script is cheaper than touching a virtual root.
	d.prohibitive = 1
	for k := 1; k < t1.virtual; k++ {
		d.prohibitive += math.Abs(model.Delete(t1.labels[k]))
	}
	for k := 1; k < t2.virtual; k++ {
		d.prohibitive += math.Abs(model.Insert(t2.labels[k]))
	}

	d.td = make([][]float64, t1.virtual+1)
	for i := range d.td {
		d.td[i] = make([]float64, t2.virtual+1)
	}
	for _, i := range t1.keyRoots {
		for _, j := range t2.keyRoots {
			d.forestDistance(i, j)
		}
	}
	return d.td[t1.virtual][t2.virtual], nil
}

type orderedDP struct {
	t1, t2      *postOrderTree
	model       CostModel
	td          [][]float64
	prohibitive float64
}

func (d *orderedDP) del(k int) float64 {
	if k == d.t1.virtual {
		return d.prohibitive
	}
	return d.model.Delete(d.t1.labels[k])
}

func (d *orderedDP) ins(k int) float64 {
	if k == d.t2.virtual {
		return d.prohibitive
	}
	return d.model.Insert(d.t2.labels[k])
}

func (d *orderedDP) sub(a, b int) float64 {
	va, vb := a == d.t1.virtual, b == d.t2.virtual
	switch {
	case va && vb:
		return 0
	case va || vb:
		return d.prohibitive
	default:
		return d.model.Substitute(d.t1.labels[a], d.t2.labels[b])
	}
}

// forestDistance fills the tree distances of every pair of nodes on the
// leftmost paths of key roots i and j.
func (d *orderedDP) forestDistance(i, j int) {
	li, lj := d.t1.leftmost[i], d.t2.leftmost[j]
	rows, cols := i-li+2, j-lj+2

	// fd[x][y] is the distance between the forests li..li+x-1 and lj..lj+y-1.
	fd := make([][]float64, rows)
	for x := range fd {
		fd[x] = make([]float64, cols)
	}
	for x := 1; x < rows; x++ {
		fd[x][0] = fd[x-1][0] + d.del(li+x-1)
	}
	for y := 1; y < cols; y++ {
		fd[0][y] = fd[0][y-1] + d.ins(lj+y-1)
	}

	for x := 1; x < rows; x++ {
		i1 := li + x - 1
		for y := 1; y < cols; y++ {
			j1 := lj + y - 1
			deleteCost := fd[x-1][y] + d.del(i1)
			insertCost := fd[x][y-1] + d.ins(j1)

			if d.t1.leftmost[i1] == li && d.t2.leftmost[j1] == lj {
				// Both prefixes are whole trees: this is a tree distance.
				renameCost := fd[x-1][y-1] + d.sub(i1, j1)
				fd[x][y] = math.Min(deleteCost, math.Min(insertCost, renameCost))
				d.td[i1][j1] = fd[x][y]
			} else {
				p := d.t1.leftmost[i1] - li
				q := d.t2.leftmost[j1] - lj
				subtreeCost := fd[p][q] + d.td[i1][j1]
				fd[x][y] = math.Min(deleteCost, math.Min(insertCost, subtreeCost))
			}
		}
	}
}
