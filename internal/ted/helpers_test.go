package ted

import "math/rand"

var (
	testForms   = []string{"a", "b", "c"}
	testDeprels = []string{"nsubj", "obj", "root", "nsubj:pass", ""}
	testUPOS    = []string{"NOUN", "VERB", "ADJ", ""}
)

func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// randomAdjacency produces a valid pre-order forest of n nodes. Each new node
// attaches somewhere on the rightmost path of the nodes seen so far, or
// starts a new tree.
func randomAdjacency(rng *rand.Rand, n int) ([]Label, [][]int) {
	labels := make([]Label, n)
	adj := make([][]int, n)
	var path []int
	for i := 0; i < n; i++ {
		labels[i] = NewLabel(
			testForms[rng.Intn(len(testForms))],
			testDeprels[rng.Intn(len(testDeprels))],
			testUPOS[rng.Intn(len(testUPOS))],
		)
		depth := 0
		if len(path) > 0 {
			depth = rng.Intn(len(path) + 1)
			// keep most inputs as single trees
			if depth == 0 && rng.Intn(4) != 0 {
				depth = 1
			}
		}
		path = path[:depth]
		if depth > 0 {
			parent := path[depth-1]
			adj[parent] = append(adj[parent], i)
		}
		path = append(path, i)
	}
	return labels, adj
}

func randomForest(rng *rand.Rand, n int) *Forest {
	labels, adj := randomAdjacency(rng, n)
	f, err := NewForest(labels, adj)
	if err != nil {
		panic(err)
	}
	return f
}

// toNodes converts a forest back into node trees.
func toNodes(f *Forest) []Node {
	var build func(i int) Node
	build = func(i int) Node {
		n := &LabeledNode{Lbl: f.Label(i)}
		for _, c := range f.Children(i) {
			n.Kids = append(n.Kids, build(c))
		}
		return n
	}
	var roots []Node
	for _, r := range f.Roots() {
		roots = append(roots, build(r))
	}
	return roots
}

func allUnitModels() []CostModel {
	return []CostModel{
		StructuralCostModel{},
		DeprelCostModel{},
		UPOSCostModel{},
		RelationAndTagCostModel{},
	}
}
