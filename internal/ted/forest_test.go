package ted

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(form string) *LabeledNode {
	return NewNode(NewLabel(form, "dep", "X"))
}

func TestBuildForest_PreOrderNumbering(t *testing.T) {
	// saw(I, dog(the, big), yesterday)
	root := NewNode(NewLabel("saw", "root", "VERB"),
		leaf("I"),
		NewNode(NewLabel("dog", "obj", "NOUN"), leaf("the"), leaf("big")),
		leaf("yesterday"),
	)

	f, err := BuildForest(root)
	require.NoError(t, err)
	require.Equal(t, 6, f.Size())

	forms := make([]string, f.Size())
	for i := range forms {
		forms[i], _ = f.Label(i).Form().Value()
	}
	assert.Equal(t, []string{"saw", "I", "dog", "the", "big", "yesterday"}, forms)

	assert.Equal(t, []int{1, 2, 5}, f.Children(0))
	assert.Equal(t, []int{3, 4}, f.Children(2))
	assert.Empty(t, f.Children(1))
	assert.Equal(t, []int{0}, f.Roots())
	assert.Equal(t, -1, f.Parent(0))
	assert.Equal(t, 2, f.Parent(4))
	assert.Equal(t, 5, f.SubtreeEnd(2))
	assert.Equal(t, 6, f.SubtreeEnd(0))
	assert.True(t, f.IsAncestor(0, 4))
	assert.True(t, f.IsAncestor(2, 3))
	assert.False(t, f.IsAncestor(2, 5))
	assert.False(t, f.IsAncestor(3, 3))
}

func TestBuildForest_RoundTrip(t *testing.T) {
	rng := newTestRand(7)
	for trial := 0; trial < 50; trial++ {
		labels, adj := randomAdjacency(rng, 1+rng.Intn(12))
		f, err := NewForest(labels, adj)
		require.NoError(t, err)

		rebuilt, err := BuildForest(toNodes(f)...)
		require.NoError(t, err)

		k := f.Size()
		assert.Equal(t, k, rebuilt.Size())
		assert.Equal(t, k-len(f.Roots()), rebuilt.EdgeCount())
		assert.Equal(t, f.Labels(), rebuilt.Labels())
		assert.Equal(t, f.Adjacency(), rebuilt.Adjacency())
	}
}

func TestBuildForest_SingleTreeEdgeCount(t *testing.T) {
	root := NewNode(NewLabel("a", "", ""), leaf("b"), NewNode(NewLabel("c", "", ""), leaf("d")))
	f, err := BuildForest(root)
	require.NoError(t, err)
	assert.Equal(t, 4, f.Size())
	assert.Equal(t, f.Size()-1, f.EdgeCount())
}

func TestBuildForest_MultipleRoots(t *testing.T) {
	f, err := BuildForest(NewNode(NewLabel("a", "", ""), leaf("b")), leaf("c"))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, f.Roots())
	assert.Equal(t, "{a/_/_{b/dep/X}}{c/dep/X}", f.String())
}

func TestBuildForest_Empty(t *testing.T) {
	_, err := BuildForest()
	assert.ErrorIs(t, err, ErrEmptyForest)

	var nilNode *LabeledNode
	_, err = BuildForest(nil, nilNode)
	assert.ErrorIs(t, err, ErrEmptyForest)
}

// wordNode is a Node implementation other than LabeledNode
type wordNode struct {
	label Label
	kids  []Node
}

func (w *wordNode) Label() Label     { return w.label }
func (w *wordNode) Children() []Node { return w.kids }

func TestBuildForest_SkipsTypedNilNodes(t *testing.T) {
	var nilWord *wordNode

	_, err := BuildForest(nilWord)
	assert.ErrorIs(t, err, ErrEmptyForest)

	root := &wordNode{label: NewLabel("a", "root", "X"), kids: []Node{nilWord, leaf("b"), nilWord}}
	f, err := BuildForest(nilWord, root)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Size())
	assert.Equal(t, []int{0}, f.Roots())
	assert.Equal(t, []int{1}, f.Children(0))
}

func TestNewForest_Validation(t *testing.T) {
	l := func(n int) []Label {
		out := make([]Label, n)
		for i := range out {
			out[i] = NewLabel("w", "", "")
		}
		return out
	}

	tests := []struct {
		name   string
		labels []Label
		adj    [][]int
		err    error
	}{
		{name: "empty", labels: nil, err: ErrEmptyForest},
		{name: "single node", labels: l(1), adj: nil},
		{name: "chain", labels: l(3), adj: [][]int{{1}, {2}}},
		{name: "child out of range", labels: l(2), adj: [][]int{{2}}, err: ErrInvalidForest},
		{name: "child before parent", labels: l(2), adj: [][]int{{}, {0}}, err: ErrInvalidForest},
		{name: "two parents", labels: l(3), adj: [][]int{{1, 2}, {2}}, err: ErrInvalidForest},
		{name: "not pre-order", labels: l(3), adj: [][]int{{2}, {}}, err: ErrInvalidForest},
		{name: "siblings swapped", labels: l(3), adj: [][]int{{2, 1}}, err: ErrInvalidForest},
		{name: "too many lists", labels: l(1), adj: [][]int{{}, {}}, err: ErrInvalidForest},
		{name: "forest of two trees", labels: l(3), adj: [][]int{{1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewForest(tt.labels, tt.adj)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err), "got %v", err)
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.labels), f.Size())
		})
	}
}
