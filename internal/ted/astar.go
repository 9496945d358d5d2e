package ted

import (
	"container/heap"
	"context"
	"fmt"
	"strconv"
)

// searcher holds the mutable state of a single A* run. It is never shared.
type searcher struct {
	src, dst *Forest
	model    CostModel
	options  Options
	hist     *histogram // nil means zero heuristic

	pq       frontier
	closed   map[string]struct{}
	seq      int
	expanded int
	keyBuf   []byte
}

// searchAStar runs the best-first branch-and-bound search and returns the
// optimal distance, the alignment and the number of expanded states.
//
// States are processed in pre-order: from (i, j) the search either maps
// source i onto target j, deletes source i or inserts target j. A mapping of
// i onto j is allowed only if it agrees with every earlier mapped pair (a, b)
// on ancestry (a is an ancestor of i exactly when b is an ancestor of j).
// Because both indices only grow, sibling order is preserved automatically,
// and only pairs whose subtrees are still open can ever disagree.
func searchAStar(ctx context.Context, src, dst *Forest, model CostModel, opts Options) (*Result, error) {
	s := &searcher{
		src:     src,
		dst:     dst,
		model:   model,
		options: opts,
		closed:  make(map[string]struct{}),
	}
	if keyer, ok := model.(LabelKeyer); ok && opts.Heuristic == HeuristicHistogram {
		s.hist = newHistogram(src, dst, keyer)
	}
	checkEvery := opts.CheckEvery
	if checkEvery <= 0 {
		checkEvery = DefaultOptions().CheckEvery
	}

	heap.Init(&s.pq)
	s.push(&state{i: 0, j: 0, g: 0, op: opStart})

	n, m := src.Size(), dst.Size()
	for s.pq.Len() > 0 {
		cur := heap.Pop(&s.pq).(*state)

		key := s.signature(cur)
		if _, seen := s.closed[key]; seen {
			continue
		}
		s.closed[key] = struct{}{}
		s.expanded++

		if cur.i == n && cur.j == m {
			return &Result{
				Distance:  cur.g,
				Mapping:   s.trace(cur),
				Expanded:  s.expanded,
				Algorithm: AlgorithmAStar,
			}, nil
		}

		if opts.MaxExpanded > 0 && s.expanded > opts.MaxExpanded {
			return nil, fmt.Errorf("%w: expanded %d states (limit %d)", ErrBudgetExceeded, s.expanded, opts.MaxExpanded)
		}
		if (s.expanded-1)%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w after %d expanded states: %w", ErrBudgetExceeded, s.expanded, err)
			}
		}

		s.expand(cur)
	}

	// Unreachable: deleting and inserting everything always reaches the goal.
	return nil, fmt.Errorf("ted: search frontier exhausted without reaching a goal")
}

// expand pushes the successors of cur: substitution first, then deletion,
// then insertion, so that substitution wins ties.
func (s *searcher) expand(cur *state) {
	n, m := s.src.Size(), s.dst.Size()
	i, j := cur.i, cur.j

	if i < n && j < m && s.consistent(cur, i, j) {
		open := make([]openPair, 0, len(cur.open)+1)
		open = append(open, cur.open...)
		open = append(open, openPair{src: i, dst: j})
		s.push(&state{
			i:      i + 1,
			j:      j + 1,
			g:      cur.g + s.model.Substitute(s.src.Label(i), s.dst.Label(j)),
			op:     opSubstitute,
			parent: cur,
			open:   s.prune(open, i+1, j+1),
		})
	}
	if i < n {
		s.push(&state{
			i:      i + 1,
			j:      j,
			g:      cur.g + s.model.Delete(s.src.Label(i)),
			op:     opDelete,
			parent: cur,
			open:   s.prune(cur.open, i+1, j),
		})
	}
	if j < m {
		s.push(&state{
			i:      i,
			j:      j + 1,
			g:      cur.g + s.model.Insert(s.dst.Label(j)),
			op:     opInsert,
			parent: cur,
			open:   s.prune(cur.open, i, j+1),
		})
	}
}

// consistent reports whether mapping source i onto target j respects the
// ancestry relation of every open pair.
func (s *searcher) consistent(cur *state, i, j int) bool {
	for _, p := range cur.open {
		if s.src.IsAncestor(p.src, i) != s.dst.IsAncestor(p.dst, j) {
			return false
		}
	}
	return true
}

// prune keeps the pairs that can still constrain a future substitution of
// some source index >= i or target index >= j. The input is not modified.
func (s *searcher) prune(pairs []openPair, i, j int) []openPair {
	keep := 0
	for _, p := range pairs {
		if s.src.SubtreeEnd(p.src) > i || s.dst.SubtreeEnd(p.dst) > j {
			keep++
		}
	}
	if keep == 0 {
		return nil
	}
	out := make([]openPair, 0, keep)
	for _, p := range pairs {
		if s.src.SubtreeEnd(p.src) > i || s.dst.SubtreeEnd(p.dst) > j {
			out = append(out, p)
		}
	}
	return out
}

func (s *searcher) push(st *state) {
	st.f = st.g
	if s.hist != nil {
		st.f += s.hist.bound(st.i, st.j)
	}
	st.seq = s.seq
	s.seq++
	heap.Push(&s.pq, st)
}

// signature identifies states with identical futures: same position and
// same constraining pairs.
func (s *searcher) signature(st *state) string {
	b := s.keyBuf[:0]
	b = strconv.AppendInt(b, int64(st.i), 10)
	b = append(b, ',')
	b = strconv.AppendInt(b, int64(st.j), 10)
	for _, p := range st.open {
		b = append(b, ';')
		b = strconv.AppendInt(b, int64(p.src), 10)
		b = append(b, ':')
		b = strconv.AppendInt(b, int64(p.dst), 10)
	}
	s.keyBuf = b
	return string(b)
}

// trace rebuilds the alignment by following parent links from the goal.
func (s *searcher) trace(goal *state) []Pair {
	var rev []Pair
	for st := goal; st.parent != nil; st = st.parent {
		p := st.parent
		switch st.op {
		case opSubstitute:
			rev = append(rev, Pair{Source: p.i, Target: p.j})
		case opDelete:
			rev = append(rev, Pair{Source: p.i, Target: Gap})
		case opInsert:
			rev = append(rev, Pair{Source: Gap, Target: p.j})
		}
	}
	out := make([]Pair, len(rev))
	for k := range rev {
		out[k] = rev[len(rev)-1-k]
	}
	return out
}
