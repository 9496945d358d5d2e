package ted

// histogram precomputes, for every suffix of both forests, how many nodes
// carry each label key. With unit costs, resolving rs remaining source nodes
// against rt remaining target nodes costs at least
//
//	max(rs, rt) - Σ_k min(cs_k, ct_k)
//
// because every node is deleted, inserted or substituted, and at most
// Σ_k min(cs_k, ct_k) substitutions can be free. The bound drops by at most
// the cost of any single operation, so it is consistent.
type histogram struct {
	keys int
	src  [][]int32 // src[i][k]: nodes with key k among source i..n-1
	dst  [][]int32
}

func newHistogram(src, dst *Forest, keyer LabelKeyer) *histogram {
	ids := make(map[string]int)
	intern := func(l Label) int {
		k := keyer.Key(l)
		id, ok := ids[k]
		if !ok {
			id = len(ids)
			ids[k] = id
		}
		return id
	}
	srcKeys := make([]int, src.Size())
	for i := range srcKeys {
		srcKeys[i] = intern(src.Label(i))
	}
	dstKeys := make([]int, dst.Size())
	for j := range dstKeys {
		dstKeys[j] = intern(dst.Label(j))
	}

	h := &histogram{keys: len(ids)}
	h.src = suffixCounts(srcKeys, h.keys)
	h.dst = suffixCounts(dstKeys, h.keys)
	return h
}

func suffixCounts(keys []int, k int) [][]int32 {
	out := make([][]int32, len(keys)+1)
	out[len(keys)] = make([]int32, k)
	for i := len(keys) - 1; i >= 0; i-- {
		row := make([]int32, k)
		copy(row, out[i+1])
		row[keys[i]]++
		out[i] = row
	}
	return out
}

// bound returns the lower bound for the suffixes starting at i and j.
func (h *histogram) bound(i, j int) float64 {
	rs := len(h.src) - 1 - i
	rt := len(h.dst) - 1 - j
	longest := rs
	if rt > longest {
		longest = rt
	}
	if rs == 0 || rt == 0 {
		return float64(longest)
	}
	free := 0
	cs, ct := h.src[i], h.dst[j]
	for k := 0; k < h.keys; k++ {
		a, b := cs[k], ct[k]
		if b < a {
			a = b
		}
		free += int(a)
	}
	return float64(longest - free)
}
