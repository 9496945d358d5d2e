package ted

import (
	"context"
	"fmt"
)

// Gap marks the empty side of a deletion or insertion in a Pair.
const Gap = -1

// Pair is one entry of an alignment. Source == Gap is an insertion of
// Target; Target == Gap is a deletion of Source.
type Pair struct {
	Source int `json:"source" yaml:"source"`
	Target int `json:"target" yaml:"target"`
}

// IsSubstitution reports whether the pair maps a source node onto a target node.
func (p Pair) IsSubstitution() bool {
	return p.Source != Gap && p.Target != Gap
}

// String returns "s->t" with "ε" for gaps
func (p Pair) String() string {
	side := func(v int) string {
		if v == Gap {
			return "ε"
		}
		return fmt.Sprintf("%d", v)
	}
	return side(p.Source) + "->" + side(p.Target)
}

// Result holds the outcome of a distance computation
type Result struct {
	Distance  float64
	Mapping   []Pair // nil when computed by the dynamic program
	Expanded  int    // search states expanded; 0 for the dynamic program
	Algorithm Algorithm
}

// Distance computes the edit distance between two forests under model.
//
// By default the A* search is used and the optimal alignment is returned.
// With WithoutMapping and the automatic algorithm the polynomial dynamic
// program is used instead. The search honours ctx and WithMaxExpanded; both
// report ErrBudgetExceeded.
func Distance(ctx context.Context, src, dst *Forest, model CostModel, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if src == nil || dst == nil || src.Size() == 0 || dst.Size() == 0 {
		return nil, ErrEmptyForest
	}
	if model == nil {
		return nil, ErrNilCostModel
	}
	if ctx == nil {
		ctx = context.Background()
	}

	algorithm := cfg.Algorithm
	if algorithm == AlgorithmAuto {
		if cfg.NeedMapping {
			algorithm = AlgorithmAStar
		} else {
			algorithm = AlgorithmDP
		}
	}

	switch algorithm {
	case AlgorithmAStar:
		return searchAStar(ctx, src, dst, model, cfg)
	case AlgorithmDP:
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBudgetExceeded, err)
		}
		d, err := OrderedDistance(src, dst, model)
		if err != nil {
			return nil, err
		}
		return &Result{Distance: d, Algorithm: AlgorithmDP}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
}

// MappingCost returns the total cost of an alignment under model.
func MappingCost(src, dst *Forest, model CostModel, mapping []Pair) float64 {
	total := 0.0
	for _, p := range mapping {
		switch {
		case p.IsSubstitution():
			total += model.Substitute(src.Label(p.Source), dst.Label(p.Target))
		case p.Source != Gap:
			total += model.Delete(src.Label(p.Source))
		case p.Target != Gap:
			total += model.Insert(dst.Label(p.Target))
		}
	}
	return total
}

// ValidateMapping checks that an alignment covers every node exactly once
// and preserves sibling order and ancestry between the two forests.
func ValidateMapping(src, dst *Forest, mapping []Pair) error {
	seenSrc := make([]bool, src.Size())
	seenDst := make([]bool, dst.Size())
	var subs []Pair
	for _, p := range mapping {
		if p.Source == Gap && p.Target == Gap {
			return fmt.Errorf("empty pair in mapping")
		}
		if p.Source != Gap {
			if p.Source < 0 || p.Source >= src.Size() || seenSrc[p.Source] {
				return fmt.Errorf("source index %d missing or repeated", p.Source)
			}
			seenSrc[p.Source] = true
		}
		if p.Target != Gap {
			if p.Target < 0 || p.Target >= dst.Size() || seenDst[p.Target] {
				return fmt.Errorf("target index %d missing or repeated", p.Target)
			}
			seenDst[p.Target] = true
		}
		if p.IsSubstitution() {
			subs = append(subs, p)
		}
	}
	for i, ok := range seenSrc {
		if !ok {
			return fmt.Errorf("source node %d not covered", i)
		}
	}
	for j, ok := range seenDst {
		if !ok {
			return fmt.Errorf("target node %d not covered", j)
		}
	}
	for a := 0; a < len(subs); a++ {
		for b := a + 1; b < len(subs); b++ {
			x, y := subs[a], subs[b]
			if (x.Source < y.Source) != (x.Target < y.Target) {
				return fmt.Errorf("pairs %v and %v violate sibling order", x, y)
			}
			if src.IsAncestor(x.Source, y.Source) != dst.IsAncestor(x.Target, y.Target) ||
				src.IsAncestor(y.Source, x.Source) != dst.IsAncestor(y.Target, x.Target) {
				return fmt.Errorf("pairs %v and %v violate ancestry", x, y)
			}
		}
	}
	return nil
}
