package ted

import "fmt"

// Algorithm selects the distance computation strategy.
type Algorithm string

const (
	// AlgorithmAuto uses the ordered DP when no alignment is requested and A* otherwise.
	AlgorithmAuto Algorithm = "auto"
	// AlgorithmAStar forces the best-first branch-and-bound search.
	AlgorithmAStar Algorithm = "astar"
	// AlgorithmDP forces the keyroot dynamic program (distance only).
	AlgorithmDP Algorithm = "dp"
)

// ParseAlgorithm resolves an algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(name) {
	case AlgorithmAuto, "":
		return AlgorithmAuto, nil
	case AlgorithmAStar:
		return AlgorithmAStar, nil
	case AlgorithmDP:
		return AlgorithmDP, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: auto, astar, dp)", ErrUnsupportedAlgorithm, name)
	}
}

// Heuristic selects the lower bound used by the A* search.
type Heuristic int

const (
	// HeuristicHistogram bounds unavoidable label mismatches with key histograms.
	// It falls back to zero for models that do not implement LabelKeyer.
	HeuristicHistogram Heuristic = iota
	// HeuristicZero degrades the search to cost-ordered exhaustive exploration.
	HeuristicZero
)

// Options configures a Distance call.
type Options struct {
	Algorithm   Algorithm
	Heuristic   Heuristic
	MaxExpanded int  // 0 means unbounded
	NeedMapping bool // whether the alignment must be recovered
	CheckEvery  int  // how many expansions between context polls
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Algorithm:   AlgorithmAuto,
		Heuristic:   HeuristicHistogram,
		MaxExpanded: 0,
		NeedMapping: true,
		CheckEvery:  256,
	}
}

// Option mutates Options.
type Option func(*Options)

// WithAlgorithm selects the algorithm.
func WithAlgorithm(a Algorithm) Option {
	return func(o *Options) { o.Algorithm = a }
}

// WithHeuristic selects the A* heuristic.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) { o.Heuristic = h }
}

// WithMaxExpanded bounds the number of expanded search states. Zero or negative means unbounded.
func WithMaxExpanded(n int) Option {
	return func(o *Options) {
		if n < 0 {
			n = 0
		}
		o.MaxExpanded = n
	}
}

// WithoutMapping tells the engine that only the distance is needed.
func WithoutMapping() Option {
	return func(o *Options) { o.NeedMapping = false }
}
