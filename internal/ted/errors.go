package ted

import "errors"

var (
	// ErrEmptyForest indicates a forest with zero nodes.
	ErrEmptyForest = errors.New("ted: forest must contain at least one node")
	// ErrInvalidForest indicates labels/adjacency that violate the pre-order forest invariants.
	ErrInvalidForest = errors.New("ted: invalid forest")
	// ErrNilCostModel indicates a missing cost model.
	ErrNilCostModel = errors.New("ted: cost model is required")
	// ErrBudgetExceeded indicates the search ran out of its expansion or time budget.
	ErrBudgetExceeded = errors.New("ted: search budget exceeded")
	// ErrUnsupportedAlgorithm indicates an unknown algorithm selector.
	ErrUnsupportedAlgorithm = errors.New("ted: unsupported algorithm")
)
