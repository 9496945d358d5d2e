package ted

import (
	"fmt"
	"strings"
)

// CostModel defines the interface for calculating edit operation costs
type CostModel interface {
	// Insert returns the cost of inserting a node
	Insert(label Label) float64

	// Delete returns the cost of deleting a node
	Delete(label Label) float64

	// Substitute returns the cost of mapping a source node onto a target node
	Substitute(a, b Label) float64

	// Name returns the model identifier
	Name() string
}

// LabelKeyer is implemented by unit cost models whose substitution cost is
// 0 when the keys of both labels are equal and 1 otherwise, with insert and
// delete costs of 1. The engine uses it for its label histogram heuristic.
type LabelKeyer interface {
	Key(label Label) string
}

// Cost model identifiers
const (
	CostModelNone   = "none"
	CostModelDeprel = "deprel"
	CostModelUPOS   = "upos"
	CostModelBoth   = "both"
)

// unitCost carries the shared insert/delete behaviour of the dependency tree models.
type unitCost struct{}

// Insert returns the cost of inserting a node (always 1.0)
func (unitCost) Insert(Label) float64 { return 1.0 }

// Delete returns the cost of deleting a node (always 1.0)
func (unitCost) Delete(Label) float64 { return 1.0 }

// StructuralCostModel ignores labels: only the tree shape matters.
type StructuralCostModel struct{ unitCost }

// Substitute always returns 0
func (StructuralCostModel) Substitute(a, b Label) float64 { return 0.0 }

// Key returns the same key for every label
func (StructuralCostModel) Key(Label) string { return "" }

// Name returns "none"
func (StructuralCostModel) Name() string { return CostModelNone }

// DeprelCostModel charges a substitution when the coarse dependency relations differ.
type DeprelCostModel struct{ unitCost }

// Substitute returns 0 if both relations are equal, 1 otherwise
func (m DeprelCostModel) Substitute(a, b Label) float64 {
	if a.deprel == b.deprel {
		return 0.0
	}
	return 1.0
}

// Key returns the encoded relation
func (DeprelCostModel) Key(l Label) string { return l.deprel.key() }

// Name returns "deprel"
func (DeprelCostModel) Name() string { return CostModelDeprel }

// UPOSCostModel charges a substitution when the part-of-speech tags differ.
type UPOSCostModel struct{ unitCost }

// Substitute returns 0 if both tags are equal, 1 otherwise
func (m UPOSCostModel) Substitute(a, b Label) float64 {
	if a.upos == b.upos {
		return 0.0
	}
	return 1.0
}

// Key returns the encoded tag
func (UPOSCostModel) Key(l Label) string { return l.upos.key() }

// Name returns "upos"
func (UPOSCostModel) Name() string { return CostModelUPOS }

// RelationAndTagCostModel charges a single unit when either the relation or
// the tag differs. A mismatch in both still costs 1, never 2.
type RelationAndTagCostModel struct{ unitCost }

// Substitute returns 0 if relation and tag are both equal, 1 otherwise
func (m RelationAndTagCostModel) Substitute(a, b Label) float64 {
	if a.deprel == b.deprel && a.upos == b.upos {
		return 0.0
	}
	return 1.0
}

// Key returns the encoded relation and tag
func (RelationAndTagCostModel) Key(l Label) string {
	return l.deprel.key() + "|" + l.upos.key()
}

// Name returns "both"
func (RelationAndTagCostModel) Name() string { return CostModelBoth }

// CostModelFor selects the cost model from the two comparison switches.
func CostModelFor(compareDeprel, compareUPOS bool) CostModel {
	switch {
	case compareDeprel && compareUPOS:
		return RelationAndTagCostModel{}
	case compareDeprel:
		return DeprelCostModel{}
	case compareUPOS:
		return UPOSCostModel{}
	default:
		return StructuralCostModel{}
	}
}

// ParseCostModel resolves a model identifier (none, deprel, upos, both).
func ParseCostModel(name string) (CostModel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case CostModelNone, "":
		return StructuralCostModel{}, nil
	case CostModelDeprel:
		return DeprelCostModel{}, nil
	case CostModelUPOS:
		return UPOSCostModel{}, nil
	case CostModelBoth:
		return RelationAndTagCostModel{}, nil
	default:
		return nil, fmt.Errorf("unknown cost model %q (supported: none, deprel, upos, both)", name)
	}
}

// WeightedCostModel scales the operations of a base model.
// It is not a LabelKeyer, so the engine searches it with the zero heuristic.
type WeightedCostModel struct {
	InsertWeight     float64
	DeleteWeight     float64
	SubstituteWeight float64
	Base             CostModel
}

// NewWeightedCostModel creates a new weighted cost model
func NewWeightedCostModel(insertWeight, deleteWeight, substituteWeight float64, base CostModel) *WeightedCostModel {
	return &WeightedCostModel{
		InsertWeight:     insertWeight,
		DeleteWeight:     deleteWeight,
		SubstituteWeight: substituteWeight,
		Base:             base,
	}
}

// Insert returns the weighted cost of inserting a node
func (c *WeightedCostModel) Insert(l Label) float64 {
	return c.InsertWeight * c.Base.Insert(l)
}

// Delete returns the weighted cost of deleting a node
func (c *WeightedCostModel) Delete(l Label) float64 {
	return c.DeleteWeight * c.Base.Delete(l)
}

// Substitute returns the weighted cost of substituting a by b
func (c *WeightedCostModel) Substitute(a, b Label) float64 {
	return c.SubstituteWeight * c.Base.Substitute(a, b)
}

// Name returns the base name with a weighted suffix
func (c *WeightedCostModel) Name() string {
	return c.Base.Name() + "+weighted"
}
