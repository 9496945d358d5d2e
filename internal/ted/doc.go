// Package ted computes the edit distance between ordered labeled forests.
//
// Forests are immutable arenas numbered in pre-order (see BuildForest and
// NewForest). Distances are computed by Distance, a best-first
// branch-and-bound (A*) search over partial mappings that also recovers the
// optimal alignment, or by OrderedDistance, the polynomial keyroot dynamic
// program, when only the distance is needed.
//
// Costs are supplied through the CostModel interface. The four models used
// for dependency trees are selected with CostModelFor:
//
//	model := ted.CostModelFor(true, false) // compare coarse dependency relations
//	res, err := ted.Distance(ctx, src, dst, model)
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.Distance, res.Mapping)
package ted
