package ops

import (
	"github.com/cartexpr/cartexpr/internal/registry"
)

// Standard builds the registry of every operator defined by the standard
// operator set (spec §4.6–§4.8): type queries/conversions, accessors, map
// context, arithmetic, comparisons, booleans, strings, the decision forms,
// match and curve.
func Standard() *registry.Registry {
	var all []*registry.Operator
	all = append(all, typeAndConversionOps()...)
	all = append(all, accessorOps()...)
	all = append(all, contextOps()...)
	all = append(all, mathOps()...)
	all = append(all, comparisonOps()...)
	all = append(all, booleanOps()...)
	all = append(all, stringOps()...)
	all = append(all, decisionOps()...)
	all = append(all, matchOp(), curveOp())
	return registry.MustNew(all...)
}
