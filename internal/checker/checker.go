// Package checker implements the type checker: it traverses the parsed
// tree against an expected type, unifies each operator's signature
// against its actual argument types, solves for the operator's generic
// variables, and re-stamps every node with its specialized type (spec
// §4.4).
package checker

import (
	"sort"

	"github.com/cartexpr/cartexpr/internal/diagnostics"
	"github.com/cartexpr/cartexpr/internal/expr"
	"github.com/cartexpr/cartexpr/internal/types"
)

// Check type-checks e against expected, returning a fully specialized copy
// of the tree plus any diagnostics collected along the way. Sibling
// branches are checked independently so a single call surfaces as many
// issues as the input contains, per §7.
func Check(expected types.Type, e expr.Expression) (expr.Expression, []*diagnostics.Error) {
	switch node := e.(type) {
	case *expr.Literal:
		if _, err := types.Match(expected, node.Typ, nil); err != nil {
			return node, []*diagnostics.Error{
				diagnostics.NewTypeError(node.Key(), diagnostics.CodeTypeMismatch, err.Error()),
			}
		}
		return node, nil

	case *expr.Call:
		return checkCall(expected, node)

	default:
		panic("checker: unknown Expression variant")
	}
}

func checkCall(expected types.Type, node *expr.Call) (expr.Expression, []*diagnostics.Error) {
	sig, ok := node.Typ.(types.Lambda)
	if !ok {
		panic("checker: Call node's type is not a Lambda signature")
	}

	var errs []*diagnostics.Error

	expandedParams, err := expandParams(sig.Params, len(node.Args))
	if err != nil {
		errs = append(errs, diagnostics.NewTypeError(node.Key(), diagnostics.CodeArityMismatch, len(sig.Params), len(node.Args)))
		// Can't sensibly check children against a param list that doesn't
		// line up with the actual argument count; still specialize result
		// against expected best-effort and return.
		bindings, _ := types.Match(expected, sig.Result, types.Bindings{})
		specializedResult := types.Substitute(sig.Result, bindings)
		return expr.WithType(node, types.Lambda{Result: specializedResult, Params: sig.Params}), errs
	}

	bindings, matchErr := types.Match(expected, sig.Result, types.Bindings{})
	if matchErr != nil {
		errs = append(errs, diagnostics.NewTypeError(node.Key(), diagnostics.CodeTypeMismatch, matchErr.Error()))
		bindings = types.Bindings{}
	}

	checkedArgs := make([]expr.Expression, len(node.Args))
	for i, argExpr := range node.Args {
		expectedI := types.Substitute(expandedParams[i], bindings)
		checkedArg, childErrs := Check(expectedI, argExpr)
		errs = append(errs, childErrs...)
		checkedArgs[i] = checkedArg

		if next, err := types.Match(expandedParams[i], checkedArg.Type(), bindings); err == nil {
			bindings = next
		}
	}

	specializedResult := types.Substitute(sig.Result, bindings)
	if unbound := types.FreeTypenames(specializedResult); len(unbound) > 0 {
		sort.Strings(unbound)
		for _, name := range unbound {
			errs = append(errs, diagnostics.NewTypeError(node.Key(), diagnostics.CodeUnboundVar, name))
		}
	}

	specializedParams := make([]types.Type, len(expandedParams))
	for i, p := range expandedParams {
		specializedParams[i] = types.Substitute(p, bindings)
	}

	specialized := node.WithArgs(checkedArgs)
	result := expr.WithType(specialized, types.Lambda{Result: specializedResult, Params: specializedParams})
	return result, errs
}
