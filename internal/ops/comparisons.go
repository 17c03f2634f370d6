package ops

import (
	"github.com/cartexpr/cartexpr/internal/expr"
	"github.com/cartexpr/cartexpr/internal/registry"
	"github.com/cartexpr/cartexpr/internal/types"
	"github.com/cartexpr/cartexpr/pkg/runtime"
)

// comparison builds a binary operator over a shared type variable T,
// delegating the actual ordering/equality judgment to cmp.
func comparison(name string, cmp func(a, b runtime.Value) bool) *registry.Operator {
	t := types.Typename{Name: "T"}
	sig := types.Lambda{Result: types.Bool, Params: []types.Type{t, t}}
	return op(name, sig, func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		left, right := asEval(args[0]), asEval(args[1])
		return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			lv, err := left(ctx, props, f)
			if err != nil {
				return nil, err
			}
			rv, err := right(ctx, props, f)
			if err != nil {
				return nil, err
			}
			return cmp(ctx.Unwrap(lv), ctx.Unwrap(rv)), nil
		})
	})
}

// orderedNumbers coerces both operands to Number before applying cmp;
// used by the four ordering comparisons (==, != stay untyped/structural).
func orderedNumbers(ctx runtime.Context, a, b runtime.Value, cmp func(x, y float64) bool) (bool, error) {
	an, err := ctx.ToNumber(a)
	if err != nil {
		return false, err
	}
	bn, err := ctx.ToNumber(b)
	if err != nil {
		return false, err
	}
	return cmp(an, bn), nil
}

func orderedComparison(name string, cmp func(x, y float64) bool) *registry.Operator {
	t := types.Typename{Name: "T"}
	sig := types.Lambda{Result: types.Bool, Params: []types.Type{t, t}}
	return op(name, sig, func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		left, right := asEval(args[0]), asEval(args[1])
		return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			lv, err := left(ctx, props, f)
			if err != nil {
				return nil, err
			}
			rv, err := right(ctx, props, f)
			if err != nil {
				return nil, err
			}
			return orderedNumbers(ctx, lv, rv, cmp)
		})
	})
}

func deepEqual(a, b runtime.Value) bool {
	switch av := a.(type) {
	case []runtime.Value:
		bv, ok := b.([]runtime.Value)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]runtime.Value:
		bv, ok := b.(map[string]runtime.Value)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !deepEqual(v, bvv) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

func comparisonOps() []*registry.Operator {
	return []*registry.Operator{
		comparison("==", deepEqual),
		comparison("!=", func(a, b runtime.Value) bool { return !deepEqual(a, b) }),
		orderedComparison(">", func(x, y float64) bool { return x > y }),
		orderedComparison("<", func(x, y float64) bool { return x < y }),
		orderedComparison(">=", func(x, y float64) bool { return x >= y }),
		orderedComparison("<=", func(x, y float64) bool { return x <= y }),
	}
}
