package ops

import (
	"github.com/cartexpr/cartexpr/internal/compiler"
	"github.com/cartexpr/cartexpr/internal/expr"
	"github.com/cartexpr/cartexpr/internal/registry"
	"github.com/cartexpr/cartexpr/internal/types"
	"github.com/cartexpr/cartexpr/pkg/runtime"
)

// shortCircuit builds && / || : variadic boolean operators that stop
// evaluating as soon as the outcome is determined. stopOn is the operand
// value that short-circuits the whole expression to that same value.
func shortCircuit(name string, stopOn bool) *registry.Operator {
	return op(name, variadic(1, types.Bool, types.Bool), func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		evals := make([]compiler.EvalFunc, len(args))
		for i, a := range args {
			evals[i] = asEval(a)
		}
		return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			for _, e := range evals {
				v, err := e(ctx, props, f)
				if err != nil {
					return nil, err
				}
				b, err := ctx.ToBoolean(v)
				if err != nil {
					return nil, err
				}
				if b == stopOn {
					return stopOn, nil
				}
			}
			return !stopOn, nil
		})
	})
}

func notOp() *registry.Operator {
	return op("!", unary(types.Bool, types.Bool), func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		a := asEval(args[0])
		return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			v, err := a(ctx, props, f)
			if err != nil {
				return nil, err
			}
			b, err := ctx.ToBoolean(v)
			if err != nil {
				return nil, err
			}
			return !b, nil
		})
	})
}

func booleanOps() []*registry.Operator {
	return []*registry.Operator{
		shortCircuit("&&", false),
		shortCircuit("||", true),
		notOp(),
	}
}
