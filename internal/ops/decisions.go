package ops

import (
	"github.com/cartexpr/cartexpr/internal/compiler"
	"github.com/cartexpr/cartexpr/internal/expr"
	"github.com/cartexpr/cartexpr/internal/registry"
	"github.com/cartexpr/cartexpr/internal/types"
	"github.com/cartexpr/cartexpr/pkg/runtime"
)

// caseOp implements case(cond1, val1, cond2, val2, …, default): a variadic
// run of (Boolean, T) pairs plus a trailing T default, evaluated in order.
func caseOp() *registry.Operator {
	t := types.Typename{Name: "T"}
	sig := types.Lambda{
		Result: t,
		Params: []types.Type{
			types.NArgs{Min: 0, Items: []types.Type{types.Bool, t}},
			t,
		},
	}
	return op("case", sig, func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		pairCount := (len(args) - 1) / 2
		conds := make([]compiler.EvalFunc, pairCount)
		vals := make([]compiler.EvalFunc, pairCount)
		for i := 0; i < pairCount; i++ {
			conds[i] = asEval(args[2*i])
			vals[i] = asEval(args[2*i+1])
		}
		def := asEval(args[len(args)-1])

		return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			for i := range conds {
				cv, err := conds[i](ctx, props, f)
				if err != nil {
					return nil, err
				}
				b, err := ctx.ToBoolean(cv)
				if err != nil {
					return nil, err
				}
				if b {
					return vals[i](ctx, props, f)
				}
			}
			return def(ctx, props, f)
		})
	})
}

// coalesceOp returns the first operand that evaluates without runtime
// failure. Lazy: later operands are wrapped as thunks and only forced by
// ctx.Coalesce if earlier ones fail.
func coalesceOp() *registry.Operator {
	t := types.Typename{Name: "T"}
	sig := types.Lambda{
		Result: t,
		Params: []types.Type{types.NArgs{Min: 1, Items: []types.Type{t}}},
	}
	return op("coalesce", sig, func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		evals := make([]compiler.EvalFunc, len(args))
		for i, a := range args {
			evals[i] = asEval(a)
		}
		return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			thunks := make([]runtime.Thunk, len(evals))
			for i, e := range evals {
				e := e
				thunks[i] = func() (runtime.Value, error) { return e(ctx, props, f) }
			}
			return ctx.Coalesce(thunks...)
		})
	})
}

func decisionOps() []*registry.Operator {
	return []*registry.Operator{
		caseOp(),
		coalesceOp(),
	}
}
