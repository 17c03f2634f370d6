package ops

import (
	"strings"

	"github.com/cartexpr/cartexpr/internal/compiler"
	"github.com/cartexpr/cartexpr/internal/expr"
	"github.com/cartexpr/cartexpr/internal/registry"
	"github.com/cartexpr/cartexpr/internal/types"
	"github.com/cartexpr/cartexpr/pkg/runtime"
)

func caseConversion(name string, fn func(string) string) *registry.Operator {
	return op(name, unary(types.Str, types.Str), func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		a := asEval(args[0])
		return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			v, err := a(ctx, props, f)
			if err != nil {
				return nil, err
			}
			s, err := ctx.ToString(v)
			if err != nil {
				return nil, err
			}
			return fn(s), nil
		})
	})
}

func concatOp() *registry.Operator {
	return op("concat", variadic(1, types.Value, types.Str), func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		evals := make([]compiler.EvalFunc, len(args))
		for i, a := range args {
			evals[i] = asEval(a)
		}
		return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			var b strings.Builder
			for _, e := range evals {
				v, err := e(ctx, props, f)
				if err != nil {
					return nil, err
				}
				s, err := ctx.ToString(v)
				if err != nil {
					return nil, err
				}
				b.WriteString(s)
			}
			return b.String(), nil
		})
	})
}

func stringOps() []*registry.Operator {
	return []*registry.Operator{
		caseConversion("upcase", strings.ToUpper),
		caseConversion("downcase", strings.ToLower),
		concatOp(),
	}
}
