package ops

import (
	"math"

	"github.com/cartexpr/cartexpr/internal/compiler"
	"github.com/cartexpr/cartexpr/internal/expr"
	"github.com/cartexpr/cartexpr/internal/registry"
	"github.com/cartexpr/cartexpr/internal/types"
	"github.com/cartexpr/cartexpr/pkg/runtime"
)

// variadicNumeric builds an associative n-ary numeric operator (+, *) that
// folds fold over its evaluated, coerced arguments left to right.
func variadicNumeric(name string, identity float64, fold func(acc, v float64) float64) *registry.Operator {
	return op(name, variadic(1, types.Num, types.Num), func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		evals := make([]compiler.EvalFunc, len(args))
		for i, a := range args {
			evals[i] = asEval(a)
		}
		return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			acc := identity
			for _, e := range evals {
				v, err := e(ctx, props, f)
				if err != nil {
					return nil, err
				}
				n, err := ctx.ToNumber(v)
				if err != nil {
					return nil, err
				}
				acc = fold(acc, n)
			}
			return acc, nil
		})
	})
}

func binaryNumeric(name string, fn func(a, b float64) (float64, error)) *registry.Operator {
	return op(name, binary(types.Num, types.Num, types.Num), func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
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
			ln, err := ctx.ToNumber(lv)
			if err != nil {
				return nil, err
			}
			rn, err := ctx.ToNumber(rv)
			if err != nil {
				return nil, err
			}
			return fn(ln, rn)
		})
	})
}

func unaryNumeric(name string, fn func(float64) float64) *registry.Operator {
	return op(name, unary(types.Num, types.Num), func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		a := asEval(args[0])
		return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			v, err := a(ctx, props, f)
			if err != nil {
				return nil, err
			}
			n, err := ctx.ToNumber(v)
			if err != nil {
				return nil, err
			}
			return fn(n), nil
		})
	})
}

func numericConstant(name string, value float64) *registry.Operator {
	return op(name, nullary(types.Num), func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		return emit(func(runtime.Context, map[string]runtime.Value, runtime.Feature) (runtime.Value, error) {
			return value, nil
		})
	})
}

func mathOps() []*registry.Operator {
	return []*registry.Operator{
		variadicNumeric("+", 0, func(acc, v float64) float64 { return acc + v }),
		variadicNumeric("*", 1, func(acc, v float64) float64 { return acc * v }),
		binaryNumeric("-", func(a, b float64) (float64, error) { return a - b, nil }),
		binaryNumeric("/", func(a, b float64) (float64, error) { return a / b, nil }),
		binaryNumeric("%", func(a, b float64) (float64, error) { return math.Mod(a, b), nil }),
		binaryNumeric("^", func(a, b float64) (float64, error) { return math.Pow(a, b), nil }),
		unaryNumeric("log10", math.Log10),
		unaryNumeric("ln", math.Log),
		unaryNumeric("log2", math.Log2),
		unaryNumeric("sin", math.Sin),
		unaryNumeric("cos", math.Cos),
		unaryNumeric("tan", math.Tan),
		unaryNumeric("asin", math.Asin),
		unaryNumeric("acos", math.Acos),
		unaryNumeric("atan", math.Atan),
		numericConstant("ln2", math.Ln2),
		numericConstant("pi", math.Pi),
		numericConstant("e", math.E),
	}
}
