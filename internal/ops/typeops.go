package ops

import (
	"github.com/cartexpr/cartexpr/internal/compiler"
	"github.com/cartexpr/cartexpr/internal/config"
	"github.com/cartexpr/cartexpr/internal/diagnostics"
	"github.com/cartexpr/cartexpr/internal/expr"
	"github.com/cartexpr/cartexpr/internal/registry"
	"github.com/cartexpr/cartexpr/internal/types"
	"github.com/cartexpr/cartexpr/pkg/runtime"
)

func typeOfOp() *registry.Operator {
	return op("typeOf", unary(types.Value, types.Str), func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		a := asEval(args[0])
		return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			v, err := a(ctx, props, f)
			if err != nil {
				return nil, err
			}
			return ctx.TypeOf(v), nil
		})
	})
}

// assertion builds a runtime type-assertion operator: "(Value) -> T",
// verifying and passing the value through, or failing at runtime.
func assertion(name, typeName string, result types.Type) *registry.Operator {
	return op(name, unary(types.Value, result), func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		a := asEval(args[0])
		key := self.Key()
		return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			v, err := a(ctx, props, f)
			if err != nil {
				return nil, err
			}
			return ctx.As(v, typeName, key)
		})
	})
}

func coercion(name string, toValue func(runtime.Context, runtime.Value) (runtime.Value, error), result types.Type) *registry.Operator {
	return op(name, unary(types.Value, result), func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		a := asEval(args[0])
		return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			v, err := a(ctx, props, f)
			if err != nil {
				return nil, err
			}
			return toValue(ctx, v)
		})
	})
}

func parseColorOp() *registry.Operator {
	return op("parse_color", unary(types.Str, types.ColorT), func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
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
			return ctx.ParseColor(s)
		})
	})
}

func rgbOp() *registry.Operator {
	sig := types.Lambda{Result: types.ColorT, Params: []types.Type{types.Num, types.Num, types.Num}}
	return op("rgb", sig, func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		r, g, b := asEval(args[0]), asEval(args[1]), asEval(args[2])
		return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			rv, gv, bv, err := evalRGB(ctx, props, f, r, g, b)
			if err != nil {
				return nil, err
			}
			return ctx.RGBA(rv, gv, bv, 1)
		})
	})
}

func rgbaOp() *registry.Operator {
	sig := types.Lambda{Result: types.ColorT, Params: []types.Type{types.Num, types.Num, types.Num, types.Num}}
	return op("rgba", sig, func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		r, g, b, a := asEval(args[0]), asEval(args[1]), asEval(args[2]), asEval(args[3])
		return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			rv, gv, bv, err := evalRGB(ctx, props, f, r, g, b)
			if err != nil {
				return nil, err
			}
			av, err := a(ctx, props, f)
			if err != nil {
				return nil, err
			}
			avn, err := ctx.ToNumber(av)
			if err != nil {
				return nil, err
			}
			return ctx.RGBA(rv, gv, bv, avn)
		})
	})
}

func evalRGB(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature, r, g, b compiler.EvalFunc) (float64, float64, float64, error) {
	rv, err := r(ctx, props, f)
	if err != nil {
		return 0, 0, 0, err
	}
	gv, err := g(ctx, props, f)
	if err != nil {
		return 0, 0, 0, err
	}
	bv, err := b(ctx, props, f)
	if err != nil {
		return 0, 0, 0, err
	}
	rn, err := ctx.ToNumber(rv)
	if err != nil {
		return 0, 0, 0, err
	}
	gn, err := ctx.ToNumber(gv)
	if err != nil {
		return 0, 0, 0, err
	}
	bn, err := ctx.ToNumber(bv)
	if err != nil {
		return 0, 0, 0, err
	}
	return rn, gn, bn, nil
}

func toRGBAOp() *registry.Operator {
	result := types.FixedLength(types.Num, 4)
	return op("to_rgba", unary(types.Value, result), func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		a := asEval(args[0])
		key := self.Key()
		return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			v, err := a(ctx, props, f)
			if err != nil {
				return nil, err
			}
			asColor, err := ctx.As(v, types.ColorT.Name, key)
			if err != nil {
				return nil, err
			}
			c, ok := asColor.(runtime.Color)
			if !ok {
				return nil, diagnostics.NewCompileError(key, diagnostics.CodeOperatorError, "to_rgba: value did not resolve to a color")
			}
			return []runtime.Value{c.R, c.G, c.B, c.A}, nil
		})
	})
}

func typeAndConversionOps() []*registry.Operator {
	return []*registry.Operator{
		typeOfOp(),
		assertion("string", types.Str.Name, types.Str),
		assertion("number", types.Num.Name, types.Num),
		assertion("boolean", types.Bool.Name, types.Bool),
		assertion("array", config.TypeArray, types.AnyLength(types.Value)),
		assertion("object", types.ObjectT.Name, types.ObjectT),
		coercion("to_string", func(ctx runtime.Context, v runtime.Value) (runtime.Value, error) { return ctx.ToString(v) }, types.Str),
		coercion("to_number", func(ctx runtime.Context, v runtime.Value) (runtime.Value, error) { return ctx.ToNumber(v) }, types.Num),
		coercion("to_boolean", func(ctx runtime.Context, v runtime.Value) (runtime.Value, error) { return ctx.ToBoolean(v) }, types.Bool),
		toRGBAOp(),
		parseColorOp(),
		rgbOp(),
		rgbaOp(),
	}
}
