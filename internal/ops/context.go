package ops

import (
	"github.com/cartexpr/cartexpr/internal/compiler"
	"github.com/cartexpr/cartexpr/internal/config"
	"github.com/cartexpr/cartexpr/internal/diagnostics"
	"github.com/cartexpr/cartexpr/internal/expr"
	"github.com/cartexpr/cartexpr/internal/pctx"
	"github.com/cartexpr/cartexpr/internal/registry"
	"github.com/cartexpr/cartexpr/internal/types"
	"github.com/cartexpr/cartexpr/pkg/runtime"
)

func propertiesOp() *registry.Operator {
	return op(config.OpProperties, nullary(types.ObjectT), func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		var eval compiler.EvalFunc = func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			return runtime.Value(f.Properties()), nil
		}
		out := emit(eval)
		out.IsFeatureConstant = boolPtr(false)
		return out
	})
}

func geometryTypeOp() *registry.Operator {
	return op(config.OpGeometryType, nullary(types.Str), func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		var eval compiler.EvalFunc = func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			return f.GeometryType(), nil
		}
		out := emit(eval)
		out.IsFeatureConstant = boolPtr(false)
		return out
	})
}

func idOp() *registry.Operator {
	return op(config.OpID, nullary(types.Value), func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		var eval compiler.EvalFunc = func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			return f.ID(), nil
		}
		out := emit(eval)
		out.IsFeatureConstant = boolPtr(false)
		return out
	})
}

// zoomParse implements zoom's contextual placement restriction (spec
// §4.6): zoom may only occupy the input slot (source index 2 — curve's
// own interpolation spec occupies index 1, see curveParse) of a
// top-level curve call, or of a curve that is itself an immediate child
// of a top-level coalesce.
func zoomParse(rawArgs []interface{}, ctx pctx.Context, key string, parseArg registry.ArgParser) (expr.Expression, error) {
	if len(rawArgs) != 0 {
		return nil, diagnostics.NewParseError(key, diagnostics.CodeBadArity, 0, len(rawArgs))
	}

	idx, hasIdx := ctx.LastIndex()
	parentOp, hasParent := ctx.CurrentAncestor()
	ancestors := ctx.Ancestors()

	topLevelCurve := len(ancestors) == 1
	coalesceWrappedCurve := len(ancestors) == 2 && ancestors[0] == config.OpCoalesce

	valid := hasIdx && idx == 2 && hasParent && parentOp == config.OpCurve &&
		(topLevelCurve || coalesceWrappedCurve)

	if !valid {
		return nil, diagnostics.NewParseError(key, diagnostics.CodeZoomOutOfPlace)
	}

	return &expr.Call{KeyPath: key, Op: config.OpZoom, Args: nil, Typ: types.Lambda{Result: types.Num}}, nil
}

func zoomOp() *registry.Operator {
	return &registry.Operator{
		OpName:  config.OpZoom,
		Sig:     nullary(types.Num),
		ParseFn: zoomParse,
		CompileFn: func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
			var eval compiler.EvalFunc = func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
				return props[config.ZoomKey], nil
			}
			out := emit(eval)
			out.IsZoomConstant = boolPtr(false)
			return out
		},
	}
}

func contextOps() []*registry.Operator {
	return []*registry.Operator{
		propertiesOp(),
		geometryTypeOp(),
		idOp(),
		zoomOp(),
	}
}
