package ops

import (
	"fmt"

	"github.com/cartexpr/cartexpr/internal/compiler"
	"github.com/cartexpr/cartexpr/internal/config"
	"github.com/cartexpr/cartexpr/internal/diagnostics"
	"github.com/cartexpr/cartexpr/internal/expr"
	"github.com/cartexpr/cartexpr/internal/pctx"
	"github.com/cartexpr/cartexpr/internal/registry"
	"github.com/cartexpr/cartexpr/internal/types"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cartexpr/cartexpr/pkg/runtime"
)

// curveSig: (Number, {Number, T}+) -> T. The repeating stop pairs let the
// checker's existing NArgs/generic machinery pin every stop output to one
// unified T; curve's own compile step layers the output-kind and
// monotonicity rules the general checker has no notion of.
func curveSig() types.Lambda {
	t := types.Typename{Name: "T"}
	return types.Lambda{
		Result: t,
		Params: []types.Type{
			types.Num,
			types.NArgs{Min: 1, Items: []types.Type{types.Num, t}},
		},
	}
}

func curveParse(rawArgs []interface{}, ctx pctx.Context, key string, parseArg registry.ArgParser) (expr.Expression, error) {
	if len(rawArgs) < 1 {
		return nil, diagnostics.NewParseError(childKeyMatch(key, 1), diagnostics.CodeBadCurveSpec, "missing interpolation spec")
	}

	interp, err := parseInterpolation(rawArgs[0], key)
	if err != nil {
		return nil, err
	}

	rest := rawArgs[1:]
	args := make([]expr.Expression, len(rest))
	for i, raw := range rest {
		// Preserve original source positions: rawArgs[0] is the
		// interpolation slot (index 1), so rest[i] is index i+2.
		childCtx := ctx.Child(i+2, config.OpCurve)
		parsed, err := parseArg(raw, childCtx)
		if err != nil {
			return nil, err
		}
		args[i] = parsed
	}

	return &expr.Call{
		KeyPath: key,
		Op:      config.OpCurve,
		Args:    args,
		Typ:     curveSig(),
		Extra:   interp,
	}, nil
}

func parseInterpolation(raw interface{}, key string) (runtime.Interpolation, error) {
	arr, ok := raw.([]interface{})
	if !ok || len(arr) == 0 {
		return runtime.Interpolation{}, diagnostics.NewParseError(childKeyMatch(key, 1), diagnostics.CodeBadCurveSpec, "interpolation spec must be a non-empty array")
	}
	kind, ok := arr[0].(string)
	if !ok {
		return runtime.Interpolation{}, diagnostics.NewParseError(childKeyMatch(key, 1), diagnostics.CodeBadCurveSpec, "interpolation kind must be a string")
	}

	switch kind {
	case config.InterpStep:
		if len(arr) != 1 {
			return runtime.Interpolation{}, diagnostics.NewParseError(childKeyMatch(key, 1), diagnostics.CodeBadCurveSpec, `"step" takes no further arguments`)
		}
		return runtime.Interpolation{Kind: config.InterpStep}, nil

	case config.InterpLinear:
		if len(arr) != 1 {
			return runtime.Interpolation{}, diagnostics.NewParseError(childKeyMatch(key, 1), diagnostics.CodeBadCurveSpec, `"linear" takes no further arguments`)
		}
		return runtime.Interpolation{Kind: config.InterpLinear}, nil

	case config.InterpExponential:
		if len(arr) != 2 {
			return runtime.Interpolation{}, diagnostics.NewParseError(childKeyMatch(key, 1), diagnostics.CodeBadCurveSpec, `"exponential" requires exactly one base argument`)
		}
		base, ok := toLiteralNumber(arr[1])
		if !ok {
			return runtime.Interpolation{}, diagnostics.NewParseError(childKeyMatch(key, 1), diagnostics.CodeBadCurveSpec, "exponential base must be a literal number")
		}
		return runtime.Interpolation{Kind: config.InterpExponential, Base: base}, nil

	default:
		return runtime.Interpolation{}, diagnostics.NewParseError(childKeyMatch(key, 1), diagnostics.CodeBadCurveSpec, fmt.Sprintf("unknown interpolation kind %q", kind))
	}
}

func toLiteralNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func curveCompile(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
	interp, ok := self.Extra.(runtime.Interpolation)
	if !ok {
		panic("ops: curve compiled without its parse-time interpolation Extra")
	}
	if len(args) < 3 || len(args)%2 != 1 {
		return emitErr(fmt.Errorf("curve requires an input and at least one stop pair"))
	}

	input := asEval(args[0])
	stopArgs := args[1:]
	n := len(stopArgs) / 2

	outputKind, err := curveOutputKind(stopArgs[1].Type, interp.Kind)
	if err != nil {
		return emitErr(err)
	}

	stopIns := make([]float64, n)
	stopOutEvals := make([]compiler.EvalFunc, n)

	for i := 0; i < n; i++ {
		stopInArg := stopArgs[2*i]
		stopOutArg := stopArgs[2*i+1]

		lit, isLiteral := stopInArg.Source.(*expr.Literal)
		if !isLiteral {
			return emitErr(fmt.Errorf("curve stop input %d must be a literal number, not a computed expression", i))
		}
		numVal, isNum := lit.Value.GetKind().(*structpb.Value_NumberValue)
		if !isNum {
			return emitErr(fmt.Errorf("curve stop input %d must be a literal number", i))
		}
		val := numVal.NumberValue
		if i > 0 && val <= stopIns[i-1] {
			return emitErr(fmt.Errorf("curve stop inputs must be strictly ascending: stop %d (%g) does not exceed stop %d (%g)", i, val, i-1, stopIns[i-1]))
		}
		stopIns[i] = val
		stopOutEvals[i] = asEval(stopOutArg)
	}

	key := self.Key()
	var eval compiler.EvalFunc = func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
		inputVal, err := input(ctx, props, f)
		if err != nil {
			return nil, err
		}
		inputNum, err := ctx.ToNumber(inputVal)
		if err != nil {
			return nil, err
		}
		thunks := make([]runtime.Thunk, n)
		for i, outEval := range stopOutEvals {
			outEval := outEval
			thunks[i] = func() (runtime.Value, error) { return outEval(ctx, props, f) }
		}
		result, err := ctx.EvaluateCurve(inputNum, stopIns, thunks, interp, outputKind)
		if err != nil {
			return nil, diagnostics.NewCompileError(key, diagnostics.CodeOperatorError, err.Error())
		}
		return result, nil
	}

	return emit(eval)
}

func curveOutputKind(t types.Type, interpKind string) (string, error) {
	switch {
	case types.IsPrimitive(t, config.TypeNumber):
		return config.OutputNumber, nil
	case types.IsPrimitive(t, config.TypeColor):
		return config.OutputColor, nil
	default:
		if arr, ok := t.(types.Array); ok && types.IsPrimitive(arr.Item, config.TypeNumber) {
			return config.OutputArray, nil
		}
		if interpKind == config.InterpStep {
			return config.OutputValue, nil
		}
		return "", fmt.Errorf("curve output type %s is only acceptable with step interpolation", t.String())
	}
}

func curveOp() *registry.Operator {
	return &registry.Operator{
		OpName:    config.OpCurve,
		Sig:       curveSig(),
		ParseFn:   curveParse,
		CompileFn: curveCompile,
	}
}
