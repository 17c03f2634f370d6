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
	"github.com/cartexpr/cartexpr/pkg/runtime"
)

// matchCase pairs one case's raw dispatch labels (scalars, or — via the
// array sugar — several scalars sharing one output) with the index into
// the Call's Args of the parsed output expression for that case.
type matchCase struct {
	Labels     []interface{}
	ValueIndex int
}

// matchExtra is the Call.Extra payload match's custom parse attaches;
// the checker and compiler drivers pass it through untouched.
type matchExtra struct {
	Cases []matchCase
}

// matchSig: (IN, {OUT}*, OUT) -> OUT. Labels never enter the Lambda's
// Params — they are raw dispatch keys, not type-checked sub-expressions.
func matchSig() types.Lambda {
	in := types.Typename{Name: "IN"}
	out := types.Typename{Name: "OUT"}
	return types.Lambda{
		Result: out,
		Params: []types.Type{
			in,
			types.NArgs{Min: 0, Items: []types.Type{out}},
			out,
		},
	}
}

func matchParse(rawArgs []interface{}, ctx pctx.Context, key string, parseArg registry.ArgParser) (expr.Expression, error) {
	if len(rawArgs) < 3 || len(rawArgs)%2 != 0 {
		return nil, diagnostics.NewParseError(key, diagnostics.CodeBadArity, 3, len(rawArgs))
	}

	inputRaw := rawArgs[0]
	pairs := rawArgs[1 : len(rawArgs)-1]
	defaultRaw := rawArgs[len(rawArgs)-1]

	inputExpr, err := parseArg(inputRaw, ctx.Child(1, config.OpMatch))
	if err != nil {
		return nil, err
	}

	args := []expr.Expression{inputExpr}
	var cases []matchCase
	seen := map[interface{}]bool{}
	var labelKind string

	for i := 0; i+1 < len(pairs); i += 2 {
		rawLabel := pairs[i]
		rawVal := pairs[i+1]
		// pairs[i] is rawArgs[i+1]; overall argument position (matching
		// ctx.Child's index-1-based-per-operand numbering) is i+2.
		labelPos := i + 2
		valPos := i + 3

		labels, kind, err := normalizeLabels(rawLabel, key, labelPos)
		if err != nil {
			return nil, err
		}
		if labelKind == "" {
			labelKind = kind
		} else if labelKind != kind {
			return nil, diagnostics.NewParseError(childKeyMatch(key, labelPos), diagnostics.CodeTypeMismatch,
				fmt.Sprintf("match labels must share a type: expected %s, got %s", labelKind, kind))
		}
		for _, l := range labels {
			if seen[l] {
				return nil, diagnostics.NewParseError(childKeyMatch(key, labelPos), diagnostics.CodeDuplicateLabel, l)
			}
			seen[l] = true
		}

		valExpr, err := parseArg(rawVal, ctx.Child(valPos, config.OpMatch))
		if err != nil {
			return nil, err
		}
		args = append(args, valExpr)
		cases = append(cases, matchCase{Labels: labels, ValueIndex: len(args) - 1})
	}

	defaultExpr, err := parseArg(defaultRaw, ctx.Child(len(rawArgs), config.OpMatch))
	if err != nil {
		return nil, err
	}
	args = append(args, defaultExpr)

	return &expr.Call{
		KeyPath: key,
		Op:      config.OpMatch,
		Args:    args,
		Typ:     matchSig(),
		Extra:   matchExtra{Cases: cases},
	}, nil
}

// normalizeLabels accepts a literal scalar or an array of literal scalars
// of one kind, returning the flattened label set and its scalar kind tag
// ("string", "number", "boolean"). Numeric labels are canonicalized to
// float64 here, matching the float64 runtime.Value every numeric input
// actually evaluates to (internal/compiler's literal decoding and the
// standard operator set never produce int/int64 Values) — otherwise a
// label written as a JSON/YAML integer would never compare equal to the
// input at match time.
func normalizeLabels(raw interface{}, key string, idx int) ([]interface{}, string, error) {
	items, isArray := raw.([]interface{})
	if !isArray {
		items = []interface{}{raw}
	}
	if len(items) == 0 {
		return nil, "", diagnostics.NewParseError(childKeyMatch(key, idx), diagnostics.CodeBadLiteral)
	}
	var kind string
	normalized := make([]interface{}, len(items))
	for i, it := range items {
		k, ok := scalarKind(it)
		if !ok {
			return nil, "", diagnostics.NewParseError(childKeyMatch(key, idx), diagnostics.CodeBadLiteral)
		}
		if kind == "" {
			kind = k
		} else if kind != k {
			return nil, "", diagnostics.NewParseError(childKeyMatch(key, idx), diagnostics.CodeTypeMismatch,
				fmt.Sprintf("match label array must share a type: expected %s, got %s", kind, k))
		}
		if k == "number" {
			it = toFloat64(it)
		}
		normalized[i] = it
	}
	return normalized, kind, nil
}

// toFloat64 canonicalizes any of the numeric kinds scalarKind accepts to
// float64.
func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		panic(fmt.Sprintf("ops: toFloat64 called with non-numeric %T", v))
	}
}

func scalarKind(v interface{}) (string, bool) {
	switch v.(type) {
	case string:
		return "string", true
	case float64, int, int64:
		return "number", true
	case bool:
		return "boolean", true
	default:
		return "", false
	}
}

func childKeyMatch(key string, idx int) string {
	if key == "" {
		return fmt.Sprintf("%d", idx)
	}
	return fmt.Sprintf("%s.%d", key, idx)
}

func matchCompile(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
	extra, ok := self.Extra.(matchExtra)
	if !ok {
		panic("ops: match compiled without its parse-time Extra payload")
	}

	input := asEval(args[0])
	defaultEval := asEval(args[len(args)-1])
	valueEvals := make(map[int]compiler.EvalFunc, len(extra.Cases))
	for _, c := range extra.Cases {
		valueEvals[c.ValueIndex] = asEval(args[c.ValueIndex])
	}

	return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
		iv, err := input(ctx, props, f)
		if err != nil {
			return nil, err
		}
		unwrapped := ctx.Unwrap(iv)
		for _, c := range extra.Cases {
			for _, label := range c.Labels {
				if unwrapped == label {
					return valueEvals[c.ValueIndex](ctx, props, f)
				}
			}
		}
		return defaultEval(ctx, props, f)
	})
}

func matchOp() *registry.Operator {
	return &registry.Operator{
		OpName:    config.OpMatch,
		Sig:       matchSig(),
		ParseFn:   matchParse,
		CompileFn: matchCompile,
	}
}
