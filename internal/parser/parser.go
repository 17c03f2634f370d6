// Package parser walks the raw, JSON-like AST and produces a tree of typed
// Expression nodes, recording a dotted path for each node and tracking
// operator ancestry for contextual parse rules (spec §4.3).
package parser

import (
	"fmt"

	"github.com/cartexpr/cartexpr/internal/diagnostics"
	"github.com/cartexpr/cartexpr/internal/expr"
	"github.com/cartexpr/cartexpr/internal/pctx"
	"github.com/cartexpr/cartexpr/internal/registry"
)

// Parse implements the parser rules in order: null/scalar promotion, the
// array-of-[opname, ...args] shape, the "literal" escape hatch, unknown
// operator names, and delegation to the operator's own Parse (default or
// overridden).
func Parse(raw interface{}, ctx pctx.Context, reg *registry.Registry) (expr.Expression, error) {
	key := ctx.Key()

	if raw == nil {
		return promoteLiteral(nil, key)
	}

	arr, isArray := raw.([]interface{})
	if !isArray {
		switch raw.(type) {
		case string, bool, float64, int, int64:
			return promoteLiteral(raw, key)
		default:
			return nil, diagnostics.NewParseError(key, diagnostics.CodeNotArray)
		}
	}

	if len(arr) == 0 {
		return nil, diagnostics.NewParseError(key, diagnostics.CodeEmptyOpName)
	}

	name, isString := arr[0].(string)
	if !isString {
		return nil, diagnostics.NewParseError(childKey(key, 0), diagnostics.CodeEmptyOpName)
	}

	rest := arr[1:]

	if name == "literal" {
		if len(rest) != 1 {
			return nil, diagnostics.NewParseError(key, diagnostics.CodeBadArity, 1, len(rest))
		}
		childCtx := ctx.Child(1, "literal")
		return promoteLiteral(rest[0], childCtx.Key())
	}

	op, ok := reg.Lookup(name)
	if !ok {
		return nil, diagnostics.NewParseError(opNameKey(ctx), diagnostics.CodeUnknownOp, name)
	}

	parseArg := func(argRaw interface{}, argCtx pctx.Context) (expr.Expression, error) {
		return Parse(argRaw, argCtx, reg)
	}

	if op.ParseFn != nil {
		return op.ParseFn(rest, ctx, key, parseArg)
	}
	return DefaultParse(op, rest, ctx, key, parseArg)
}

// DefaultParse is the registry's out-of-the-box Parse implementation:
// recursively parse each remaining argument with a child context pushing
// the operator name as ancestor (argument indices start at 1, since index
// 0 is the operator name itself), then wrap the result in a Call stamped
// with the operator's declared (not yet specialized) signature.
func DefaultParse(op *registry.Operator, rawArgs []interface{}, ctx pctx.Context, key string, parseArg registry.ArgParser) (expr.Expression, error) {
	args := make([]expr.Expression, len(rawArgs))
	for i, raw := range rawArgs {
		childCtx := ctx.Child(i+1, op.Name())
		parsed, err := parseArg(raw, childCtx)
		if err != nil {
			return nil, err
		}
		args[i] = parsed
	}
	return &expr.Call{
		KeyPath: key,
		Op:      op.Name(),
		Args:    args,
		Typ:     op.Signature(),
	}, nil
}

func childKey(key string, idx int) string {
	if key == "" {
		return fmt.Sprintf("%d", idx)
	}
	return fmt.Sprintf("%s.%d", key, idx)
}

func opNameKey(ctx pctx.Context) string {
	return childKey(ctx.Key(), 0)
}
