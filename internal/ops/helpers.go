// Package ops implements the standard operator set: literal-adjacent type
// queries/conversions, accessors, feature/map context, arithmetic,
// comparisons, booleans, strings, the decision forms (case/match/coalesce)
// and curve (spec §4.6–§4.8).
package ops

import (
	"github.com/cartexpr/cartexpr/internal/compiler"
	"github.com/cartexpr/cartexpr/internal/diagnostics"
	"github.com/cartexpr/cartexpr/internal/registry"
	"github.com/cartexpr/cartexpr/internal/types"
)

// asEval casts a CompiledArg's Emitted back to an EvalFunc; every argument
// reaching an operator's Compile came from this package's own compiler
// driver, so the cast always succeeds.
func asEval(arg registry.CompiledArg) compiler.EvalFunc {
	return arg.Emitted.(compiler.EvalFunc)
}

func nullary(result types.Type) types.Lambda {
	return types.Lambda{Result: result, Params: nil}
}

func unary(param, result types.Type) types.Lambda {
	return types.Lambda{Result: result, Params: []types.Type{param}}
}

func binary(p1, p2, result types.Type) types.Lambda {
	return types.Lambda{Result: result, Params: []types.Type{p1, p2}}
}

func variadic(min int, item types.Type, result types.Type) types.Lambda {
	return types.Lambda{
		Result: result,
		Params: []types.Type{types.NArgs{Min: min, Items: []types.Type{item}}},
	}
}

func op(name string, sig types.Lambda, fn registry.CompileFunc) *registry.Operator {
	return &registry.Operator{OpName: name, Sig: sig, CompileFn: fn}
}

// emit wraps a plain evaluation closure as a registry.CompileOutcome.
func emit(fn compiler.EvalFunc) registry.CompileOutcome {
	return registry.CompileOutcome{Emitted: fn}
}

func emitErr(errs ...error) registry.CompileOutcome {
	return registry.CompileOutcome{Errors: errs}
}

func boolPtr(b bool) *bool { return &b }

var oneInt = 1

func registryLengthError(key string) error {
	return diagnostics.NewCompileError(key, diagnostics.CodeOperatorError, "length: value is neither a string nor an array")
}
