// Package cartexpr is the public entry point (spec §6.1): Compile walks
// parser → type checker → compiler driver against the standard operator
// set and returns a Result a caller can evaluate per map feature.
package cartexpr

import (
	"fmt"

	"github.com/cartexpr/cartexpr/internal/checker"
	"github.com/cartexpr/cartexpr/internal/compiler"
	"github.com/cartexpr/cartexpr/internal/diagnostics"
	"github.com/cartexpr/cartexpr/internal/ops"
	"github.com/cartexpr/cartexpr/internal/parser"
	"github.com/cartexpr/cartexpr/internal/pctx"
	"github.com/cartexpr/cartexpr/internal/registry"
	"github.com/cartexpr/cartexpr/internal/types"
	"github.com/cartexpr/cartexpr/pkg/runtime"
)

// Evaluator is the evaluate(mapProperties, feature) entry point of a
// successfully compiled expression (spec §6.1).
type Evaluator func(props map[string]runtime.Value, feature runtime.Feature) (runtime.Value, error)

// Result is the public return shape of Compile: either a successful
// compile carrying its type, purity bits and Evaluator, or a failed one
// carrying the accumulated errors. Exactly one of Evaluator/Errors is
// meaningful, selected by Ok.
type Result struct {
	Ok                bool
	Type              types.Type
	IsFeatureConstant bool
	IsZoomConstant    bool
	Evaluate          Evaluator
	Errors            []diagnostics.CompileError
	// Explain is the specialized expression tree's s-expression rendering,
	// populated whenever parsing+checking succeed (even if compilation
	// itself later fails), for tools like the CLI's -explain flag.
	Explain string
}

// standardRegistry is built once at package init; the registry is
// read-only and safe to share across concurrent Compile calls (spec §5).
var standardRegistry = ops.Standard()

// Registry exposes the standard operator registry, e.g. for the CLI's
// registry subcommand.
func Registry() *registry.Registry { return standardRegistry }

// Compile parses, type-checks and compiles raw (a JSON-like value: nil,
// string, bool, float64/int, []interface{} or map[string]interface{})
// against expected, using helper as the runtime collaborator bound into
// the returned Evaluator. A nil expected accepts any result type.
//
// Compile never panics: the only panics possible below this point are
// the documented internal-invariant violations (programmer bugs), which
// are recovered here and reported as a single internal CompileError,
// exactly as the teacher's CLI recovers at its own entry point.
func Compile(raw interface{}, expected types.Type, helper runtime.Context) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{
				Ok: false,
				Errors: []diagnostics.CompileError{
					{Key: "", Message: fmt.Sprintf("internal error: %v", r)},
				},
			}
		}
	}()

	if expected == nil {
		expected = types.Value
	}

	parsed, err := parser.Parse(raw, pctx.Root(), standardRegistry)
	if err != nil {
		return failureResult(err)
	}

	checked, errs := checker.Check(expected, parsed)
	if len(errs) > 0 {
		return Result{Ok: false, Errors: diagnostics.Flatten(errs)}
	}
	explain := checked.String()

	compiled, errs := compiler.Compile(checked, standardRegistry)
	if len(errs) > 0 {
		return Result{Ok: false, Errors: diagnostics.Flatten(errs), Explain: explain}
	}

	return Result{
		Ok:                true,
		Type:              compiled.Type,
		IsFeatureConstant: compiled.IsFeatureConstant,
		IsZoomConstant:    compiled.IsZoomConstant,
		Explain:           explain,
		Evaluate: func(props map[string]runtime.Value, feature runtime.Feature) (runtime.Value, error) {
			return compiled.Emitted(helper, props, feature)
		},
	}
}

func failureResult(err error) Result {
	diagErr, ok := err.(*diagnostics.Error)
	if !ok {
		return Result{Ok: false, Errors: []diagnostics.CompileError{{Key: "", Message: err.Error()}}}
	}
	return Result{Ok: false, Errors: diagnostics.Flatten([]*diagnostics.Error{diagErr})}
}

