// Package compiler implements the compiler driver: it recurses the
// type-checked, specialized expression tree, invokes each operator's
// compile step, aggregates purity bits, and collects diagnostics (spec
// §4.5).
package compiler

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cartexpr/cartexpr/internal/diagnostics"
	"github.com/cartexpr/cartexpr/internal/expr"
	"github.com/cartexpr/cartexpr/internal/registry"
	"github.com/cartexpr/cartexpr/internal/types"
	"github.com/cartexpr/cartexpr/pkg/runtime"
)

// Compile walks a specialized expression tree and produces a
// CompiledExpression plus any errors the operators' own compile steps
// raised. Errors from a child keep the child's own key; operator compile
// errors are always attached at the node's own key, matching §7 ("errors
// from an operator's own compile step are attached with the current node's
// key").
func Compile(tree expr.Expression, reg *registry.Registry) (*CompiledExpression, []*diagnostics.Error) {
	switch node := tree.(type) {
	case *expr.Literal:
		return compileLiteral(node), nil

	case *expr.Call:
		return compileCall(node, reg)

	default:
		panic("compiler: unknown Expression variant")
	}
}

func compileLiteral(node *expr.Literal) *CompiledExpression {
	value := structpbToValue(node.Value)
	return &CompiledExpression{
		Emitted: func(runtime.Context, map[string]runtime.Value, runtime.Feature) (runtime.Value, error) {
			return value, nil
		},
		Type:              node.Typ,
		IsFeatureConstant: true,
		IsZoomConstant:    true,
		Source:            node,
	}
}

func compileCall(node *expr.Call, reg *registry.Registry) (*CompiledExpression, []*diagnostics.Error) {
	op, ok := reg.Lookup(node.Op)
	if !ok {
		// A programmer bug: the checker only produces Call nodes for
		// operators the parser resolved through this same registry.
		panic("compiler: unknown operator " + node.Op + " reached the compile stage")
	}

	var errs []*diagnostics.Error
	compiledArgs := make([]registry.CompiledArg, len(node.Args))
	childCompiled := make([]*CompiledExpression, len(node.Args))

	for i, argExpr := range node.Args {
		compiledArg, childErrs := Compile(argExpr, reg)
		errs = append(errs, childErrs...)
		childCompiled[i] = compiledArg
		compiledArgs[i] = registry.CompiledArg{
			Emitted:           compiledArg.Emitted,
			Type:              compiledArg.Type,
			IsFeatureConstant: compiledArg.IsFeatureConstant,
			IsZoomConstant:    compiledArg.IsZoomConstant,
			Source:            argExpr,
		}
	}

	if len(errs) > 0 {
		// §4.5: "If no argument errors, call the operator's compile."
		// Still produce a placeholder so a caller walking the tree
		// doesn't need to special-case a nil compiled node.
		return &CompiledExpression{
			Emitted:           failingEval(node.Key()),
			Type:              resultType(node),
			IsFeatureConstant: false,
			IsZoomConstant:    false,
			Source:            node,
		}, errs
	}

	outcome := op.CompileFn(compiledArgs, node)
	for _, e := range outcome.Errors {
		errs = append(errs, diagnostics.NewCompileError(node.Key(), diagnostics.CodeOperatorError, e.Error()))
	}
	if len(outcome.Errors) > 0 {
		return &CompiledExpression{
			Emitted:           failingEval(node.Key()),
			Type:              resultType(node),
			IsFeatureConstant: false,
			IsZoomConstant:    false,
			Source:            node,
		}, errs
	}

	featureConstant := true
	zoomConstant := true
	for _, c := range childCompiled {
		featureConstant = featureConstant && c.IsFeatureConstant
		zoomConstant = zoomConstant && c.IsZoomConstant
	}
	if outcome.IsFeatureConstant != nil {
		featureConstant = featureConstant && *outcome.IsFeatureConstant
	}
	if outcome.IsZoomConstant != nil {
		zoomConstant = zoomConstant && *outcome.IsZoomConstant
	}

	emitted, ok := outcome.Emitted.(EvalFunc)
	if !ok {
		panic("compiler: operator " + node.Op + " returned a non-EvalFunc Emitted value")
	}

	return &CompiledExpression{
		Emitted:           emitted,
		Type:              resultType(node),
		IsFeatureConstant: featureConstant,
		IsZoomConstant:    zoomConstant,
		Source:            node,
	}, errs
}

func resultType(node *expr.Call) types.Type {
	sig, ok := node.Typ.(types.Lambda)
	if !ok {
		panic("compiler: Call node's type is not a specialized Lambda")
	}
	return sig.Result
}

func failingEval(key string) EvalFunc {
	return func(runtime.Context, map[string]runtime.Value, runtime.Feature) (runtime.Value, error) {
		panic("cartexpr: attempted to evaluate expression at " + key + " which failed to compile")
	}
}

// structpbToValue decodes the parser's canonical structpb.Value encoding
// of a literal into a runtime.Value.
func structpbToValue(v *structpb.Value) runtime.Value {
	if v == nil {
		return nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil
	case *structpb.Value_BoolValue:
		return kind.BoolValue
	case *structpb.Value_NumberValue:
		return kind.NumberValue
	case *structpb.Value_StringValue:
		return kind.StringValue
	case *structpb.Value_ListValue:
		out := make([]runtime.Value, len(kind.ListValue.Values))
		for i, item := range kind.ListValue.Values {
			out[i] = structpbToValue(item)
		}
		return out
	case *structpb.Value_StructValue:
		out := make(map[string]runtime.Value, len(kind.StructValue.Fields))
		for k, item := range kind.StructValue.Fields {
			out[k] = structpbToValue(item)
		}
		return out
	default:
		return nil
	}
}
