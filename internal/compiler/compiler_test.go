package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartexpr/cartexpr/internal/expr"
	"github.com/cartexpr/cartexpr/internal/registry"
	"github.com/cartexpr/cartexpr/internal/types"
	"github.com/cartexpr/cartexpr/pkg/runtime"
)

func callOf(key, op string, args []expr.Expression, result types.Type) *expr.Call {
	return &expr.Call{KeyPath: key, Op: op, Args: args, Typ: types.Lambda{Result: result, Params: nil}}
}

func identityOp() *registry.Operator {
	return &registry.Operator{
		OpName: "identity",
		Sig:    types.Lambda{Result: types.Num, Params: []types.Type{types.Num}},
		CompileFn: func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
			child := args[0]
			return registry.CompileOutcome{
				Emitted: EvalFunc(func(ctx runtime.Context, props map[string]runtime.Value, feature runtime.Feature) (runtime.Value, error) {
					return child.Emitted.(EvalFunc)(ctx, props, feature)
				}),
			}
		},
	}
}

func pinnedImpureOp() *registry.Operator {
	falseVal := false
	return &registry.Operator{
		OpName: "pinned",
		Sig:    types.Lambda{Result: types.Num, Params: []types.Type{types.Num}},
		CompileFn: func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
			return registry.CompileOutcome{
				Emitted: EvalFunc(func(runtime.Context, map[string]runtime.Value, runtime.Feature) (runtime.Value, error) {
					return 0.0, nil
				}),
				IsFeatureConstant: &falseVal,
			}
		},
	}
}

func boomOp() *registry.Operator {
	return &registry.Operator{
		OpName: "boom",
		Sig:    types.Lambda{Result: types.Num, Params: []types.Type{types.Num}},
		CompileFn: func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
			return registry.CompileOutcome{Errors: []error{errors.New("deliberately broken")}}
		},
	}
}

func wrapOp(t *testing.T) *registry.Operator {
	return &registry.Operator{
		OpName: "wrap",
		Sig:    types.Lambda{Result: types.Num, Params: []types.Type{types.Num}},
		CompileFn: func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
			t.Fatal("wrap's CompileFn must not run when its argument failed to compile")
			return registry.CompileOutcome{}
		},
	}
}

func TestCompileLiteralIsAlwaysConstant(t *testing.T) {
	lit := &expr.Literal{KeyPath: "0", Typ: types.Num}
	compiled, errs := Compile(lit, registry.MustNew())
	assert.Empty(t, errs)
	assert.True(t, compiled.IsFeatureConstant)
	assert.True(t, compiled.IsZoomConstant)
	v, err := compiled.Emitted(nil, nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestCompileCallInheritsPurityFromChildren(t *testing.T) {
	reg := registry.MustNew(identityOp())
	lit := &expr.Literal{KeyPath: "0.1", Typ: types.Num}
	call := callOf("0", "identity", []expr.Expression{lit}, types.Num)

	compiled, errs := Compile(call, reg)
	require.Empty(t, errs)
	assert.True(t, compiled.IsFeatureConstant)
	assert.True(t, compiled.IsZoomConstant)
	assert.Equal(t, types.Num, compiled.Type)
}

func TestCompileCallOutcomeCanPinImpurity(t *testing.T) {
	reg := registry.MustNew(pinnedImpureOp())
	lit := &expr.Literal{KeyPath: "0.1", Typ: types.Num}
	call := callOf("0", "pinned", []expr.Expression{lit}, types.Num)

	compiled, errs := Compile(call, reg)
	require.Empty(t, errs)
	assert.False(t, compiled.IsFeatureConstant, "operator outcome pinned IsFeatureConstant=false despite a constant child")
	assert.True(t, compiled.IsZoomConstant)
}

func TestCompileCallOperatorErrorSurfacesAtNodeKey(t *testing.T) {
	reg := registry.MustNew(boomOp())
	lit := &expr.Literal{KeyPath: "0.1", Typ: types.Num}
	call := callOf("0", "boom", []expr.Expression{lit}, types.Num)

	_, errs := Compile(call, reg)
	require.Len(t, errs, 1)
	assert.Equal(t, "0", errs[0].Key)
}

func TestCompileSkipsOperatorWhenArgumentFailedToCompile(t *testing.T) {
	reg := registry.MustNew(boomOp(), wrapOp(t))
	inner := callOf("0.1", "boom", []expr.Expression{&expr.Literal{KeyPath: "0.1.1", Typ: types.Num}}, types.Num)
	outer := callOf("0", "wrap", []expr.Expression{inner}, types.Num)

	_, errs := Compile(outer, reg)
	require.NotEmpty(t, errs)
}

func TestCompileUnknownOperatorPanics(t *testing.T) {
	reg := registry.MustNew()
	call := callOf("0", "nope", nil, types.Num)
	assert.Panics(t, func() { Compile(call, reg) })
}
