package compiler

import (
	"github.com/cartexpr/cartexpr/internal/expr"
	"github.com/cartexpr/cartexpr/internal/types"
	"github.com/cartexpr/cartexpr/pkg/runtime"
)

// EvalFunc is the "emitted" form (§6.1 option A: tree/closure interpretation
// rather than a generated program string) — one compiled node's evaluation
// step, closing over its already-compiled children.
type EvalFunc func(ctx runtime.Context, props map[string]runtime.Value, feature runtime.Feature) (runtime.Value, error)

// CompiledExpression is the data-model record of §3: the emitted
// evaluator, its type, its purity bits, and the specialized source node it
// came from.
type CompiledExpression struct {
	Emitted           EvalFunc
	Type              types.Type
	IsFeatureConstant bool
	IsZoomConstant    bool
	Source            expr.Expression
}

// Thunk adapts a compiled child into a runtime.Thunk bound to one
// evaluation's context/properties/feature, for operators (coalesce,
// curve) that need to defer a child's evaluation.
func (c *CompiledExpression) Thunk(ctx runtime.Context, props map[string]runtime.Value, feature runtime.Feature) runtime.Thunk {
	return func() (runtime.Value, error) {
		return c.Emitted(ctx, props, feature)
	}
}
