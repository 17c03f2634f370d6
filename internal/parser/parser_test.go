package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartexpr/cartexpr/internal/diagnostics"
	"github.com/cartexpr/cartexpr/internal/expr"
	"github.com/cartexpr/cartexpr/internal/ops"
	"github.com/cartexpr/cartexpr/internal/parser"
	"github.com/cartexpr/cartexpr/internal/pctx"
	"github.com/cartexpr/cartexpr/internal/types"
)

var reg = ops.Standard()

func diagCode(t *testing.T, err error) diagnostics.Code {
	t.Helper()
	diagErr, ok := err.(*diagnostics.Error)
	require.True(t, ok, "expected a *diagnostics.Error, got %T", err)
	return diagErr.Code
}

func TestParseNilPromotesToNullLiteral(t *testing.T) {
	e, err := parser.Parse(nil, pctx.Root(), reg)
	require.NoError(t, err)
	lit, ok := e.(*expr.Literal)
	require.True(t, ok)
	assert.Equal(t, types.Null, lit.Typ)
}

func TestParseScalarsPromoteDirectly(t *testing.T) {
	e, err := parser.Parse("hello", pctx.Root(), reg)
	require.NoError(t, err)
	assert.Equal(t, types.Str, e.Type())

	e, err = parser.Parse(true, pctx.Root(), reg)
	require.NoError(t, err)
	assert.Equal(t, types.Bool, e.Type())

	e, err = parser.Parse(3.5, pctx.Root(), reg)
	require.NoError(t, err)
	assert.Equal(t, types.Num, e.Type())
}

func TestParseBareObjectIsNotAnArray(t *testing.T) {
	_, err := parser.Parse(map[string]interface{}{"a": 1.0}, pctx.Root(), reg)
	require.Error(t, err)
	assert.Equal(t, diagnostics.CodeNotArray, diagCode(t, err))
}

func TestParseBareArrayWithoutOpNameIsError(t *testing.T) {
	_, err := parser.Parse([]interface{}{1.0, 2.0}, pctx.Root(), reg)
	require.Error(t, err)
	assert.Equal(t, diagnostics.CodeEmptyOpName, diagCode(t, err))
}

func TestParseEmptyArrayIsError(t *testing.T) {
	_, err := parser.Parse([]interface{}{}, pctx.Root(), reg)
	require.Error(t, err)
	assert.Equal(t, diagnostics.CodeEmptyOpName, diagCode(t, err))
}

func TestParseUnknownOperatorIsError(t *testing.T) {
	_, err := parser.Parse([]interface{}{"frobnicate", 1.0}, pctx.Root(), reg)
	require.Error(t, err)
	assert.Equal(t, diagnostics.CodeUnknownOp, diagCode(t, err))
}

func TestParseLiteralEscapeHatchRoundTripsArray(t *testing.T) {
	e, err := parser.Parse([]interface{}{"literal", []interface{}{1.0, 2.0, 3.0}}, pctx.Root(), reg)
	require.NoError(t, err)
	lit, ok := e.(*expr.Literal)
	require.True(t, ok)
	assert.Equal(t, types.FixedLength(types.Num, 3), lit.Typ)
}

func TestParseLiteralEscapeHatchWrongArityIsError(t *testing.T) {
	_, err := parser.Parse([]interface{}{"literal", 1.0, 2.0}, pctx.Root(), reg)
	require.Error(t, err)
	assert.Equal(t, diagnostics.CodeBadArity, diagCode(t, err))
}

func TestParseKnownOperatorBuildsCallWithDeclaredSignature(t *testing.T) {
	e, err := parser.Parse([]interface{}{"+", 1.0, 2.0}, pctx.Root(), reg)
	require.NoError(t, err)
	call, ok := e.(*expr.Call)
	require.True(t, ok)
	assert.Equal(t, "+", call.Op)
	assert.Len(t, call.Args, 2)
	assert.Equal(t, "", call.Key())
}

func TestParseZoomOutOfPlaceIsError(t *testing.T) {
	_, err := parser.Parse([]interface{}{"zoom"}, pctx.Root(), reg)
	require.Error(t, err)
	assert.Equal(t, diagnostics.CodeZoomOutOfPlace, diagCode(t, err))
}
