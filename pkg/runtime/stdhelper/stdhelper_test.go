package stdhelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartexpr/cartexpr/internal/config"
	"github.com/cartexpr/cartexpr/pkg/runtime"
)

func thunkOf(v runtime.Value) runtime.Thunk {
	return func() (runtime.Value, error) { return v, nil }
}

func TestToStringToNumberToBoolean(t *testing.T) {
	h := New()

	s, err := h.ToString(3.5)
	require.NoError(t, err)
	assert.Equal(t, "3.5", s)

	n, err := h.ToNumber("42")
	require.NoError(t, err)
	assert.Equal(t, 42.0, n)

	b, err := h.ToBoolean("")
	require.NoError(t, err)
	assert.False(t, b)

	b, err = h.ToBoolean(0.0)
	require.NoError(t, err)
	assert.False(t, b)

	b, err = h.ToBoolean([]runtime.Value{1.0})
	require.NoError(t, err)
	assert.True(t, b)
}

func TestGetHasAt(t *testing.T) {
	h := New()
	obj := map[string]runtime.Value{"name": "X"}

	v, err := h.Get(obj, "name", "")
	require.NoError(t, err)
	assert.Equal(t, "X", v)

	v, err = h.Get(obj, "missing", "")
	require.NoError(t, err)
	assert.Nil(t, v)

	ok, err := h.Has(obj, "name", "")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Has(obj, "missing", "")
	require.NoError(t, err)
	assert.False(t, ok)

	arr := []runtime.Value{"a", "b", "c"}
	v, err = h.At(1, arr)
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	_, err = h.At(9, arr)
	assert.Error(t, err)
}

func TestParseColorShortAndLongHexWithAlpha(t *testing.T) {
	h := New()

	c, err := h.ParseColor("#f00")
	require.NoError(t, err)
	assert.Equal(t, runtime.Color{R: 255, G: 0, B: 0, A: 1}, c)

	c, err = h.ParseColor("#ff000080")
	require.NoError(t, err)
	assert.Equal(t, 255.0, c.R)
	assert.InDelta(t, 128.0/255.0, c.A, 0.01)

	_, err = h.ParseColor("not-a-color")
	assert.Error(t, err)
}

func TestRGBAClamps(t *testing.T) {
	h := New()
	c, err := h.RGBA(-10, 300, 128, 2)
	require.NoError(t, err)
	assert.Equal(t, runtime.Color{R: 0, G: 255, B: 128, A: 1}, c)
}

func TestTypeOf(t *testing.T) {
	h := New()
	assert.Equal(t, config.TypeNull, h.TypeOf(nil))
	assert.Equal(t, config.TypeString, h.TypeOf("x"))
	assert.Equal(t, config.TypeNumber, h.TypeOf(1.0))
	assert.Equal(t, config.TypeBoolean, h.TypeOf(true))
	assert.Equal(t, config.TypeArray, h.TypeOf([]runtime.Value{}))
	assert.Equal(t, config.TypeObject, h.TypeOf(map[string]runtime.Value{}))
	assert.Equal(t, config.TypeColor, h.TypeOf(runtime.Color{}))
}

func TestCoalesceFirstSuccess(t *testing.T) {
	h := New()
	failing := func() (runtime.Value, error) { return nil, assertErr() }
	v, err := h.Coalesce(failing, thunkOf("ok"), thunkOf("never reached"))
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestCoalesceAllFail(t *testing.T) {
	h := New()
	failing := func() (runtime.Value, error) { return nil, assertErr() }
	_, err := h.Coalesce(failing, failing)
	assert.Error(t, err)
}

func assertErr() error { return &stubErr{} }

type stubErr struct{}

func (*stubErr) Error() string { return "stub failure" }

func TestEvaluateCurveStepClampsAndHolds(t *testing.T) {
	h := New()
	interp := runtime.Interpolation{Kind: config.InterpStep}
	stopIns := []float64{0, 10, 20}
	outs := []runtime.Thunk{thunkOf(1.0), thunkOf(2.0), thunkOf(3.0)}

	v, err := h.EvaluateCurve(-5, stopIns, outs, interp, config.OutputNumber)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = h.EvaluateCurve(15, stopIns, outs, interp, config.OutputNumber)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	v, err = h.EvaluateCurve(100, stopIns, outs, interp, config.OutputNumber)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
}

func TestEvaluateCurveLinear(t *testing.T) {
	h := New()
	interp := runtime.Interpolation{Kind: config.InterpLinear}
	stopIns := []float64{0, 4}
	outs := []runtime.Thunk{thunkOf(10.0), thunkOf(20.0)}

	v, err := h.EvaluateCurve(2, stopIns, outs, interp, config.OutputNumber)
	require.NoError(t, err)
	assert.Equal(t, 15.0, v)
}

// Matches the spec's literal exponential scenario: curve(["exponential", 2],
// zoom, 0, 10, 4, 20) at zoom=2 -> 10 * 2^((2-0)/(4-0)*log2(20/10)).
func TestEvaluateCurveExponentialMatchesSpecScenario(t *testing.T) {
	h := New()
	interp := runtime.Interpolation{Kind: config.InterpExponential, Base: 2}
	stopIns := []float64{0, 4}
	outs := []runtime.Thunk{thunkOf(10.0), thunkOf(20.0)}

	v, err := h.EvaluateCurve(2, stopIns, outs, interp, config.OutputNumber)
	require.NoError(t, err)
	assert.InDelta(t, 14.142135, v.(float64), 1e-4)
}

func TestEvaluateCurveColorInterpolation(t *testing.T) {
	h := New()
	interp := runtime.Interpolation{Kind: config.InterpLinear}
	stopIns := []float64{0, 10}
	outs := []runtime.Thunk{
		thunkOf(runtime.Color{R: 0, G: 0, B: 0, A: 1}),
		thunkOf(runtime.Color{R: 100, G: 200, B: 50, A: 0}),
	}

	v, err := h.EvaluateCurve(5, stopIns, outs, interp, config.OutputColor)
	require.NoError(t, err)
	c := v.(runtime.Color)
	assert.InDelta(t, 50, c.R, 0.001)
	assert.InDelta(t, 100, c.G, 0.001)
	assert.InDelta(t, 0.5, c.A, 0.001)
}
