package cartexpr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartexpr/cartexpr/pkg/runtime"
	"github.com/cartexpr/cartexpr/pkg/runtime/stdhelper"
)

type testFeature struct {
	props map[string]runtime.Value
	geom  string
	id    runtime.Value
}

func (f testFeature) Properties() map[string]runtime.Value { return f.props }
func (f testFeature) GeometryType() string                 { return f.geom }
func (f testFeature) ID() runtime.Value                     { return f.id }

var helper = stdhelper.New()

func TestAdditionIsFeatureAndZoomConstant(t *testing.T) {
	raw := []interface{}{"+", 2.0, 3.0, 4.0}
	res := Compile(raw, nil, helper)
	require.True(t, res.Ok, "%v", res.Errors)

	v, err := res.Evaluate(nil, testFeature{})
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)
	assert.True(t, res.IsFeatureConstant)
	assert.True(t, res.IsZoomConstant)
}

func TestGetIsNotFeatureConstant(t *testing.T) {
	raw := []interface{}{"get", "name"}
	res := Compile(raw, nil, helper)
	require.True(t, res.Ok, "%v", res.Errors)

	f := testFeature{props: map[string]runtime.Value{"name": "X"}}
	v, err := res.Evaluate(nil, f)
	require.NoError(t, err)
	assert.Equal(t, "X", v)
	assert.False(t, res.IsFeatureConstant)
}

func TestBareZoomIsOutOfPlace(t *testing.T) {
	raw := []interface{}{"zoom"}
	res := Compile(raw, nil, helper)
	require.False(t, res.Ok)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "", res.Errors[0].Key)
	assert.Equal(t, `The "zoom" expression may only be used as the input to a top-level "curve" expression.`, res.Errors[0].Message)
}

func TestCurveExponentialOverZoomIsNotZoomConstant(t *testing.T) {
	raw := []interface{}{"curve", []interface{}{"exponential", 2.0}, []interface{}{"zoom"}, 0.0, 10.0, 4.0, 20.0}
	res := Compile(raw, nil, helper)
	require.True(t, res.Ok, "%v", res.Errors)
	assert.False(t, res.IsZoomConstant)

	v, err := res.Evaluate(map[string]runtime.Value{"zoom": 2.0}, testFeature{})
	require.NoError(t, err)
	assert.InDelta(t, 10*math.Pow(2, 0.5*math.Log2(2)), v.(float64), 1e-6)
}

func TestComparisonTypeMismatch(t *testing.T) {
	raw := []interface{}{"==", 1.0, "a"}
	res := Compile(raw, nil, helper)
	require.False(t, res.Ok)
	require.NotEmpty(t, res.Errors)
}

func TestCaseEvaluatesMatchingBranch(t *testing.T) {
	raw := []interface{}{"case", []interface{}{"==", 1.0, 1.0}, "yes", "no"}
	res := Compile(raw, nil, helper)
	require.True(t, res.Ok, "%v", res.Errors)

	v, err := res.Evaluate(nil, testFeature{})
	require.NoError(t, err)
	assert.Equal(t, "yes", v)
}

func TestLiteralRoundTripsArray(t *testing.T) {
	raw := []interface{}{"literal", []interface{}{1.0, 2.0, 3.0}}
	res := Compile(raw, nil, helper)
	require.True(t, res.Ok, "%v", res.Errors)

	v, err := res.Evaluate(nil, testFeature{})
	require.NoError(t, err)
	assert.Equal(t, []runtime.Value{1.0, 2.0, 3.0}, v)
}

func TestMatchDispatchesOnLabel(t *testing.T) {
	raw := []interface{}{"match", []interface{}{"get", "category"}, "a", 1.0, "b", 2.0, 0.0}
	res := Compile(raw, nil, helper)
	require.True(t, res.Ok, "%v", res.Errors)

	f := testFeature{props: map[string]runtime.Value{"category": "b"}}
	v, err := res.Evaluate(nil, f)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestCoalesceReturnsNilFromMissingGet(t *testing.T) {
	raw := []interface{}{"coalesce", []interface{}{"get", "missing"}, "default"}
	res := Compile(raw, nil, helper)
	require.True(t, res.Ok, "%v", res.Errors)

	v, err := res.Evaluate(nil, testFeature{props: map[string]runtime.Value{}})
	require.NoError(t, err)
	// get of a missing key succeeds with nil, not an error, so coalesce
	// returns the first operand's nil rather than falling through.
	assert.Nil(t, v)
}
