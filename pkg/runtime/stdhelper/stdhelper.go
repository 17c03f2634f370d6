// Package stdhelper is the one reference implementation of runtime.Context
// this module ships (spec §6.2): just enough to drive the standard
// operator set's own tests and the CLI demo end-to-end. It is not the
// subject of the spec and intentionally grows no feature the standard
// operator set (internal/ops) doesn't require.
package stdhelper

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cartexpr/cartexpr/internal/config"
	"github.com/cartexpr/cartexpr/pkg/runtime"
)

// Helper is a minimal, dependency-free runtime.Context. Safe for
// concurrent use: it holds no mutable state.
type Helper struct{}

// New returns the reference helper context.
func New() *Helper { return &Helper{} }

var _ runtime.Context = (*Helper)(nil)

// ToString renders v the way the CLI's -json dump and diagnostics expect:
// strings pass through, numbers use Go's shortest round-trip form, bools
// render as "true"/"false", null as "", and colors/arrays/objects fall
// back to a stable bracketed form.
func (h *Helper) ToString(v runtime.Value) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(val), nil
	case runtime.Color:
		return colorToString(val), nil
	case []runtime.Value:
		parts := make([]string, len(val))
		for i, item := range val {
			s, err := h.ToString(item)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ",") + "]", nil
	case map[string]runtime.Value:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			s, err := h.ToString(val[k])
			if err != nil {
				return "", err
			}
			parts[i] = k + ":" + s
		}
		return "{" + strings.Join(parts, ",") + "}", nil
	default:
		return "", fmt.Errorf("to_string: cannot render value of type %T", v)
	}
}

// ToNumber coerces v to a float64: numbers pass through, strings parse as
// decimal, booleans are 0/1. Anything else is a runtime type error.
func (h *Helper) ToNumber(v runtime.Value) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, fmt.Errorf("to_number: %q is not a number", val)
		}
		return n, nil
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("to_number: cannot convert %s to Number", h.TypeOf(v))
	}
}

// ToBoolean coerces v to a bool: bools pass through; null is false;
// numbers are false only at zero; strings are false only when empty;
// everything else (colors, arrays, objects) is truthy.
func (h *Helper) ToBoolean(v runtime.Value) (bool, error) {
	switch val := v.(type) {
	case nil:
		return false, nil
	case bool:
		return val, nil
	case float64:
		return val != 0, nil
	case string:
		return val != "", nil
	default:
		return true, nil
	}
}

// As is the runtime type assertion backing to_rgba and the `array`/
// `object`/etc. type predicates' coercion path: it checks v already has
// the named type rather than performing any conversion.
func (h *Helper) As(v runtime.Value, typeName string, path string) (runtime.Value, error) {
	if h.TypeOf(v) != typeName {
		return nil, fmt.Errorf("%s: expected %s, got %s", path, typeName, h.TypeOf(v))
	}
	return v, nil
}

// Get reads key from obj's properties-shaped map. A missing key yields
// nil, not an error — mirrors a feature with no such property.
func (h *Helper) Get(obj runtime.Value, key string, path string) (runtime.Value, error) {
	m, ok := obj.(map[string]runtime.Value)
	if !ok {
		return nil, fmt.Errorf("%s: get expects an Object, got %s", path, h.TypeOf(obj))
	}
	return m[key], nil
}

// Has reports whether key is present in obj's map, distinguishing a
// present-but-null value from an absent one.
func (h *Helper) Has(obj runtime.Value, key string, path string) (bool, error) {
	m, ok := obj.(map[string]runtime.Value)
	if !ok {
		return false, fmt.Errorf("%s: has expects an Object, got %s", path, h.TypeOf(obj))
	}
	_, present := m[key]
	return present, nil
}

// At indexes arr at a 0-based, truncated index. Out-of-range is an error,
// matching the language's fixed-arity/strict-access stance elsewhere.
func (h *Helper) At(index float64, arr runtime.Value) (runtime.Value, error) {
	items, ok := arr.([]runtime.Value)
	if !ok {
		return nil, fmt.Errorf("at: expected an Array, got %s", h.TypeOf(arr))
	}
	i := int(index)
	if i < 0 || i >= len(items) {
		return nil, fmt.Errorf("at: index %d out of range for array of length %d", i, len(items))
	}
	return items[i], nil
}

// Object asserts v is map-shaped. The `object` type predicate goes through
// As instead; no standard operator calls Object.
func (h *Helper) Object(v runtime.Value) (map[string]runtime.Value, error) {
	m, ok := v.(map[string]runtime.Value)
	if !ok {
		return nil, fmt.Errorf("object: expected an Object, got %s", h.TypeOf(v))
	}
	return m, nil
}

// Unwrap normalizes v for match's label comparison. Values already flow
// through this helper untagged, so unwrapping is the identity.
func (h *Helper) Unwrap(v runtime.Value) runtime.Value {
	return v
}

// ParseColor accepts the CSS-ish hex forms map styles commonly use:
// "#rgb", "#rrggbb" and "#rrggbbaa". Styled on the teacher's
// parseHexColor (internal/evaluator/builtins_term.go), extended with an
// optional alpha channel.
func (h *Helper) ParseColor(s string) (runtime.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		hex = dup(hex[0]) + dup(hex[1]) + dup(hex[2])
	case 4:
		hex = dup(hex[0]) + dup(hex[1]) + dup(hex[2]) + dup(hex[3])
	}
	switch len(hex) {
	case 6, 8:
	default:
		return runtime.Color{}, fmt.Errorf("parse_color: invalid color %q", s)
	}

	r, err := hexByte(hex[0:2])
	if err != nil {
		return runtime.Color{}, fmt.Errorf("parse_color: %w", err)
	}
	g, err := hexByte(hex[2:4])
	if err != nil {
		return runtime.Color{}, fmt.Errorf("parse_color: %w", err)
	}
	b, err := hexByte(hex[4:6])
	if err != nil {
		return runtime.Color{}, fmt.Errorf("parse_color: %w", err)
	}
	a := 1.0
	if len(hex) == 8 {
		av, err := hexByte(hex[6:8])
		if err != nil {
			return runtime.Color{}, fmt.Errorf("parse_color: %w", err)
		}
		a = av / 255.0
	}
	return runtime.Color{R: r, G: g, B: b, A: a}, nil
}

func dup(b byte) string { return string(b) + string(b) }

func hexByte(s string) (float64, error) {
	n, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return 0, err
	}
	return float64(n), nil
}

// RGBA builds a Color from channel values, clamping r/g/b to [0,255] and
// a to [0,1] the way a map style's color constructors tolerate
// out-of-range input rather than rejecting it outright.
func (h *Helper) RGBA(r, g, b, a float64) (runtime.Color, error) {
	return runtime.Color{
		R: clamp(r, 0, 255),
		G: clamp(g, 0, 255),
		B: clamp(b, 0, 255),
		A: clamp(a, 0, 1),
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func colorToString(c runtime.Color) string {
	return fmt.Sprintf("rgba(%g,%g,%g,%g)", c.R, c.G, c.B, c.A)
}

// TypeOf reports the expression-language primitive name of v (config's
// primitive type constants), used by `typeOf` and every type predicate.
func (h *Helper) TypeOf(v runtime.Value) string {
	switch v.(type) {
	case nil:
		return config.TypeNull
	case string:
		return config.TypeString
	case float64:
		return config.TypeNumber
	case bool:
		return config.TypeBoolean
	case runtime.Color:
		return config.TypeColor
	case []runtime.Value:
		return config.TypeArray
	case map[string]runtime.Value:
		return config.TypeObject
	default:
		return config.TypeValue
	}
}

// Coalesce forces thunks in order, returning the first one that doesn't
// error. All failing is itself an error (there is no well-typed "empty"
// Value to fall back to).
func (h *Helper) Coalesce(thunks ...runtime.Thunk) (runtime.Value, error) {
	var lastErr error
	for _, t := range thunks {
		v, err := t()
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		return nil, fmt.Errorf("coalesce: no operands given")
	}
	return nil, fmt.Errorf("coalesce: all operands failed, last error: %w", lastErr)
}

// EvaluateCurve interpolates stopOutputs at input along stopInputs per
// interp.Kind. Stop inputs are guaranteed strictly ascending by the
// curve operator's own compile-time check (spec §4.7); this only has to
// handle the runtime side: clamping to the first/last stop and
// interpolating between the bracketing pair.
func (h *Helper) EvaluateCurve(input float64, stopInputs []float64, stopOutputs []runtime.Thunk, interp runtime.Interpolation, outputKind string) (runtime.Value, error) {
	if len(stopInputs) == 0 {
		return nil, fmt.Errorf("evaluate_curve: no stops")
	}

	if input <= stopInputs[0] {
		return stopOutputs[0]()
	}
	last := len(stopInputs) - 1
	if input >= stopInputs[last] {
		return stopOutputs[last]()
	}

	hi := sort.Search(len(stopInputs), func(i int) bool { return stopInputs[i] > input })
	lo := hi - 1

	if interp.Kind == config.InterpStep {
		return stopOutputs[lo]()
	}

	loVal, err := stopOutputs[lo]()
	if err != nil {
		return nil, err
	}
	hiVal, err := stopOutputs[hi]()
	if err != nil {
		return nil, err
	}

	t := linearProgress(stopInputs[lo], stopInputs[hi], input)

	switch outputKind {
	case config.OutputNumber:
		loN, err := h.ToNumber(loVal)
		if err != nil {
			return nil, err
		}
		hiN, err := h.ToNumber(hiVal)
		if err != nil {
			return nil, err
		}
		if interp.Kind == config.InterpExponential && loN > 0 && hiN > 0 {
			// loN * base^(t*log_base(hiN/loN)) == loN*(hiN/loN)^t for any
			// base: the declared base only gates which spec shape was
			// used, not the numeric result (spec §8 scenario 4).
			return loN * math.Pow(hiN/loN, t), nil
		}
		return loN + (hiN-loN)*t, nil

	case config.OutputColor:
		loC, ok := loVal.(runtime.Color)
		if !ok {
			return nil, fmt.Errorf("evaluate_curve: stop output is not a Color")
		}
		hiC, ok := hiVal.(runtime.Color)
		if !ok {
			return nil, fmt.Errorf("evaluate_curve: stop output is not a Color")
		}
		return runtime.Color{
			R: loC.R + (hiC.R-loC.R)*t,
			G: loC.G + (hiC.G-loC.G)*t,
			B: loC.B + (hiC.B-loC.B)*t,
			A: loC.A + (hiC.A-loC.A)*t,
		}, nil

	case config.OutputArray:
		loArr, ok := loVal.([]runtime.Value)
		hiArr, ok2 := hiVal.([]runtime.Value)
		if !ok || !ok2 || len(loArr) != len(hiArr) {
			return nil, fmt.Errorf("evaluate_curve: stop outputs are not same-length Arrays")
		}
		out := make([]runtime.Value, len(loArr))
		for i := range loArr {
			a, err := h.ToNumber(loArr[i])
			if err != nil {
				return nil, err
			}
			b, err := h.ToNumber(hiArr[i])
			if err != nil {
				return nil, err
			}
			out[i] = a + (b-a)*t
		}
		return out, nil

	default:
		return nil, fmt.Errorf("evaluate_curve: output kind %q is not interpolatable", outputKind)
	}
}

// linearProgress computes the normalized [0,1] position of input between
// the bracketing stops lo and hi.
func linearProgress(lo, hi, input float64) float64 {
	return (input - lo) / (hi - lo)
}
