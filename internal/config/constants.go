package config

// Version is the current cartexpr version.
// Set at build time via -ldflags, the way the teacher stamps its own Version.
var Version = "0.1.0"

// IsTestMode is a test-mode switch; no package in this module reads it, and
// diagnostic rendering is the same whatever its value.
var IsTestMode = false

// Primitive type names, shared by the type algebra and diagnostic messages.
const (
	TypeNull    = "Null"
	TypeString  = "String"
	TypeNumber  = "Number"
	TypeBoolean = "Boolean"
	TypeColor   = "Color"
	TypeObject  = "Object"
	TypeValue   = "Value"
	TypeArray   = "Array"
)

// Operator names referenced outside the ops package itself (contextual
// parse-time rules need to recognize these by name without importing ops).
const (
	OpLiteral      = "literal"
	OpZoom         = "zoom"
	OpCurve        = "curve"
	OpCoalesce     = "coalesce"
	OpMatch        = "match"
	OpCase         = "case"
	OpGet          = "get"
	OpHas          = "has"
	OpProperties   = "properties"
	OpGeometryType = "geometry_type"
	OpID           = "id"
)

// ZoomKey is the conventional key the zoom operator reads from the
// per-evaluation map-properties bag (distinct from a feature's own
// properties, which get/has read by default).
const ZoomKey = "zoom"

// Curve interpolation mode names.
const (
	InterpStep        = "step"
	InterpLinear      = "linear"
	InterpExponential = "exponential"
)

// Curve output kinds, derived from the first stop output's type.
const (
	OutputNumber = "number"
	OutputColor  = "color"
	OutputArray  = "array"
	OutputValue  = "value" // step-only: arbitrary type, no interpolation
)
