// Package diagnostics implements the compiler's structured error type:
// a stable code, the phase that raised it, the dotted-path key of the
// offending sub-expression, and a human-readable message. Styled on the
// teacher's DiagnosticError, with the teacher's line/column token swapped
// for this language's dotted-path key (§6.3 of the spec).
package diagnostics

import "fmt"

// Phase identifies which pipeline stage raised the error.
type Phase string

const (
	PhaseParser   Phase = "parser"
	PhaseChecker  Phase = "checker"
	PhaseCompiler Phase = "compiler"
)

// Code is a stable, short identifier for an error kind, useful for
// programmatic matching in tests and tooling.
type Code string

const (
	// Parser codes.
	CodeNotArray       Code = "P001" // value is not an array
	CodeEmptyOpName    Code = "P002" // first element is not a string
	CodeUnknownOp      Code = "P003" // unknown expression name
	CodeBadArity       Code = "P004" // literal form wrong arity
	CodeBadLiteral     Code = "P005" // value can't be promoted to a literal
	CodeBadCurveSpec   Code = "P006" // malformed interpolation spec
	CodeZoomOutOfPlace Code = "P007" // zoom used outside curve input position
	CodeDuplicateLabel Code = "P008" // duplicate match label

	// Checker codes.
	CodeTypeMismatch  Code = "T001"
	CodeArityMismatch Code = "T002"
	CodeUnboundVar    Code = "T003"

	// Compiler codes.
	CodeOperatorError Code = "C001"
)

var templates = map[Code]string{
	CodeNotArray:       "Expected an array",
	CodeEmptyOpName:    "Expression name must be a string",
	CodeUnknownOp:      "Unknown expression %q",
	CodeBadArity:       "Expected %d arguments, got %d",
	CodeBadLiteral:     "Expected an array or object",
	CodeBadCurveSpec:   "%s",
	CodeZoomOutOfPlace: `The "zoom" expression may only be used as the input to a top-level "curve" expression.`,
	CodeDuplicateLabel: "Duplicate label %v in match expression",
	CodeTypeMismatch:   "%s",
	CodeArityMismatch:  "Expected %d arguments, got %d",
	CodeUnboundVar:     "Could not infer type of %s",
	CodeOperatorError:  "%s",
}

// Error is the internal structured diagnostic. CompileError (the public
// shape from §6.3) is its flattened projection.
type Error struct {
	Code  Code
	Phase Phase
	Key   string
	Args  []interface{}
}

func (e *Error) Error() string {
	return e.Message()
}

// Message renders the error's template against its arguments.
func (e *Error) Message() string {
	template, ok := templates[e.Code]
	if !ok {
		return fmt.Sprintf("unknown diagnostic code: %s", e.Code)
	}
	return fmt.Sprintf(template, e.Args...)
}

// New builds a phase-tagged diagnostic at the given key.
func New(phase Phase, key string, code Code, args ...interface{}) *Error {
	return &Error{Code: code, Phase: phase, Key: key, Args: args}
}

// NewParseError is a convenience constructor for the parser phase.
func NewParseError(key string, code Code, args ...interface{}) *Error {
	return New(PhaseParser, key, code, args...)
}

// NewTypeError is a convenience constructor for the checker phase.
func NewTypeError(key string, code Code, args ...interface{}) *Error {
	return New(PhaseChecker, key, code, args...)
}

// NewCompileError is a convenience constructor for the compiler phase.
func NewCompileError(key string, code Code, args ...interface{}) *Error {
	return New(PhaseCompiler, key, code, args...)
}

// CompileError is the public, minimal error shape from §6.3: just the key
// and the rendered message. It is what crosses the package boundary in a
// Result's Errors slice.
type CompileError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// Flatten projects an internal *Error down to the public CompileError shape.
func Flatten(errs []*Error) []CompileError {
	out := make([]CompileError, len(errs))
	for i, e := range errs {
		out[i] = CompileError{Key: e.Key, Message: e.Message()}
	}
	return out
}
