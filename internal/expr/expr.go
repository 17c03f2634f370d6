// Package expr defines Expression: the parsed and type-checked tree that
// flows from the parser through the checker to the compiler driver.
package expr

import (
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cartexpr/cartexpr/internal/types"
)

// Expression is the tagged union of Literal and Call nodes. Both carry the
// dotted-path Key used for error reporting and a Type (re-stamped by the
// checker with a specialized type — nodes are never mutated after
// construction; the checker returns a new Expression). Both also implement
// fmt.Stringer so diagnostics and test failure output can render the
// offending sub-expression without a second formatter.
type Expression interface {
	Key() string
	Type() types.Type
	String() string
	isExpression()
}

// Literal holds a scalar/array/object value encoded as a structpb.Value,
// the canonical in-memory shape for "arbitrary JSON-like value" used
// across the parser, the CLI's JSON dump, and literal round-tripping.
type Literal struct {
	KeyPath string
	Value   *structpb.Value
	Typ     types.Type
}

func (l *Literal) Key() string      { return l.KeyPath }
func (l *Literal) Type() types.Type { return l.Typ }
func (*Literal) isExpression()      {}

// String renders the literal's underlying value as compact JSON, falling
// back to its type when the value is unset (e.g. a synthetic test node).
func (l *Literal) String() string {
	if l.Value == nil {
		return l.Typ.String()
	}
	b, err := protojson.Marshal(l.Value)
	if err != nil {
		return l.Typ.String()
	}
	return string(b)
}

// Call is an operator invocation: "op" applied to a sequence of argument
// expressions. Extra carries operator-specific payload attached at parse
// time (e.g. curve's parsed interpolation spec) that compile needs but
// that isn't itself an argument expression.
type Call struct {
	KeyPath string
	Op      string
	Args    []Expression
	Typ     types.Type // a specialized types.Lambda once checked
	Extra   interface{}
}

func (c *Call) Key() string      { return c.KeyPath }
func (c *Call) Type() types.Type { return c.Typ }
func (*Call) isExpression()      {}

// String renders the call as a parenthesized s-expression, recursing into
// its arguments — used by diagnostics and test failure output to show the
// offending sub-expression without a second formatter.
func (c *Call) String() string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(c.Op)
	for _, arg := range c.Args {
		b.WriteString(" ")
		b.WriteString(arg.String())
	}
	b.WriteString(")")
	return b.String()
}

// WithType returns a copy of the expression re-stamped with t, used by the
// checker to produce the specialized tree without mutating the input.
func WithType(e Expression, t types.Type) Expression {
	switch v := e.(type) {
	case *Literal:
		cp := *v
		cp.Typ = t
		return &cp
	case *Call:
		cp := *v
		cp.Typ = t
		return &cp
	default:
		panic("expr: unknown Expression variant")
	}
}

// WithArgs returns a copy of a Call with its Args replaced, used by the
// checker to swap in the checked/specialized children.
func (c *Call) WithArgs(args []Expression) *Call {
	cp := *c
	cp.Args = args
	return &cp
}
