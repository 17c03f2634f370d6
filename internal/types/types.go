// Package types implements the expression language's type algebra: the
// tagged union of primitives, arrays, variants, generic type variables
// (typenames), variadic parameter groups (NArgs) and lambda (operator
// signature) types.
package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cartexpr/cartexpr/internal/config"
)

// Type is the interface implemented by every member of the type algebra.
type Type interface {
	String() string
	isType()
}

// Primitive is a scalar or top/bottom-ish type: Null, String, Number,
// Boolean, Color, Object or Value (the top type).
type Primitive struct {
	Name string
}

func (Primitive) isType() {}

func (p Primitive) String() string { return p.Name }

var (
	Null    = Primitive{Name: config.TypeNull}
	Str     = Primitive{Name: config.TypeString}
	Num     = Primitive{Name: config.TypeNumber}
	Bool    = Primitive{Name: config.TypeBoolean}
	ColorT  = Primitive{Name: config.TypeColor}
	ObjectT = Primitive{Name: config.TypeObject}
	Value   = Primitive{Name: config.TypeValue}
)

// Array is an array type with an item type and optional fixed length.
// A nil Length means "any length".
type Array struct {
	Item   Type
	Length *int
}

func (Array) isType() {}

func (a Array) String() string {
	if a.Length != nil {
		return fmt.Sprintf("Array<%s, %d>", a.Item.String(), *a.Length)
	}
	return fmt.Sprintf("Array<%s>", a.Item.String())
}

// FixedLength builds an Array type with a fixed length.
func FixedLength(item Type, n int) Array {
	return Array{Item: item, Length: &n}
}

// AnyLength builds an Array type with unspecified length.
func AnyLength(item Type) Array {
	return Array{Item: item}
}

// Variant is satisfied by any one of its members.
type Variant struct {
	Members []Type
}

func (Variant) isType() {}

func (v Variant) String() string {
	parts := make([]string, len(v.Members))
	for i, m := range v.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

// Of constructs a Variant from at least one member. A single member
// collapses to that member directly (a variant of one thing is that thing).
func Of(members ...Type) Type {
	if len(members) == 1 {
		return members[0]
	}
	return Variant{Members: members}
}

// Typename is a generic type variable, meaningful only inside a Lambda
// signature; resolved by the checker's unification pass.
type Typename struct {
	Name string
}

func (Typename) isType() {}

func (t Typename) String() string { return t.Name }

// NArgs is a variadic parameter group appearing inside a Lambda's Params.
// It repeats Items as a block to cover the actual argument count, subject
// to Min/Max (Max == nil means unbounded).
type NArgs struct {
	Min   int
	Max   *int // nil == unbounded
	Items []Type
}

func (NArgs) isType() {}

func (n NArgs) String() string {
	parts := make([]string, len(n.Items))
	for i, it := range n.Items {
		parts[i] = it.String()
	}
	inner := strings.Join(parts, ", ")
	max := "∞"
	if n.Max != nil {
		max = strconv.Itoa(*n.Max)
	}
	return fmt.Sprintf("(%s){%d,%s}", inner, n.Min, max)
}

// Lambda is an operator's signature: a result type and an ordered sequence
// of parameters (plain Types and at most one NArgs, which fixed parameters
// may follow as a suffix).
type Lambda struct {
	Result Type
	Params []Type
}

func (Lambda) isType() {}

func (l Lambda) String() string {
	parts := make([]string, 0, len(l.Params))
	for _, p := range l.Params {
		if n, ok := p.(NArgs); ok {
			inner := make([]string, len(n.Items))
			for i, it := range n.Items {
				inner[i] = it.String()
			}
			parts = append(parts, strings.Join(inner, ", ")+"...")
			continue
		}
		parts = append(parts, p.String())
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(parts, ", "), l.Result.String())
}

// NArgsOf returns the NArgs group in params, if present, along with its
// index. It may appear at most once; fixed parameters after it form a
// suffix (case's "pairs..., default" shape).
func NArgsOf(params []Type) (NArgs, int, bool) {
	for i, p := range params {
		if n, ok := p.(NArgs); ok {
			return n, i, true
		}
	}
	return NArgs{}, -1, false
}

// IsPrimitive reports whether t is a Primitive with the given name.
func IsPrimitive(t Type, name string) bool {
	p, ok := t.(Primitive)
	return ok && p.Name == name
}
