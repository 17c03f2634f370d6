// Package registry holds the operator table: the mapping from operator
// name to its compile-time contract (signature, optional parse override,
// compile function). Built once at startup and treated as read-only
// afterward, so it may be shared across concurrent compilations.
package registry

import (
	"fmt"
	"sort"

	"github.com/cartexpr/cartexpr/internal/expr"
	"github.com/cartexpr/cartexpr/internal/pctx"
	"github.com/cartexpr/cartexpr/internal/types"
)

// ParseFunc parses an operator's raw argument list into an Expression.
// parseArg is supplied by the parser so an override can recurse through
// the shared parse/context machinery without importing the parser
// package (which imports registry), avoiding an import cycle.
type ParseFunc func(rawArgs []interface{}, ctx pctx.Context, key string, parseArg ArgParser) (expr.Expression, error)

// ArgParser recursively parses a single raw argument under a child context.
type ArgParser func(raw interface{}, ctx pctx.Context) (expr.Expression, error)

// CompileOutcome is what an operator's Compile function returns.
type CompileOutcome struct {
	Emitted           interface{}
	Errors            []error
	IsFeatureConstant *bool // nil means "inherit from children"
	IsZoomConstant    *bool
}

// CompiledArg is the already-compiled form of one argument, passed to an
// operator's Compile function.
type CompiledArg struct {
	Emitted           interface{}
	Type              types.Type
	IsFeatureConstant bool
	IsZoomConstant    bool
	Source            expr.Expression
}

// CompileFunc implements an operator's emission step.
type CompileFunc func(args []CompiledArg, self *expr.Call) CompileOutcome

// Operator is one entry in the registry.
type Operator struct {
	OpName    string
	Sig       types.Lambda
	ParseFn   ParseFunc // nil selects the default parse behavior
	CompileFn CompileFunc
}

func (o *Operator) Name() string          { return o.OpName }
func (o *Operator) Signature() types.Lambda { return o.Sig }

// Registry is the read-only operator table.
type Registry struct {
	ops map[string]*Operator
}

// New builds a Registry from operator definitions, validating every
// signature's structural invariants up front (fail fast at startup rather
// than leaving a malformed signature to surface as a confusing error
// during an arbitrary later compilation).
func New(ops ...*Operator) (*Registry, error) {
	table := make(map[string]*Operator, len(ops))
	for _, op := range ops {
		if err := types.ValidateSignature(op.Sig); err != nil {
			return nil, fmt.Errorf("operator %q has an invalid signature: %w", op.OpName, err)
		}
		if _, dup := table[op.OpName]; dup {
			return nil, fmt.Errorf("duplicate operator registration: %q", op.OpName)
		}
		table[op.OpName] = op
	}
	return &Registry{ops: table}, nil
}

// Lookup returns the operator definition for name, if registered.
func (r *Registry) Lookup(name string) (*Operator, bool) {
	op, ok := r.ops[name]
	return op, ok
}

// All returns every registered operator, sorted by name, for tooling that
// walks the whole table (e.g. the CLI's registry subcommand).
func (r *Registry) All() []*Operator {
	out := make([]*Operator, 0, len(r.ops))
	for _, op := range r.ops {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OpName < out[j].OpName })
	return out
}

// MustNew panics on an invalid registry; used to build the package-level
// standard registry at init time, where a validation failure is a
// programmer bug, not a user-facing error.
func MustNew(ops ...*Operator) *Registry {
	r, err := New(ops...)
	if err != nil {
		panic(err)
	}
	return r
}
