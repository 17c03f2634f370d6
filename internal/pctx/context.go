// Package pctx implements ParsingContext: the immutable, path-tracked
// record threaded through the parser so every node knows its dotted key
// and the chain of enclosing operator names (needed by contextual parse
// rules such as zoom's placement restriction).
package pctx

import (
	"strconv"
	"strings"
)

// Context is immutable; deriving a child never mutates the parent.
type Context struct {
	path      []int
	ancestors []string
}

// Root returns the context for the top of the expression tree.
func Root() Context {
	return Context{}
}

// Key renders the dotted path from the root, e.g. "0.1.2". The root's key
// is the empty string.
func (c Context) Key() string {
	if len(c.path) == 0 {
		return ""
	}
	parts := make([]string, len(c.path))
	for i, p := range c.path {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ".")
}

// Path returns the raw index sequence (read-only use; callers must not
// mutate the returned slice).
func (c Context) Path() []int {
	return c.path
}

// Ancestors returns the operator names on the path from the root,
// outermost first (read-only use).
func (c Context) Ancestors() []string {
	return c.ancestors
}

// Child derives a context for the argument at index, optionally pushing
// pushAncestor onto the ancestor chain (pass "" to not push one and keep
// the current chain unchanged).
func (c Context) Child(index int, pushAncestor string) Context {
	path := make([]int, len(c.path)+1)
	copy(path, c.path)
	path[len(c.path)] = index

	ancestors := c.ancestors
	if pushAncestor != "" {
		ancestors = make([]string, len(c.ancestors)+1)
		copy(ancestors, c.ancestors)
		ancestors[len(c.ancestors)] = pushAncestor
	}

	return Context{path: path, ancestors: ancestors}
}

// LastIndex returns the final path component and whether the path is
// non-empty. Used by the zoom operator to detect "I am the input slot"
// (source index 2 of a curve call: index 0 is curve's own op name slot,
// index 1 is the interpolation spec, index 2 is the input, and the stop
// pairs start at index 3 — see curveParse).
func (c Context) LastIndex() (int, bool) {
	if len(c.path) == 0 {
		return 0, false
	}
	return c.path[len(c.path)-1], true
}

// CurrentAncestor returns the innermost enclosing operator name, if any.
func (c Context) CurrentAncestor() (string, bool) {
	if len(c.ancestors) == 0 {
		return "", false
	}
	return c.ancestors[len(c.ancestors)-1], true
}
