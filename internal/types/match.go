package types

import (
	"fmt"
	"strings"
)

// Bindings maps a Typename's name to the concrete Type it was resolved to.
type Bindings map[string]Type

// Clone returns a shallow copy, so callers can extend bindings along one
// branch of the checker's recursion without mutating a sibling's view.
func (b Bindings) Clone() Bindings {
	out := make(Bindings, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// MatchError explains why expected did not match actual; Reasons holds the
// per-member failures collected while trying a Variant's alternatives.
type MatchError struct {
	Expected Type
	Actual   Type
	Reasons  []string
}

func (e *MatchError) Error() string {
	if len(e.Reasons) > 0 {
		return fmt.Sprintf("expected %s, got %s (%s)", e.Expected, e.Actual, strings.Join(e.Reasons, "; "))
	}
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
}

// Match attempts to find a substitution under which actual satisfies
// expected, threading bindings for any Typename encountered in expected.
// It never mutates the bindings map passed in; it returns a new one.
func Match(expected, actual Type, bindings Bindings) (Bindings, error) {
	if bindings == nil {
		bindings = Bindings{}
	}

	if IsPrimitive(expected, Value.Name) {
		return bindings, nil
	}

	switch exp := expected.(type) {
	case Typename:
		if bound, ok := bindings[exp.Name]; ok {
			return Match(bound, actual, bindings)
		}
		next := bindings.Clone()
		next[exp.Name] = actual
		return next, nil

	case Variant:
		var reasons []string
		for _, member := range exp.Members {
			if next, err := Match(member, actual, bindings); err == nil {
				return next, nil
			} else {
				reasons = append(reasons, err.Error())
			}
		}
		return nil, &MatchError{Expected: expected, Actual: actual, Reasons: reasons}

	case Array:
		act, ok := actual.(Array)
		if !ok {
			return nil, &MatchError{Expected: expected, Actual: actual}
		}
		next, err := Match(exp.Item, act.Item, bindings)
		if err != nil {
			return nil, &MatchError{Expected: expected, Actual: actual, Reasons: []string{err.Error()}}
		}
		if exp.Length != nil {
			if act.Length == nil || *act.Length != *exp.Length {
				return nil, &MatchError{Expected: expected, Actual: actual}
			}
		}
		return next, nil

	case Primitive:
		act, ok := actual.(Primitive)
		if !ok || act.Name != exp.Name {
			return nil, &MatchError{Expected: expected, Actual: actual}
		}
		return bindings, nil

	default:
		return nil, &MatchError{Expected: expected, Actual: actual}
	}
}
