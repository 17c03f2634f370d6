package types

import "fmt"

// ValidateSignature checks the structural invariants a Lambda signature
// must satisfy (data model §3 of the spec): a Typename in the result must
// be solvable from the parameters, NArgs may appear at most once (with any
// fixed parameters after it treated as a trailing suffix applied once past
// the repeated block — case's "pairs... default" shape needs exactly this),
// and any fixed Array length must be non-negative. Used once at registry
// construction time so a malformed operator definition fails at startup
// rather than surfacing as a confusing compile-time error later.
func ValidateSignature(l Lambda) error {
	paramVars := map[string]bool{}
	for _, p := range l.Params {
		if n, ok := p.(NArgs); ok {
			for _, it := range n.Items {
				if err := checkLengths(it); err != nil {
					return err
				}
				for _, name := range FreeTypenames(it) {
					paramVars[name] = true
				}
			}
			continue
		}
		if err := checkLengths(p); err != nil {
			return err
		}
		for _, name := range FreeTypenames(p) {
			paramVars[name] = true
		}
	}

	if err := checkLengths(l.Result); err != nil {
		return err
	}
	for _, name := range FreeTypenames(l.Result) {
		if !paramVars[name] {
			return fmt.Errorf("typename %q appears in result but not in any parameter", name)
		}
	}

	count := 0
	for _, p := range l.Params {
		if _, ok := p.(NArgs); ok {
			count++
		}
	}
	if count > 1 {
		return fmt.Errorf("signature declares %d NArgs groups, at most one is allowed", count)
	}

	return nil
}

func checkLengths(t Type) error {
	switch v := t.(type) {
	case Array:
		if v.Length != nil && *v.Length < 0 {
			return fmt.Errorf("array length must be non-negative, got %d", *v.Length)
		}
		return checkLengths(v.Item)
	case Variant:
		for _, m := range v.Members {
			if err := checkLengths(m); err != nil {
				return err
			}
		}
	}
	return nil
}
