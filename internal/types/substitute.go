package types

// Substitute replaces every Typename appearing in t with its binding.
// Typenames with no binding are left as-is (still unresolved).
func Substitute(t Type, bindings Bindings) Type {
	switch v := t.(type) {
	case Typename:
		if bound, ok := bindings[v.Name]; ok {
			return bound
		}
		return v

	case Array:
		return Array{Item: Substitute(v.Item, bindings), Length: v.Length}

	case Variant:
		members := make([]Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = Substitute(m, bindings)
		}
		return Variant{Members: members}

	case NArgs:
		items := make([]Type, len(v.Items))
		for i, it := range v.Items {
			items[i] = Substitute(it, bindings)
		}
		return NArgs{Min: v.Min, Max: v.Max, Items: items}

	case Lambda:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = Substitute(p, bindings)
		}
		return Lambda{Result: Substitute(v.Result, bindings), Params: params}

	default:
		return t
	}
}

// FreeTypenames collects the distinct Typename names reachable from t.
func FreeTypenames(t Type) []string {
	seen := map[string]bool{}
	var order []string
	var walk func(Type)
	walk = func(t Type) {
		switch v := t.(type) {
		case Typename:
			if !seen[v.Name] {
				seen[v.Name] = true
				order = append(order, v.Name)
			}
		case Array:
			walk(v.Item)
		case Variant:
			for _, m := range v.Members {
				walk(m)
			}
		case NArgs:
			for _, it := range v.Items {
				walk(it)
			}
		case Lambda:
			walk(v.Result)
			for _, p := range v.Params {
				walk(p)
			}
		}
	}
	walk(t)
	return order
}
