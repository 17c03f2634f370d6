package checker

import (
	"fmt"

	"github.com/cartexpr/cartexpr/internal/types"
)

// expandParams flattens the single NArgs group (if any) in params by
// repeating its Items block enough times to cover n actual arguments,
// honoring Min/Max repeat counts. params may be [fixed...][NArgs][fixed...];
// the NArgs group, if present, is the sole variadic slot.
func expandParams(params []types.Type, n int) ([]types.Type, error) {
	narg, idx, hasNArgs := types.NArgsOf(params)
	if !hasNArgs {
		if len(params) != n {
			return nil, fmt.Errorf("Expected %d arguments, got %d", len(params), n)
		}
		out := make([]types.Type, len(params))
		copy(out, params)
		return out, nil
	}

	prefix := params[:idx]
	suffix := params[idx+1:]
	fixedCount := len(prefix) + len(suffix)
	itemLen := len(narg.Items)

	remaining := n - fixedCount
	if remaining < 0 || itemLen == 0 || remaining%itemLen != 0 {
		return nil, fmt.Errorf("Expected arguments in multiples of %d (plus %d fixed), got %d", itemLen, fixedCount, n)
	}
	repeats := remaining / itemLen
	if repeats < narg.Min {
		return nil, fmt.Errorf("Expected at least %d repetitions of (%d args), got %d", narg.Min, itemLen, repeats)
	}
	if narg.Max != nil && repeats > *narg.Max {
		return nil, fmt.Errorf("Expected at most %d repetitions of (%d args), got %d", *narg.Max, itemLen, repeats)
	}

	out := make([]types.Type, 0, n)
	out = append(out, prefix...)
	for i := 0; i < repeats; i++ {
		out = append(out, narg.Items...)
	}
	out = append(out, suffix...)
	return out, nil
}
