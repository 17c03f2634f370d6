package ops

import (
	"github.com/cartexpr/cartexpr/internal/expr"
	"github.com/cartexpr/cartexpr/internal/registry"
	"github.com/cartexpr/cartexpr/internal/types"
	"github.com/cartexpr/cartexpr/pkg/runtime"
)

// getHasSig builds the shared "(String, Object?) -> result" shape get and
// has use: one required key, one optional object to read from instead of
// the implicit feature-properties bag.
func getHasSig(result types.Type) types.Lambda {
	return types.Lambda{
		Result: result,
		Params: []types.Type{
			types.Str,
			types.NArgs{Min: 0, Max: &oneInt, Items: []types.Type{types.ObjectT}},
		},
	}
}

func getOp() *registry.Operator {
	return op("get", getHasSig(types.Value), func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		key := asEval(args[0])
		keyPath := self.Key()
		if len(args) == 1 {
			eval := func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
				k, err := keyAsString(ctx, key, props, f)
				if err != nil {
					return nil, err
				}
				return ctx.Get(runtime.Value(f.Properties()), k, keyPath)
			}
			return registry.CompileOutcome{Emitted: eval, IsFeatureConstant: boolPtr(false)}
		}
		obj := asEval(args[1])
		eval := func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			k, err := keyAsString(ctx, key, props, f)
			if err != nil {
				return nil, err
			}
			o, err := obj(ctx, props, f)
			if err != nil {
				return nil, err
			}
			return ctx.Get(o, k, keyPath)
		}
		return emit(eval)
	})
}

func hasOp() *registry.Operator {
	return op("has", getHasSig(types.Bool), func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		key := asEval(args[0])
		keyPath := self.Key()
		if len(args) == 1 {
			eval := func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
				k, err := keyAsString(ctx, key, props, f)
				if err != nil {
					return nil, err
				}
				return ctx.Has(runtime.Value(f.Properties()), k, keyPath)
			}
			return registry.CompileOutcome{Emitted: eval, IsFeatureConstant: boolPtr(false)}
		}
		obj := asEval(args[1])
		eval := func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			k, err := keyAsString(ctx, key, props, f)
			if err != nil {
				return nil, err
			}
			o, err := obj(ctx, props, f)
			if err != nil {
				return nil, err
			}
			return ctx.Has(o, k, keyPath)
		}
		return emit(eval)
	})
}

func keyAsString(ctx runtime.Context, key func(runtime.Context, map[string]runtime.Value, runtime.Feature) (runtime.Value, error), props map[string]runtime.Value, f runtime.Feature) (string, error) {
	v, err := key(ctx, props, f)
	if err != nil {
		return "", err
	}
	return ctx.ToString(v)
}

func atOp() *registry.Operator {
	item := types.Typename{Name: "T"}
	sig := types.Lambda{Result: item, Params: []types.Type{types.Num, types.AnyLength(item)}}
	return op("at", sig, func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		index, arr := asEval(args[0]), asEval(args[1])
		return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			iv, err := index(ctx, props, f)
			if err != nil {
				return nil, err
			}
			in, err := ctx.ToNumber(iv)
			if err != nil {
				return nil, err
			}
			av, err := arr(ctx, props, f)
			if err != nil {
				return nil, err
			}
			return ctx.At(in, av)
		})
	})
}

func lengthOp() *registry.Operator {
	item := types.Typename{Name: "T"}
	sig := types.Lambda{
		Result: types.Num,
		Params: []types.Type{types.Of(types.AnyLength(item), types.Str)},
	}
	return op("length", sig, func(args []registry.CompiledArg, self *expr.Call) registry.CompileOutcome {
		v := asEval(args[0])
		key := self.Key()
		return emit(func(ctx runtime.Context, props map[string]runtime.Value, f runtime.Feature) (runtime.Value, error) {
			val, err := v(ctx, props, f)
			if err != nil {
				return nil, err
			}
			switch typed := ctx.Unwrap(val).(type) {
			case string:
				return float64(len([]rune(typed))), nil
			case []runtime.Value:
				return float64(len(typed)), nil
			default:
				return nil, registryLengthError(key)
			}
		})
	})
}

func accessorOps() []*registry.Operator {
	return []*registry.Operator{
		getOp(),
		hasOp(),
		atOp(),
		lengthOp(),
	}
}
