package parser

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cartexpr/cartexpr/internal/diagnostics"
	"github.com/cartexpr/cartexpr/internal/expr"
	"github.com/cartexpr/cartexpr/internal/types"
)

// promoteLiteral implements the literal promotion rule (spec §4.6): turn a
// raw JSON-like value into a Literal expression, inferring its type.
// Shared by the parser's scalar fast path and the explicit "literal" form.
func promoteLiteral(raw interface{}, key string) (expr.Expression, error) {
	if raw == nil {
		return &expr.Literal{KeyPath: key, Value: structpb.NewNullValue(), Typ: types.Null}, nil
	}

	switch v := raw.(type) {
	case string:
		return &expr.Literal{KeyPath: key, Value: structpb.NewStringValue(v), Typ: types.Str}, nil
	case bool:
		return &expr.Literal{KeyPath: key, Value: structpb.NewBoolValue(v), Typ: types.Bool}, nil
	case float64:
		return &expr.Literal{KeyPath: key, Value: structpb.NewNumberValue(v), Typ: types.Num}, nil
	case int:
		return &expr.Literal{KeyPath: key, Value: structpb.NewNumberValue(float64(v)), Typ: types.Num}, nil
	case int64:
		return &expr.Literal{KeyPath: key, Value: structpb.NewNumberValue(float64(v)), Typ: types.Num}, nil

	case []interface{}:
		return promoteArrayLiteral(v, key)

	case map[string]interface{}:
		sv, err := structpb.NewStruct(v)
		if err != nil {
			return nil, diagnostics.NewParseError(key, diagnostics.CodeBadLiteral)
		}
		return &expr.Literal{KeyPath: key, Value: structpb.NewStructValue(sv), Typ: types.ObjectT}, nil

	default:
		return nil, diagnostics.NewParseError(key, diagnostics.CodeBadLiteral)
	}
}

// promoteArrayLiteral infers an array literal's item type: the shared
// primitive kind of every element if they agree, else the top type Value.
func promoteArrayLiteral(items []interface{}, key string) (expr.Expression, error) {
	values := make([]*structpb.Value, len(items))
	var itemType types.Type
	uniform := true

	for i, raw := range items {
		lit, err := promoteLiteral(raw, fmt.Sprintf("%s.%d", key, i))
		if err != nil {
			return nil, err
		}
		litExpr, ok := lit.(*expr.Literal)
		if !ok {
			uniform = false
			continue
		}
		values[i] = litExpr.Value

		if !isPrimitiveType(litExpr.Typ) {
			uniform = false
			continue
		}
		if itemType == nil {
			itemType = litExpr.Typ
		} else if itemType != litExpr.Typ {
			uniform = false
		}
	}

	if !uniform || itemType == nil {
		itemType = types.Value
	}

	n := len(items)
	listValue := &structpb.ListValue{Values: values}
	return &expr.Literal{
		KeyPath: key,
		Value:   structpb.NewListValue(listValue),
		Typ:     types.FixedLength(itemType, n),
	}, nil
}

func isPrimitiveType(t types.Type) bool {
	_, ok := t.(types.Primitive)
	return ok
}
