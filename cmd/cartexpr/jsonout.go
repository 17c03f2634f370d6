package main

import (
	"encoding/json"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cartexpr/cartexpr/internal/diagnostics"
	"github.com/cartexpr/cartexpr/pkg/runtime"
)

// jsonEnvelope is the -json mode's wire shape (SPEC_FULL's DOMAIN STACK):
// the evaluated Value flows through structpb.Value, the same canonical
// encoder the parser uses internally for literals; the rest of the
// envelope, CompileErrors included, is plain encoding/json.
type jsonEnvelope struct {
	CompilationID     string                     `json:"compilationId"`
	Ok                bool                       `json:"ok"`
	Type              string                     `json:"type,omitempty"`
	IsFeatureConstant bool                       `json:"isFeatureConstant,omitempty"`
	IsZoomConstant    bool                       `json:"isZoomConstant,omitempty"`
	Result            json.RawMessage            `json:"result,omitempty"`
	Errors            []diagnostics.CompileError `json:"errors,omitempty"`
}

// valueToStructValue converts an evaluated runtime.Value to the canonical
// structpb encoding. structpb.NewValue already understands nil, bool,
// float64, string, []interface{} and map[string]interface{}; the only
// shape it doesn't know is runtime.Color, handled here as an {r,g,b,a}
// struct, recursively so a Color nested in an Array or Object round-trips.
func valueToStructValue(v runtime.Value) (*structpb.Value, error) {
	switch x := v.(type) {
	case runtime.Color:
		sv, err := structpb.NewStruct(map[string]interface{}{
			"r": x.R, "g": x.G, "b": x.B, "a": x.A,
		})
		if err != nil {
			return nil, err
		}
		return structpb.NewStructValue(sv), nil

	case []runtime.Value:
		items := make([]*structpb.Value, len(x))
		for i, item := range x {
			iv, err := valueToStructValue(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			items[i] = iv
		}
		return structpb.NewListValue(&structpb.ListValue{Values: items}), nil

	case map[string]runtime.Value:
		fields := make(map[string]*structpb.Value, len(x))
		for k, item := range x {
			iv, err := valueToStructValue(item)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			fields[k] = iv
		}
		return structpb.NewStructValue(&structpb.Struct{Fields: fields}), nil

	default:
		return structpb.NewValue(v)
	}
}

func structToRaw(sv *structpb.Value) (json.RawMessage, error) {
	if sv == nil {
		return nil, nil
	}
	b, err := protojson.Marshal(sv)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

func writeJSON(w io.Writer, v interface{}) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(w, "{\"error\": %q}\n", err.Error())
	}
}
