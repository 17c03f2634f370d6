package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/cartexpr/cartexpr/internal/config"
	"github.com/cartexpr/cartexpr/internal/diagnostics"
	"github.com/cartexpr/cartexpr/pkg/cartexpr"
	"github.com/cartexpr/cartexpr/pkg/runtime"
	"github.com/cartexpr/cartexpr/pkg/runtime/stdhelper"
)

// cliFeature adapts a decoded properties object into runtime.Feature for a
// one-off CLI evaluation; the geometry type comes from the -geometry flag
// and the id is left nil, since the CLI evaluates one expression against
// one ad hoc feature, not a layer.
type cliFeature struct {
	props map[string]runtime.Value
	geom  string
	id    runtime.Value
}

func (f cliFeature) Properties() map[string]runtime.Value { return f.props }
func (f cliFeature) GeometryType() string                 { return f.geom }
func (f cliFeature) ID() runtime.Value                     { return f.id }

func handleEval() bool {
	if len(os.Args) < 2 || os.Args[1] != "eval" {
		return false
	}

	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	exprArg := fs.String("e", "", "expression, as JSON (array form), or @file")
	propsArg := fs.String("p", "{}", "feature properties, as a JSON object, or @file")
	zoom := fs.Float64("z", 0, "zoom level fed to the zoom/curve operators")
	geom := fs.String("geometry", "Unknown", "feature geometry type")
	asJSON := fs.Bool("json", false, "emit a structpb-encoded JSON envelope instead of text")
	explain := fs.Bool("explain", false, "print the checked expression tree before evaluating")
	_ = fs.Parse(os.Args[2:])

	if *exprArg == "" {
		fmt.Fprintln(os.Stderr, "Error: -e <expression> is required")
		os.Exit(1)
	}

	compilationID := uuid.New().String()

	rawExpr, err := readJSONArg(*exprArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading expression: %s\n", err)
		os.Exit(1)
	}

	rawProps, err := readJSONArg(*propsArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading properties: %s\n", err)
		os.Exit(1)
	}
	props, ok := rawProps.(map[string]interface{})
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: properties must decode to a JSON object")
		os.Exit(1)
	}

	helper := stdhelper.New()
	result := cartexpr.Compile(rawExpr, nil, helper)

	if *explain && result.Explain != "" {
		fmt.Fprintf(os.Stderr, "explain: %s\n", result.Explain)
	}

	if !result.Ok {
		if *asJSON {
			printEvalJSON(compilationID, result, nil)
		} else {
			printDiagnostics(compilationID, result.Errors)
		}
		os.Exit(1)
	}

	feature := cliFeature{props: props, geom: *geom}
	mapProps := map[string]runtime.Value{config.ZoomKey: *zoom}

	value, err := result.Evaluate(mapProps, feature)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Evaluation error: %s\n", err)
		os.Exit(1)
	}

	if *asJSON {
		printEvalJSON(compilationID, result, value)
	} else {
		printEvalText(result, value)
	}
	return true
}

func printEvalText(result cartexpr.Result, value runtime.Value) {
	fmt.Printf("type: %s\n", result.Type)
	fmt.Printf("isFeatureConstant: %v\n", result.IsFeatureConstant)
	fmt.Printf("isZoomConstant: %v\n", result.IsZoomConstant)
	fmt.Printf("result: %v\n", value)
}

func printEvalJSON(compilationID string, result cartexpr.Result, value runtime.Value) {
	env := jsonEnvelope{CompilationID: compilationID, Ok: result.Ok}
	if result.Ok {
		env.Type = result.Type.String()
		env.IsFeatureConstant = result.IsFeatureConstant
		env.IsZoomConstant = result.IsZoomConstant
		if sv, err := valueToStructValue(value); err == nil {
			if raw, err := structToRaw(sv); err == nil {
				env.Result = raw
			}
		}
	} else {
		env.Errors = result.Errors
	}
	writeJSON(os.Stdout, env)
}

func printDiagnostics(compilationID string, errs []diagnostics.CompileError) {
	fmt.Fprintf(os.Stderr, "%s %s\n", yellow("["+compilationID+"]"), red("compilation failed:"))
	for _, e := range errs {
		key := e.Key
		if key == "" {
			key = "<root>"
		}
		fmt.Fprintf(os.Stderr, "  %s: %s\n", red(key), e.Message)
	}
}

// readJSONArg decodes a JSON value either from the literal string itself
// or, when prefixed with "@", from the named file.
func readJSONArg(s string) (interface{}, error) {
	var raw []byte
	if strings.HasPrefix(s, "@") {
		data, err := os.ReadFile(strings.TrimPrefix(s, "@"))
		if err != nil {
			return nil, err
		}
		raw = data
	} else {
		raw = []byte(s)
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
