// Package fixtures loads the golden end-to-end YAML cases under
// tests/fixtures and runs them against the public cartexpr.Compile entry
// point, the way the teacher's ext.Config loads and validates funxy.yaml.
// It is shared by this package's own test and the CLI's smoke test so both
// exercise the exact same case set.
package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cartexpr/cartexpr/pkg/cartexpr"
	"github.com/cartexpr/cartexpr/pkg/runtime"
)

// Case is one golden end-to-end scenario: compile Expr, evaluate it against
// Properties and Zoom, and assert the result and purity bits.
type Case struct {
	Name              string                 `yaml:"name"`
	Expr              interface{}            `yaml:"expr"`
	Properties        map[string]interface{} `yaml:"properties"`
	Zoom              float64                `yaml:"zoom"`
	Want              interface{}            `yaml:"want"`
	WantCompileError  bool                   `yaml:"wantCompileError"`
	IsFeatureConstant *bool                  `yaml:"isFeatureConstant"`
	IsZoomConstant    *bool                  `yaml:"isZoomConstant"`
}

type document struct {
	Cases []Case `yaml:"cases"`
}

// Load reads a single *.yaml fixture file.
func Load(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Cases, nil
}

// LoadDir reads every *.yaml fixture file in dir, in sorted glob order.
func LoadDir(dir string) ([]Case, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	var all []Case
	for _, path := range matches {
		cases, err := Load(path)
		if err != nil {
			return nil, err
		}
		all = append(all, cases...)
	}
	return all, nil
}

// Run compiles and evaluates c against helper, asserting every field the
// case declares. Zoom is threaded as the conventional map-properties "zoom"
// key; Properties become the evaluated feature's own properties.
func Run(t *testing.T, c Case, helper runtime.Context) {
	t.Helper()

	props := make(map[string]runtime.Value, len(c.Properties))
	for k, v := range c.Properties {
		props[k] = v
	}
	feature := caseFeature{props: props}

	result := cartexpr.Compile(c.Expr, nil, helper)

	if c.WantCompileError {
		assert.False(t, result.Ok, "expected a compile error, got none")
		return
	}
	require.True(t, result.Ok, "unexpected compile errors: %v", result.Errors)

	if c.IsFeatureConstant != nil {
		assert.Equal(t, *c.IsFeatureConstant, result.IsFeatureConstant, "isFeatureConstant")
	}
	if c.IsZoomConstant != nil {
		assert.Equal(t, *c.IsZoomConstant, result.IsZoomConstant, "isZoomConstant")
	}

	got, err := result.Evaluate(map[string]runtime.Value{"zoom": c.Zoom}, feature)
	require.NoError(t, err)

	// Numeric wants tolerate floating-point rounding (e.g. the exponential
	// curve scenario's log2/pow chain); everything else compares exactly.
	switch want := c.Want.(type) {
	case float64:
		gotNum, ok := got.(float64)
		require.True(t, ok, "evaluated result %v is not a number", got)
		assert.InDelta(t, want, gotNum, 1e-9, "evaluated result")
	case int:
		gotNum, ok := got.(float64)
		require.True(t, ok, "evaluated result %v is not a number", got)
		assert.InDelta(t, float64(want), gotNum, 1e-9, "evaluated result")
	default:
		assert.EqualValues(t, c.Want, got, "evaluated result")
	}
}

type caseFeature struct {
	props map[string]runtime.Value
}

func (f caseFeature) Properties() map[string]runtime.Value { return f.props }
func (f caseFeature) GeometryType() string                 { return "Unknown" }
func (f caseFeature) ID() runtime.Value                     { return nil }
