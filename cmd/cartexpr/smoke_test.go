package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cartexpr/cartexpr/internal/fixtures"
	"github.com/cartexpr/cartexpr/pkg/runtime/stdhelper"
)

// TestGoldenFixturesCompileAndEvaluate is the CLI's smoke test mentioned in
// SPEC_FULL's DOMAIN STACK: it runs the exact same golden cases the
// internal/fixtures package's own test runs, confirming the CLI links against a
// cartexpr build that still honors them.
func TestGoldenFixturesCompileAndEvaluate(t *testing.T) {
	cases, err := fixtures.LoadDir("../../tests/fixtures")
	require.NoError(t, err)
	require.NotEmpty(t, cases)

	helper := stdhelper.New()
	for _, c := range cases {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			fixtures.Run(t, c, helper)
		})
	}
}
