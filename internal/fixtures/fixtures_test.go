package fixtures

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cartexpr/cartexpr/pkg/runtime/stdhelper"
)

func TestLoadDirRunsEveryGoldenCase(t *testing.T) {
	cases, err := LoadDir("../../tests/fixtures")
	require.NoError(t, err)
	require.NotEmpty(t, cases)

	helper := stdhelper.New()
	for _, c := range cases {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			Run(t, c, helper)
		})
	}
}
