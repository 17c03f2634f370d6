package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartexpr/cartexpr/internal/types"
)

func sumOp() *Operator {
	n := 2
	return &Operator{
		OpName: "sum",
		Sig:    types.Lambda{Result: types.Num, Params: []types.Type{types.NArgs{Min: 1, Max: &n, Items: []types.Type{types.Num}}}},
	}
}

func TestNewBuildsLookupTable(t *testing.T) {
	reg, err := New(sumOp())
	require.NoError(t, err)

	op, ok := reg.Lookup("sum")
	require.True(t, ok)
	assert.Equal(t, "sum", op.Name())

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := New(sumOp(), sumOp())
	assert.Error(t, err)
}

func TestNewRejectsInvalidSignature(t *testing.T) {
	bad := &Operator{OpName: "bad", Sig: types.Lambda{Result: types.Typename{Name: "T"}, Params: []types.Type{types.Num}}}
	_, err := New(bad)
	assert.Error(t, err)
}

func TestMustNewPanicsOnInvalidRegistry(t *testing.T) {
	bad := &Operator{OpName: "bad", Sig: types.Lambda{Result: types.Typename{Name: "T"}, Params: []types.Type{types.Num}}}
	assert.Panics(t, func() { MustNew(bad) })
}

func TestAllIsSortedByName(t *testing.T) {
	n := 2
	other := &Operator{
		OpName: "avg",
		Sig:    types.Lambda{Result: types.Num, Params: []types.Type{types.NArgs{Min: 1, Max: &n, Items: []types.Type{types.Num}}}},
	}
	reg, err := New(sumOp(), other)
	require.NoError(t, err)

	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "avg", all[0].Name())
	assert.Equal(t, "sum", all[1].Name())
}
