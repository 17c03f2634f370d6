package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfCollapsesSingleMember(t *testing.T) {
	assert.Equal(t, Num, Of(Num))
	assert.Equal(t, Variant{Members: []Type{Num, Str}}, Of(Num, Str))
}

func TestStringRendering(t *testing.T) {
	assert.Equal(t, "Number", Num.String())
	assert.Equal(t, "Array<String>", AnyLength(Str).String())
	assert.Equal(t, "Array<String, 3>", FixedLength(Str, 3).String())
	assert.Equal(t, "Number | String", Of(Num, Str).String())
	assert.Equal(t, "T", Typename{Name: "T"}.String())
}

func TestMatchPrimitiveExactName(t *testing.T) {
	_, err := Match(Num, Num, nil)
	require.NoError(t, err)

	_, err = Match(Num, Str, nil)
	assert.Error(t, err)
}

func TestMatchValueAcceptsAnything(t *testing.T) {
	_, err := Match(Value, Str, nil)
	require.NoError(t, err)
	_, err = Match(Value, Array{Item: Num}, nil)
	require.NoError(t, err)
}

func TestMatchTypenameBindsOnFirstUse(t *testing.T) {
	bindings, err := Match(Typename{Name: "T"}, Num, nil)
	require.NoError(t, err)
	assert.Equal(t, Num, bindings["T"])
}

func TestMatchTypenameMustAgreeOnSecondUse(t *testing.T) {
	bindings, err := Match(Typename{Name: "T"}, Num, nil)
	require.NoError(t, err)

	_, err = Match(Typename{Name: "T"}, Str, bindings)
	assert.Error(t, err)

	_, err = Match(Typename{Name: "T"}, Num, bindings)
	assert.NoError(t, err)
}

func TestMatchVariantTriesMembersInOrder(t *testing.T) {
	expected := Of(Num, Str)
	_, err := Match(expected, Str, nil)
	require.NoError(t, err)

	_, err = Match(expected, Bool, nil)
	assert.Error(t, err)
}

func TestMatchArrayItemAndLength(t *testing.T) {
	_, err := Match(AnyLength(Num), Array{Item: Num}, nil)
	require.NoError(t, err)

	_, err = Match(FixedLength(Num, 2), Array{Item: Num, Length: intPtr(2)}, nil)
	require.NoError(t, err)

	_, err = Match(FixedLength(Num, 2), Array{Item: Num, Length: intPtr(3)}, nil)
	assert.Error(t, err)

	_, err = Match(AnyLength(Num), Array{Item: Str}, nil)
	assert.Error(t, err)
}

func TestSubstituteReplacesBoundTypenamesOnly(t *testing.T) {
	bindings := Bindings{"T": Num}
	got := Substitute(Array{Item: Typename{Name: "T"}}, bindings)
	assert.Equal(t, Array{Item: Num}, got)

	unbound := Substitute(Typename{Name: "U"}, bindings)
	assert.Equal(t, Typename{Name: "U"}, unbound)
}

func TestFreeTypenamesDeduplicatesAndPreservesOrder(t *testing.T) {
	lambda := Lambda{
		Result: Typename{Name: "T"},
		Params: []Type{Typename{Name: "T"}, Typename{Name: "U"}, Typename{Name: "T"}},
	}
	assert.Equal(t, []string{"T", "U"}, FreeTypenames(lambda))
}

func TestValidateSignatureRejectsUnboundResultTypename(t *testing.T) {
	sig := Lambda{Result: Typename{Name: "T"}, Params: []Type{Num}}
	assert.Error(t, ValidateSignature(sig))
}

func TestValidateSignatureAcceptsBoundTypename(t *testing.T) {
	sig := Lambda{Result: Typename{Name: "T"}, Params: []Type{Typename{Name: "T"}}}
	assert.NoError(t, ValidateSignature(sig))
}

func TestValidateSignatureRejectsMultipleNArgsGroups(t *testing.T) {
	nargs := NArgs{Min: 0, Items: []Type{Num}}
	sig := Lambda{Result: Num, Params: []Type{nargs, nargs}}
	assert.Error(t, ValidateSignature(sig))
}

func TestValidateSignatureRejectsNegativeArrayLength(t *testing.T) {
	n := -1
	sig := Lambda{Result: Num, Params: []Type{Array{Item: Num, Length: &n}}}
	assert.Error(t, ValidateSignature(sig))
}

func intPtr(n int) *int { return &n }
