package pctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootIsEmpty(t *testing.T) {
	c := Root()
	assert.Equal(t, "", c.Key())
	assert.Empty(t, c.Path())
	assert.Empty(t, c.Ancestors())

	_, ok := c.LastIndex()
	assert.False(t, ok)

	_, ok = c.CurrentAncestor()
	assert.False(t, ok)
}

func TestChildBuildsDottedKeyAndAncestors(t *testing.T) {
	root := Root()
	curve := root.Child(0, "curve")
	input := curve.Child(1, "")

	assert.Equal(t, "0.1", input.Key())
	assert.Equal(t, []string{"curve"}, input.Ancestors())

	idx, ok := input.LastIndex()
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	ancestor, ok := input.CurrentAncestor()
	assert.True(t, ok)
	assert.Equal(t, "curve", ancestor)
}

func TestChildNeverMutatesParent(t *testing.T) {
	root := Root().Child(0, "match")
	_ = root.Child(1, "")
	_ = root.Child(2, "")

	assert.Equal(t, "0", root.Key())
	assert.Equal(t, []string{"match"}, root.Ancestors())
}

func TestChildWithoutAncestorNamePreservesChain(t *testing.T) {
	c := Root().Child(0, "literal").Child(1, "")
	name, ok := c.CurrentAncestor()
	assert.True(t, ok)
	assert.Equal(t, "literal", name)
}
