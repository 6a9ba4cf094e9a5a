package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticRefs marks a fixed set of attributes as having value lists.
type staticRefs map[string]bool

func (r staticRefs) HasValues(attributeID string) bool { return r[attributeID] }

func TestNewBuilder_DefaultState(t *testing.T) {
	b := NewBuilder("", nil)
	e := b.Expression()

	require.Len(t, e.Groups, 1)
	require.Len(t, e.Groups[0].Conditions, 1)

	c := e.Groups[0].Conditions[0]
	assert.Equal(t, "functionalarea", c.Attribute.ID)
	assert.Equal(t, OpEqual, c.Operator)
	assert.Equal(t, "", c.Value)
	assert.Equal(t, And, c.Connector)
}

func TestSetAttribute_ResetsOperatorAndValue(t *testing.T) {
	b := NewBuilder("test", nil)
	require.NoError(t, b.SetValue(0, 0, "Engineering"))

	// categorical -> numeric
	require.NoError(t, b.SetAttribute(0, 0, "age"))
	c := b.Expression().Groups[0].Conditions[0]
	assert.Equal(t, OpEqual, c.Operator)
	assert.Equal(t, "", c.Value)
	assert.Contains(t, LegalOperators(c.Attribute), c.Operator)

	require.NoError(t, b.SetOperator(0, 0, OpGreaterThan))
	require.NoError(t, b.SetValue(0, 0, "25"))

	// numeric -> categorical: greaterthan must not survive
	require.NoError(t, b.SetAttribute(0, 0, "department"))
	c = b.Expression().Groups[0].Conditions[0]
	assert.Equal(t, OpEqual, c.Operator)
	assert.Equal(t, "", c.Value)
}

func TestSetAttribute_Unknown(t *testing.T) {
	b := NewBuilder("test", nil)
	assert.Error(t, b.SetAttribute(0, 0, "shoesize"))
}

func TestSetOperator_RejectsIllegal(t *testing.T) {
	b := NewBuilder("test", nil)
	require.NoError(t, b.SetAttribute(0, 0, "age"))
	assert.Error(t, b.SetOperator(0, 0, OpContains))

	require.NoError(t, b.SetAttribute(0, 0, "gender"))
	assert.Error(t, b.SetOperator(0, 0, OpLessThan))
}

func TestSetOperator_ClearsValueOnModeFlip(t *testing.T) {
	refs := staticRefs{"department": true}
	b := NewBuilder("test", refs)
	require.NoError(t, b.SetAttribute(0, 0, "department"))
	require.NoError(t, b.SetValue(0, 0, "Engineering"))

	// equal (picker) -> contains (free text): mode flips, value cleared
	require.NoError(t, b.SetOperator(0, 0, OpContains))
	assert.Equal(t, "", b.Expression().Groups[0].Conditions[0].Value)

	require.NoError(t, b.SetValue(0, 0, "Eng"))
	// contains -> startswith: both free text, value survives
	require.NoError(t, b.SetOperator(0, 0, OpStartsWith))
	assert.Equal(t, "Eng", b.Expression().Groups[0].Conditions[0].Value)
}

func TestSetOperator_NoRefList_NoFlip(t *testing.T) {
	// Without a reference list equal is free text too, so switching to
	// contains keeps the value.
	b := NewBuilder("test", nil)
	require.NoError(t, b.SetAttribute(0, 0, "department"))
	require.NoError(t, b.SetValue(0, 0, "Sales"))
	require.NoError(t, b.SetOperator(0, 0, OpContains))
	assert.Equal(t, "Sales", b.Expression().Groups[0].Conditions[0].Value)
}

func TestSetValue_NumericMasking(t *testing.T) {
	b := NewBuilder("test", nil)
	require.NoError(t, b.SetAttribute(0, 0, "age"))

	require.NoError(t, b.SetValue(0, 0, "2a5x"))
	assert.Equal(t, "25", b.Expression().Groups[0].Conditions[0].Value)

	require.NoError(t, b.SetValue(0, 0, "-3.5 years"))
	assert.Equal(t, "-3.5", b.Expression().Groups[0].Conditions[0].Value)

	// categorical values pass through untouched
	require.NoError(t, b.SetAttribute(0, 0, "department"))
	require.NoError(t, b.SetValue(0, 0, "R&D 2"))
	assert.Equal(t, "R&D 2", b.Expression().Groups[0].Conditions[0].Value)
}

func TestRowAndGroupInvariants(t *testing.T) {
	b := NewBuilder("test", nil)

	// last row of the only group cannot be removed
	assert.False(t, b.RemoveRow(0, 0))
	assert.Equal(t, 1, b.Expression().ConditionCount())

	require.NoError(t, b.AddRow(0))
	assert.True(t, b.RemoveRow(0, 1))
	assert.False(t, b.RemoveRow(0, 0))

	// last group cannot be removed
	assert.False(t, b.RemoveGroup(0))
	b.AddGroup()
	assert.True(t, b.RemoveGroup(1))
	assert.False(t, b.RemoveGroup(0))
	assert.Equal(t, 1, b.Expression().GroupCount())
}

func TestSetGroupConnector_FirstGroupExempt(t *testing.T) {
	b := NewBuilder("test", nil)
	b.AddGroup()

	assert.Error(t, b.SetGroupConnector(0, Or))
	require.NoError(t, b.SetGroupConnector(1, Or))
	assert.Equal(t, Or, b.Expression().Groups[1].Connector)
}

func TestSetConnector(t *testing.T) {
	b := NewBuilder("test", nil)
	require.NoError(t, b.AddRow(0))
	require.NoError(t, b.SetConnector(0, 1, Or))
	assert.Equal(t, Or, b.Expression().Groups[0].Conditions[1].Connector)
}
