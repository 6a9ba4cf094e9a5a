package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegalOperators_Partition(t *testing.T) {
	ordering := []Operator{OpLessThan, OpGreaterThan, OpLessThanOrEqual, OpGreaterThanOrEqual}
	substring := []Operator{OpContains, OpStartsWith, OpEndsWith, OpNotContains}

	for _, attr := range Catalog {
		legal := LegalOperators(attr)
		assert.Contains(t, legal, OpEqual, "%s must allow equal", attr.ID)
		assert.Contains(t, legal, OpNotEqual, "%s must allow notequal", attr.ID)

		if attr.Kind == KindNumeric {
			assert.Len(t, legal, 6, attr.ID)
			for _, op := range substring {
				assert.NotContains(t, legal, op, "numeric %s must not allow %s", attr.ID, op)
			}
		} else {
			assert.Len(t, legal, 6, attr.ID)
			for _, op := range ordering {
				assert.NotContains(t, legal, op, "categorical %s must not allow %s", attr.ID, op)
			}
		}
	}
}

func TestCatalog_ClosedVocabulary(t *testing.T) {
	assert.Len(t, Catalog, 13)

	age, ok := AttributeByID("age")
	assert.True(t, ok)
	assert.Equal(t, KindNumeric, age.Kind)

	tenure, ok := AttributeByID("tenure")
	assert.True(t, ok)
	assert.Equal(t, KindNumeric, tenure.Kind)

	// The contract's spelling, not a typo to fix.
	_, ok = AttributeByID("residentalarea")
	assert.True(t, ok)

	_, ok = AttributeByID("salary")
	assert.False(t, ok)
}

func TestConnectorCodes(t *testing.T) {
	assert.Equal(t, 1, And.Code())
	assert.Equal(t, 2, Or.Code())
	assert.Equal(t, 0, Connector("").Code())

	assert.Equal(t, Or, ConnectorFromCode(2))
	assert.Equal(t, And, ConnectorFromCode(1))
	assert.Equal(t, And, ConnectorFromCode(0))
}

func TestRequiresDiscreteValue(t *testing.T) {
	dept, _ := AttributeByID("department")
	age, _ := AttributeByID("age")

	assert.True(t, RequiresDiscreteValue(dept, OpEqual, true))
	assert.True(t, RequiresDiscreteValue(dept, OpNotEqual, true))
	assert.False(t, RequiresDiscreteValue(dept, OpContains, true))
	assert.False(t, RequiresDiscreteValue(dept, OpEqual, false))
	assert.False(t, RequiresDiscreteValue(age, OpEqual, true))
}

func TestInputModeFor(t *testing.T) {
	dept, _ := AttributeByID("department")
	age, _ := AttributeByID("age")

	assert.Equal(t, InputNumeric, InputModeFor(age, OpGreaterThan, false))
	assert.Equal(t, InputNumeric, InputModeFor(age, OpEqual, true))
	assert.Equal(t, InputPicker, InputModeFor(dept, OpEqual, true))
	assert.Equal(t, InputText, InputModeFor(dept, OpEqual, false))
	assert.Equal(t, InputText, InputModeFor(dept, OpStartsWith, true))
}

func TestOperatorByCode(t *testing.T) {
	op, ok := OperatorByCode("greaterthanorequal")
	assert.True(t, ok)
	assert.Equal(t, OpGreaterThanOrEqual, op)

	_, ok = OperatorByCode("like")
	assert.False(t, ok)
}
