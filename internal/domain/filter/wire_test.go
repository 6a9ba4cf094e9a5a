package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTwoGroupExpression(t *testing.T) *Expression {
	t.Helper()
	b := NewBuilder("Engineering seniors", nil)

	require.NoError(t, b.SetAttribute(0, 0, "department"))
	require.NoError(t, b.SetValue(0, 0, "Engineering"))
	require.NoError(t, b.AddRow(0))
	require.NoError(t, b.SetAttribute(0, 1, "tenure"))
	require.NoError(t, b.SetOperator(0, 1, OpGreaterThan))
	require.NoError(t, b.SetValue(0, 1, "3"))
	require.NoError(t, b.SetConnector(0, 1, Or))

	b.AddGroup()
	require.NoError(t, b.SetGroupConnector(1, Or))
	require.NoError(t, b.SetAttribute(1, 0, "department"))
	require.NoError(t, b.SetValue(1, 0, "Sales"))

	return b.Expression()
}

func TestSerialize_WireShape(t *testing.T) {
	e := buildTwoGroupExpression(t)

	payload, err := Serialize(e)
	require.NoError(t, err)

	assert.Equal(t, "Engineering seniors", payload.Name)
	require.Len(t, payload.FilterGroups, 2)

	g0 := payload.FilterGroups[0]
	assert.Equal(t, 1, g0.LogicalOperator)
	require.Len(t, g0.Conditions, 2)
	assert.Equal(t, WireCondition{
		Column: "department", Operator: "equal", Value: "Engineering",
		LogicalOperator: 1, ParentID: 0,
	}, g0.Conditions[0])
	assert.Equal(t, WireCondition{
		Column: "tenure", Operator: "greaterthan", Value: "3",
		LogicalOperator: 2, ParentID: 0,
	}, g0.Conditions[1])

	g1 := payload.FilterGroups[1]
	assert.Equal(t, 2, g1.LogicalOperator)
	require.Len(t, g1.Conditions, 1)
	assert.Equal(t, 1, g1.Conditions[0].ParentID)
}

func TestSerialize_Deterministic(t *testing.T) {
	e := buildTwoGroupExpression(t)

	first, err := Serialize(e)
	require.NoError(t, err)
	second, err := Serialize(e)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestSerialize_ParentIDTracksGroupIndexAfterMove(t *testing.T) {
	e := buildTwoGroupExpression(t)
	b := &Builder{expr: e}

	require.True(t, b.MoveGroup(0, 1))

	payload, err := Serialize(b.Expression())
	require.NoError(t, err)
	for gi, g := range payload.FilterGroups {
		for _, c := range g.Conditions {
			assert.Equal(t, gi, c.ParentID)
		}
	}
	// the moved group kept its stored connector verbatim
	assert.Equal(t, 1, payload.FilterGroups[1].LogicalOperator)
}

func TestValidate_SubmitRules(t *testing.T) {
	// default state: empty value fails before any network call
	e := New("My group")
	err := e.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value is required")

	// empty name fails first
	e = New("")
	require.Error(t, e.Validate())
	assert.Contains(t, e.Validate().Error(), "name is required")

	// non-numeric value for a numeric attribute
	b := NewBuilder("ok", nil)
	require.NoError(t, b.SetAttribute(0, 0, "age"))
	b.Expression().Groups[0].Conditions[0].Value = "abc"
	err = b.Expression().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "numeric")

	// valid expression passes
	require.NoError(t, b.SetValue(0, 0, "30"))
	assert.NoError(t, b.Expression().Validate())

	// a group emptied out of band is rejected
	b.Expression().Groups[0].Conditions = nil
	assert.Error(t, b.Expression().Validate())
}

func TestWirePayload_Validate(t *testing.T) {
	valid := WirePayload{
		Name: "g",
		FilterGroups: []WireGroup{{
			LogicalOperator: 1,
			Conditions: []WireCondition{{
				Column: "age", Operator: "greaterthan", Value: "25",
				LogicalOperator: 1, ParentID: 0,
			}},
		}},
	}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(p *WirePayload)
	}{
		{"empty name", func(p *WirePayload) { p.Name = "" }},
		{"no groups", func(p *WirePayload) { p.FilterGroups = nil }},
		{"empty group", func(p *WirePayload) { p.FilterGroups[0].Conditions = nil }},
		{"unknown column", func(p *WirePayload) { p.FilterGroups[0].Conditions[0].Column = "height" }},
		{"unknown operator", func(p *WirePayload) { p.FilterGroups[0].Conditions[0].Operator = "like" }},
		{"illegal pairing", func(p *WirePayload) { p.FilterGroups[0].Conditions[0].Operator = "contains" }},
		{"empty value", func(p *WirePayload) { p.FilterGroups[0].Conditions[0].Value = "" }},
		{"non-numeric value", func(p *WirePayload) { p.FilterGroups[0].Conditions[0].Value = "old" }},
		{"bad connector code", func(p *WirePayload) { p.FilterGroups[0].Conditions[0].LogicalOperator = 7 }},
		{"negative parentId", func(p *WirePayload) { p.FilterGroups[0].Conditions[0].ParentID = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			p.FilterGroups = []WireGroup{{
				LogicalOperator: 1,
				Conditions:      append([]WireCondition(nil), valid.FilterGroups[0].Conditions...),
			}}
			tc.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestWirePayload_JSONFieldNames(t *testing.T) {
	payload := WirePayload{
		Name: "n",
		FilterGroups: []WireGroup{{
			LogicalOperator: 1,
			Conditions: []WireCondition{{
				Column: "department", Operator: "equal", Value: "Engineering",
				LogicalOperator: 1, ParentID: 0,
			}},
		}},
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	want := `{"name":"n","filterGroups":[{"logicalOperator":1,"conditions":[{"column":"department","operator":"equal","value":"Engineering","logicalOperator":1,"parentId":0}]}]}`
	assert.JSONEq(t, want, string(raw))
}
