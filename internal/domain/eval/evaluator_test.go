package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiens/internal/domain/filter"
)

func subject(overrides map[string]any) map[string]any {
	s := map[string]any{}
	for _, a := range filter.Catalog {
		if a.Kind == filter.KindNumeric {
			s[a.ID] = float64(0)
		} else {
			s[a.ID] = ""
		}
	}
	for k, v := range overrides {
		s[k] = v
	}
	return s
}

func cond(column, operator, value string, logical, parent int) filter.WireCondition {
	return filter.WireCondition{
		Column: column, Operator: operator, Value: value,
		LogicalOperator: logical, ParentID: parent,
	}
}

func mustCompile(t *testing.T, p filter.WirePayload) *Program {
	t.Helper()
	ev, err := New()
	require.NoError(t, err)
	prg, err := ev.Compile(p)
	require.NoError(t, err)
	return prg
}

func TestCompile_SingleNumericCondition(t *testing.T) {
	prg := mustCompile(t, filter.WirePayload{
		Name: "seniors",
		FilterGroups: []filter.WireGroup{{
			LogicalOperator: 1,
			Conditions:      []filter.WireCondition{cond("age", "greaterthan", "25", 1, 0)},
		}},
	})

	matched, err := prg.Matches(subject(map[string]any{"age": float64(30)}))
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = prg.Matches(subject(map[string]any{"age": float64(25)}))
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestCompile_CategoricalOperators(t *testing.T) {
	cases := []struct {
		operator string
		value    string
		dept     string
		want     bool
	}{
		{"equal", "Engineering", "Engineering", true},
		{"equal", "Engineering", "Sales", false},
		{"notequal", "Engineering", "Sales", true},
		{"contains", "gineer", "Engineering", true},
		{"contains", "gineer", "Sales", false},
		{"notcontains", "gineer", "Sales", true},
		{"startswith", "Eng", "Engineering", true},
		{"startswith", "Eng", "Sales", false},
		{"endswith", "ing", "Engineering", true},
		{"endswith", "ing", "Sales", false},
	}
	for _, tc := range cases {
		t.Run(tc.operator+"/"+tc.dept, func(t *testing.T) {
			prg := mustCompile(t, filter.WirePayload{
				Name: "g",
				FilterGroups: []filter.WireGroup{{
					LogicalOperator: 1,
					Conditions:      []filter.WireCondition{cond("department", tc.operator, tc.value, 1, 0)},
				}},
			})
			matched, err := prg.Matches(subject(map[string]any{"department": tc.dept}))
			require.NoError(t, err)
			assert.Equal(t, tc.want, matched)
		})
	}
}

func TestCompile_ConnectorsFoldLeftToRight(t *testing.T) {
	// dept == Engineering AND age > 25, then OR dept == Sales:
	// ((dept == Engineering && age > 25) || dept == Sales)
	prg := mustCompile(t, filter.WirePayload{
		Name: "g",
		FilterGroups: []filter.WireGroup{{
			LogicalOperator: 1,
			Conditions: []filter.WireCondition{
				cond("department", "equal", "Engineering", 1, 0),
				cond("age", "greaterthan", "25", 1, 0),
				cond("department", "equal", "Sales", 2, 0),
			},
		}},
	})

	for _, tc := range []struct {
		dept string
		age  float64
		want bool
	}{
		{"Engineering", 30, true},
		{"Engineering", 20, false},
		{"Sales", 20, true},
		{"Marketing", 40, false},
	} {
		matched, err := prg.Matches(subject(map[string]any{"department": tc.dept, "age": tc.age}))
		require.NoError(t, err)
		assert.Equal(t, tc.want, matched, "dept=%s age=%v", tc.dept, tc.age)
	}
}

func TestCompile_GroupConnectorOr(t *testing.T) {
	// group0: dept == Engineering; group1 (OR): role == Manager
	prg := mustCompile(t, filter.WirePayload{
		Name: "g",
		FilterGroups: []filter.WireGroup{
			{
				LogicalOperator: 1,
				Conditions:      []filter.WireCondition{cond("department", "equal", "Engineering", 1, 0)},
			},
			{
				LogicalOperator: 2,
				Conditions:      []filter.WireCondition{cond("role", "equal", "Manager", 1, 1)},
			},
		},
	})

	matched, err := prg.Matches(subject(map[string]any{"department": "Engineering"}))
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = prg.Matches(subject(map[string]any{"role": "Manager"}))
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = prg.Matches(subject(nil))
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestCompile_RegroupsByParentIDNotPosition(t *testing.T) {
	// Both conditions arrive inside the first group's array, but parentId
	// assigns the second one to group 1. Nesting must follow parentId.
	prg := mustCompile(t, filter.WirePayload{
		Name: "g",
		FilterGroups: []filter.WireGroup{
			{
				LogicalOperator: 1,
				Conditions: []filter.WireCondition{
					cond("department", "equal", "Engineering", 1, 0),
					cond("role", "equal", "Manager", 1, 1),
				},
			},
			{
				LogicalOperator: 2,
				Conditions:      nil,
			},
		},
	})

	// Engineering alone matches through the OR between groups.
	matched, err := prg.Matches(subject(map[string]any{"department": "Engineering"}))
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = prg.Matches(subject(map[string]any{"role": "Manager"}))
	require.NoError(t, err)
	assert.True(t, matched)
}

func TestCompile_FirstConnectorIgnored(t *testing.T) {
	// First group and first condition carry OR codes; they seed the fold
	// and must not change the outcome.
	prg := mustCompile(t, filter.WirePayload{
		Name: "g",
		FilterGroups: []filter.WireGroup{{
			LogicalOperator: 2,
			Conditions:      []filter.WireCondition{cond("gender", "equal", "Female", 2, 0)},
		}},
	})

	matched, err := prg.Matches(subject(map[string]any{"gender": "Female"}))
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = prg.Matches(subject(map[string]any{"gender": "Male"}))
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestCompile_RejectsInvalidPayloads(t *testing.T) {
	ev, err := New()
	require.NoError(t, err)

	_, err = ev.Compile(filter.WirePayload{Name: ""})
	assert.Error(t, err)

	// parentId beyond the group list
	_, err = ev.Compile(filter.WirePayload{
		Name: "g",
		FilterGroups: []filter.WireGroup{{
			LogicalOperator: 1,
			Conditions:      []filter.WireCondition{cond("age", "equal", "1", 1, 3)},
		}},
	})
	assert.Error(t, err)
}

func TestCompile_DecimalValues(t *testing.T) {
	prg := mustCompile(t, filter.WirePayload{
		Name: "g",
		FilterGroups: []filter.WireGroup{{
			LogicalOperator: 1,
			Conditions:      []filter.WireCondition{cond("tenure", "greaterthanorequal", "2.5", 1, 0)},
		}},
	})

	matched, err := prg.Matches(subject(map[string]any{"tenure": 2.5}))
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = prg.Matches(subject(map[string]any{"tenure": 2.4}))
	require.NoError(t, err)
	assert.False(t, matched)
}
