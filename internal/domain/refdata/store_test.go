package refdata

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiens/internal/domain/filter"
)

// fakeSource serves canned values and fails the attributes listed in failing.
type fakeSource struct {
	mu      sync.Mutex
	values  map[string][]Value
	failing map[string]bool
	calls   []string
}

func (f *fakeSource) FetchValues(_ context.Context, attributeID string) ([]Value, error) {
	f.mu.Lock()
	f.calls = append(f.calls, attributeID)
	f.mu.Unlock()
	if f.failing[attributeID] {
		return nil, errors.New("upstream unavailable")
	}
	return f.values[attributeID], nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func TestLoadAll_FetchesEveryCategoricalAttribute(t *testing.T) {
	src := &fakeSource{values: map[string][]Value{
		filter.AttrDepartment: {{ID: "Engineering", Name: "Engineering"}},
	}}
	store := NewStore(nil)
	store.LoadAll(context.Background(), src)

	assert.Len(t, src.calls, len(filter.CategoricalAttributes()))
	assert.Equal(t, []Value{{ID: "Engineering", Name: "Engineering"}}, store.Values(filter.AttrDepartment))
	assert.True(t, store.HasValues(filter.AttrDepartment))
}

func TestLoadAll_FailedAttributeDegradesToFreeText(t *testing.T) {
	src := &fakeSource{
		values: map[string][]Value{
			filter.AttrDepartment: {{ID: "Sales", Name: "Sales"}},
			filter.AttrRole:       {{ID: "Manager", Name: "Manager"}},
		},
		failing: map[string]bool{filter.AttrGender: true},
	}
	notifier := &recordingNotifier{}
	store := NewStore(notifier)
	store.LoadAll(context.Background(), src)

	// The failed attribute has no list; its input falls back to free text.
	assert.False(t, store.HasValues(filter.AttrGender))
	assert.Empty(t, store.Values(filter.AttrGender))
	assert.False(t, filter.RequiresDiscreteValue(
		mustAttr(t, filter.AttrGender), filter.OpEqual, store.HasValues(filter.AttrGender)))

	// Everything else loaded normally.
	assert.True(t, store.HasValues(filter.AttrDepartment))
	assert.True(t, store.HasValues(filter.AttrRole))

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], filter.AttrGender)
}

func TestStore_EmptyBeforeLoad(t *testing.T) {
	store := NewStore(nil)
	assert.False(t, store.HasValues(filter.AttrDepartment))
	assert.Empty(t, store.Values(filter.AttrDepartment))
}

func mustAttr(t *testing.T, id string) filter.Attribute {
	t.Helper()
	a, ok := filter.AttributeByID(id)
	require.True(t, ok)
	return a
}
