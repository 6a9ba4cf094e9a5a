package filter

// Condition is one leaf predicate: attribute, operator, value, and the
// connector relating it to the previous condition in the same group.
// The first condition's connector is stored but ignored at evaluation time.
type Condition struct {
	Attribute Attribute `json:"attribute"`
	Operator  Operator  `json:"operator"`
	Value     string    `json:"value"`
	Connector Connector `json:"connector"`
}

// Group is an ordered, non-empty collection of conditions, plus the
// connector relating the group to the previous group.
type Group struct {
	Conditions []Condition `json:"conditions"`
	Connector  Connector   `json:"connector"`
}

// Expression is the editable root: a name plus an ordered, non-empty list
// of groups. It is owned by a single editing session and never shared.
type Expression struct {
	Name   string  `json:"name"`
	Groups []Group `json:"groups"`
}

// DefaultCondition returns the condition new rows start with: first catalog
// attribute, equal, empty value, AND.
func DefaultCondition() Condition {
	return Condition{
		Attribute: DefaultAttribute(),
		Operator:  DefaultOperator,
		Value:     "",
		Connector: And,
	}
}

// New creates an expression with one group containing one default condition,
// the state the builder mounts with.
func New(name string) *Expression {
	return &Expression{
		Name: name,
		Groups: []Group{
			{Conditions: []Condition{DefaultCondition()}, Connector: And},
		},
	}
}

// GroupCount returns the number of groups.
func (e *Expression) GroupCount() int {
	return len(e.Groups)
}

// ConditionCount returns the total number of conditions across all groups.
func (e *Expression) ConditionCount() int {
	n := 0
	for _, g := range e.Groups {
		n += len(g.Conditions)
	}
	return n
}

// Clone returns a deep copy of the expression.
func (e *Expression) Clone() *Expression {
	groups := make([]Group, len(e.Groups))
	for i, g := range e.Groups {
		groups[i] = Group{
			Conditions: append([]Condition(nil), g.Conditions...),
			Connector:  g.Connector,
		}
	}
	return &Expression{Name: e.Name, Groups: groups}
}
