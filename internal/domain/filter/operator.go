package filter

// Operator is a comparison operator. The constant values are the lowercase
// code strings the wire format uses verbatim.
type Operator string

const (
	OpEqual              Operator = "equal"
	OpNotEqual           Operator = "notequal"
	OpLessThan           Operator = "lessthan"
	OpGreaterThan        Operator = "greaterthan"
	OpLessThanOrEqual    Operator = "lessthanorequal"
	OpGreaterThanOrEqual Operator = "greaterthanorequal"
	OpContains           Operator = "contains"
	OpStartsWith         Operator = "startswith"
	OpEndsWith           Operator = "endswith"
	OpNotContains        Operator = "notcontains"
)

// Connector is the AND/OR relation linking a condition to the previous
// condition in its group, or a group to the previous group.
type Connector string

const (
	And Connector = "and"
	Or  Connector = "or"
)

// Code returns the integer wire code for the connector (AND=1, OR=2, none=0).
func (c Connector) Code() int {
	switch c {
	case And:
		return 1
	case Or:
		return 2
	default:
		return 0
	}
}

// ConnectorFromCode converts a wire code back to a Connector.
// Unknown codes (including 0) default to And.
func ConnectorFromCode(code int) Connector {
	if code == Or.Code() {
		return Or
	}
	return And
}

var (
	numericOperators = []Operator{
		OpEqual, OpNotEqual, OpLessThan, OpGreaterThan, OpLessThanOrEqual, OpGreaterThanOrEqual,
	}
	categoricalOperators = []Operator{
		OpEqual, OpNotEqual, OpContains, OpStartsWith, OpEndsWith, OpNotContains,
	}
)

// LegalOperators returns the comparison operators allowed for an attribute.
// Ordering operators apply only to numeric attributes; substring operators
// only to categorical ones.
func LegalOperators(a Attribute) []Operator {
	if a.Kind == KindNumeric {
		return append([]Operator(nil), numericOperators...)
	}
	return append([]Operator(nil), categoricalOperators...)
}

// IsLegalOperator reports whether op is allowed for the attribute.
func IsLegalOperator(a Attribute, op Operator) bool {
	for _, legal := range LegalOperators(a) {
		if legal == op {
			return true
		}
	}
	return false
}

// DefaultOperator is the operator selected when an attribute changes.
// Equal is a member of every legal set.
const DefaultOperator = OpEqual

// OperatorByCode resolves a wire code string to an Operator.
func OperatorByCode(code string) (Operator, bool) {
	switch Operator(code) {
	case OpEqual, OpNotEqual, OpLessThan, OpGreaterThan, OpLessThanOrEqual,
		OpGreaterThanOrEqual, OpContains, OpStartsWith, OpEndsWith, OpNotContains:
		return Operator(code), true
	}
	return "", false
}

// InputMode is the kind of widget the value of a condition is entered with.
type InputMode string

const (
	InputNumeric InputMode = "numeric" // free numeric text
	InputText    InputMode = "text"    // free text
	InputPicker  InputMode = "picker"  // searchable finite value list
)

// RequiresDiscreteValue reports whether the condition's value must be chosen
// from a finite reference list: true exactly when the attribute is
// categorical, the operator is equal/notequal, and a non-empty reference
// list exists for the attribute.
func RequiresDiscreteValue(a Attribute, op Operator, hasRefList bool) bool {
	if a.Kind != KindCategorical {
		return false
	}
	if op != OpEqual && op != OpNotEqual {
		return false
	}
	return hasRefList
}

// InputModeFor resolves the value-input widget for an attribute/operator
// pairing. Computed once per edit rather than re-derived ad hoc.
func InputModeFor(a Attribute, op Operator, hasRefList bool) InputMode {
	if a.Kind == KindNumeric {
		return InputNumeric
	}
	if RequiresDiscreteValue(a, op, hasRefList) {
		return InputPicker
	}
	return InputText
}
