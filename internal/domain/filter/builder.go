package filter

import (
	"strings"

	"audiens/internal/core/apperror"
)

// RefLookup reports whether a categorical attribute currently has a
// non-empty reference-value list. A failed reference fetch leaves the
// attribute without values, which degrades its input to free text.
type RefLookup interface {
	HasValues(attributeID string) bool
}

// Builder owns one Expression for the duration of an editing session and
// applies every add/remove/reorder/edit operation to it. All methods are
// synchronous; the expression is never mutated concurrently.
type Builder struct {
	expr *Expression
	refs RefLookup
}

// NewBuilder creates a builder around a fresh default expression.
// refs may be nil, in which case no attribute has a reference list.
func NewBuilder(name string, refs RefLookup) *Builder {
	return &Builder{expr: New(name), refs: refs}
}

// Expression returns the expression being edited.
func (b *Builder) Expression() *Expression {
	return b.expr
}

// SetName updates the expression name.
func (b *Builder) SetName(name string) {
	b.expr.Name = name
}

func (b *Builder) hasRefList(attributeID string) bool {
	return b.refs != nil && b.refs.HasValues(attributeID)
}

func (b *Builder) condition(groupIdx, rowIdx int) (*Condition, error) {
	if groupIdx < 0 || groupIdx >= len(b.expr.Groups) {
		return nil, apperror.NewValidation("group index out of range").
			WithDetail("group", groupIdx)
	}
	g := &b.expr.Groups[groupIdx]
	if rowIdx < 0 || rowIdx >= len(g.Conditions) {
		return nil, apperror.NewValidation("condition index out of range").
			WithDetail("group", groupIdx).
			WithDetail("row", rowIdx)
	}
	return &g.Conditions[rowIdx], nil
}

// SetAttribute changes a condition's attribute, resets the operator to the
// default member of the new legal set, and clears the value. A stale value
// from an incompatible attribute/operator pairing never survives the change.
func (b *Builder) SetAttribute(groupIdx, rowIdx int, attributeID string) error {
	c, err := b.condition(groupIdx, rowIdx)
	if err != nil {
		return err
	}
	attr, ok := AttributeByID(attributeID)
	if !ok {
		return apperror.NewValidation("unknown attribute").
			WithDetail("attribute", attributeID)
	}
	c.Attribute = attr
	c.Operator = DefaultOperator
	c.Value = ""
	return nil
}

// SetOperator changes a condition's operator after validating it against the
// attribute's legal set. The value is cleared when the change flips the
// condition between discrete (picker) and free-text entry.
func (b *Builder) SetOperator(groupIdx, rowIdx int, op Operator) error {
	c, err := b.condition(groupIdx, rowIdx)
	if err != nil {
		return err
	}
	if !IsLegalOperator(c.Attribute, op) {
		return apperror.NewValidation("operator not allowed for attribute").
			WithDetail("attribute", c.Attribute.ID).
			WithDetail("operator", string(op))
	}
	hasList := b.hasRefList(c.Attribute.ID)
	before := RequiresDiscreteValue(c.Attribute, c.Operator, hasList)
	after := RequiresDiscreteValue(c.Attribute, op, hasList)
	c.Operator = op
	if before != after {
		c.Value = ""
	}
	return nil
}

// SetValue stores the raw value. Numeric attributes get input-time masking:
// characters that cannot appear in a number are dropped. Full validation is
// deferred to submit time.
func (b *Builder) SetValue(groupIdx, rowIdx int, raw string) error {
	c, err := b.condition(groupIdx, rowIdx)
	if err != nil {
		return err
	}
	if c.Attribute.Kind == KindNumeric {
		raw = maskNumeric(raw)
	}
	c.Value = raw
	return nil
}

// SetConnector stores the connector relating the condition to the previous
// row. No side effects; the first row's connector is kept but ignored at
// evaluation time.
func (b *Builder) SetConnector(groupIdx, rowIdx int, conn Connector) error {
	c, err := b.condition(groupIdx, rowIdx)
	if err != nil {
		return err
	}
	c.Connector = conn
	return nil
}

// AddRow appends a default condition to the group.
func (b *Builder) AddRow(groupIdx int) error {
	if groupIdx < 0 || groupIdx >= len(b.expr.Groups) {
		return apperror.NewValidation("group index out of range").
			WithDetail("group", groupIdx)
	}
	g := &b.expr.Groups[groupIdx]
	g.Conditions = append(g.Conditions, DefaultCondition())
	return nil
}

// RemoveRow removes a condition. It is a no-op (returns false) when the row
// is the last one in its group: a group never becomes empty.
func (b *Builder) RemoveRow(groupIdx, rowIdx int) bool {
	if groupIdx < 0 || groupIdx >= len(b.expr.Groups) {
		return false
	}
	g := &b.expr.Groups[groupIdx]
	if len(g.Conditions) <= 1 || rowIdx < 0 || rowIdx >= len(g.Conditions) {
		return false
	}
	g.Conditions = append(g.Conditions[:rowIdx], g.Conditions[rowIdx+1:]...)
	return true
}

// AddGroup appends a new group holding one default condition.
func (b *Builder) AddGroup() {
	b.expr.Groups = append(b.expr.Groups, Group{
		Conditions: []Condition{DefaultCondition()},
		Connector:  And,
	})
}

// RemoveGroup removes a group. It is a no-op (returns false) when the group
// is the last one: an expression never becomes empty.
func (b *Builder) RemoveGroup(groupIdx int) bool {
	if len(b.expr.Groups) <= 1 || groupIdx < 0 || groupIdx >= len(b.expr.Groups) {
		return false
	}
	b.expr.Groups = append(b.expr.Groups[:groupIdx], b.expr.Groups[groupIdx+1:]...)
	return true
}

// SetGroupConnector stores the connector relating the group to the previous
// group. The first group is exempt: its connector is conventionally ignored
// and cannot be edited.
func (b *Builder) SetGroupConnector(groupIdx int, conn Connector) error {
	if groupIdx <= 0 || groupIdx >= len(b.expr.Groups) {
		return apperror.NewValidation("group connector not editable").
			WithDetail("group", groupIdx)
	}
	b.expr.Groups[groupIdx].Connector = conn
	return nil
}

// MoveGroup relocates a group to a new position. The group's stored
// connector travels with it verbatim even though its meaning ("relationship
// to whatever precedes me") now refers to a different neighbor; this mirrors
// the observed backend behavior and is deliberately not re-derived.
func (b *Builder) MoveGroup(from, to int) bool {
	moved, ok := moveElement(b.expr.Groups, from, to)
	if ok {
		b.expr.Groups = moved
	}
	return ok
}

// MoveRow relocates a condition within its group, preserving its connector
// the same way MoveGroup does.
func (b *Builder) MoveRow(groupIdx, from, to int) bool {
	if groupIdx < 0 || groupIdx >= len(b.expr.Groups) {
		return false
	}
	g := &b.expr.Groups[groupIdx]
	moved, ok := moveElement(g.Conditions, from, to)
	if ok {
		g.Conditions = moved
	}
	return ok
}

// maskNumeric drops characters that cannot appear in a number. A leading
// minus and a single decimal point survive.
func maskNumeric(raw string) string {
	var sb strings.Builder
	seenDot := false
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '-' && i == 0:
			sb.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
