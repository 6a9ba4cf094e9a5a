package filter

import (
	"audiens/internal/core/apperror"

	"github.com/shopspring/decimal"
)

// Wire format: the backend consumes a flat list of groups with integer-coded
// logical operators. A condition's only structural link to its owning group
// is parentId, the 0-based index of the group at serialization time; the
// evaluator reconstructs nesting from parentId equality, not array position.

// WireCondition is one serialized condition.
type WireCondition struct {
	Column          string `json:"column"`
	Operator        string `json:"operator"`
	Value           string `json:"value"`
	LogicalOperator int    `json:"logicalOperator"`
	ParentID        int    `json:"parentId"`
}

// WireGroup is one serialized group.
type WireGroup struct {
	LogicalOperator int             `json:"logicalOperator"`
	Conditions      []WireCondition `json:"conditions"`
}

// WirePayload is the body of POST /TargetGroup/CreateTargetGroup.
type WirePayload struct {
	Name         string      `json:"name"`
	FilterGroups []WireGroup `json:"filterGroups"`
}

// Serialize validates the expression and converts it to the wire format.
// It is deterministic and total over valid expressions. The first group
// conventionally still emits its stored connector code.
func Serialize(e *Expression) (WirePayload, error) {
	if err := e.Validate(); err != nil {
		return WirePayload{}, err
	}

	payload := WirePayload{
		Name:         e.Name,
		FilterGroups: make([]WireGroup, 0, len(e.Groups)),
	}
	for groupIdx, g := range e.Groups {
		wg := WireGroup{
			LogicalOperator: g.Connector.Code(),
			Conditions:      make([]WireCondition, 0, len(g.Conditions)),
		}
		for _, c := range g.Conditions {
			wg.Conditions = append(wg.Conditions, WireCondition{
				Column:          c.Attribute.ID,
				Operator:        string(c.Operator),
				Value:           c.Value,
				LogicalOperator: c.Connector.Code(),
				ParentID:        groupIdx,
			})
		}
		payload.FilterGroups = append(payload.FilterGroups, wg)
	}
	return payload, nil
}

// Validate checks an incoming wire payload against the same rules the
// builder enforces on submit, plus vocabulary checks on columns, operator
// codes, and connector codes.
func (p WirePayload) Validate() error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if len(p.FilterGroups) == 0 {
		return apperror.NewValidation("at least one filter group is required")
	}
	// Group membership follows parentId, not array position, so emptiness
	// is checked against the parentId buckets.
	perParent := make([]int, len(p.FilterGroups))
	for _, g := range p.FilterGroups {
		for _, c := range g.Conditions {
			if err := c.validate(); err != nil {
				return err
			}
			if c.ParentID < len(perParent) {
				perParent[c.ParentID]++
			}
		}
	}
	for gi, n := range perParent {
		if n == 0 {
			return apperror.NewValidation("filter group must contain at least one condition").
				WithDetail("group", gi)
		}
	}
	return nil
}

func (c WireCondition) validate() error {
	attr, ok := AttributeByID(c.Column)
	if !ok {
		return apperror.NewValidation("unknown column").
			WithDetail("column", c.Column)
	}
	op, ok := OperatorByCode(c.Operator)
	if !ok {
		return apperror.NewValidation("unknown operator").
			WithDetail("column", c.Column).
			WithDetail("operator", c.Operator)
	}
	if !IsLegalOperator(attr, op) {
		return apperror.NewValidation("operator not allowed for column").
			WithDetail("column", c.Column).
			WithDetail("operator", c.Operator)
	}
	if c.Value == "" {
		return apperror.NewValidation("value is required").
			WithDetail("column", c.Column)
	}
	if attr.Kind == KindNumeric {
		if _, err := decimal.NewFromString(c.Value); err != nil {
			return apperror.NewValidation("value must be numeric").
				WithDetail("column", c.Column).
				WithDetail("value", c.Value)
		}
	}
	if c.LogicalOperator < 0 || c.LogicalOperator > 2 {
		return apperror.NewValidation("unknown logical operator code").
			WithDetail("column", c.Column).
			WithDetail("logicalOperator", c.LogicalOperator)
	}
	if c.ParentID < 0 {
		return apperror.NewValidation("parentId must not be negative").
			WithDetail("column", c.Column).
			WithDetail("parentId", c.ParentID)
	}
	return nil
}
