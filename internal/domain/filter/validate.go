package filter

import (
	"github.com/shopspring/decimal"

	"audiens/internal/core/apperror"
)

// Validate checks the expression at submit time. The first violated rule is
// reported; nothing is submitted on failure. The rules: non-empty name,
// every group holds at least one condition, every value is non-empty, and
// numeric-attribute values parse as numbers.
func (e *Expression) Validate() error {
	if e.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if len(e.Groups) == 0 {
		return apperror.NewValidation("at least one filter group is required")
	}
	for gi, g := range e.Groups {
		if len(g.Conditions) == 0 {
			return apperror.NewValidation("filter group must contain at least one condition").
				WithDetail("group", gi)
		}
		for ci, c := range g.Conditions {
			if err := validateCondition(c, gi, ci); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateCondition(c Condition, groupIdx, rowIdx int) error {
	if c.Value == "" {
		return apperror.NewValidation("value is required").
			WithDetail("group", groupIdx).
			WithDetail("row", rowIdx).
			WithDetail("attribute", c.Attribute.ID)
	}
	if c.Attribute.Kind == KindNumeric {
		if _, err := decimal.NewFromString(c.Value); err != nil {
			return apperror.NewValidation("value must be numeric").
				WithDetail("group", groupIdx).
				WithDetail("row", rowIdx).
				WithDetail("attribute", c.Attribute.ID).
				WithDetail("value", c.Value)
		}
	}
	return nil
}

// ParseNumericValue parses a numeric condition value. Exposed for the
// evaluator, which needs the parsed number to build comparison terms.
func ParseNumericValue(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(raw)
}
