// Package eval decides target-group membership. It reconstructs group
// nesting from the wire payload's parentId references, folds the
// AND/OR-connected conditions into a single boolean expression, and
// compiles that expression into a CEL program evaluated once per employee.
package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/cel-go/cel"

	"audiens/internal/core/apperror"
	"audiens/internal/domain/filter"
)

// Evaluator holds the CEL environment with one declared variable per
// catalog attribute: numeric attributes as double, categorical as string.
type Evaluator struct {
	env *cel.Env
}

// New creates an evaluator for the compiled-in attribute catalog.
func New() (*Evaluator, error) {
	opts := make([]cel.EnvOption, 0, len(filter.Catalog))
	for _, a := range filter.Catalog {
		if a.Kind == filter.KindNumeric {
			opts = append(opts, cel.Variable(a.ID, cel.DoubleType))
		} else {
			opts = append(opts, cel.Variable(a.ID, cel.StringType))
		}
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("create cel environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Program is a compiled membership rule. Compile once, evaluate per subject.
type Program struct {
	prg  cel.Program
	expr string
}

// Expr returns the generated CEL expression, useful for logging and tests.
func (p *Program) Expr() string {
	return p.expr
}

// Matches evaluates the rule against one subject's attribute values. The
// map must carry every catalog attribute id (see employee.AttributeValues).
func (p *Program) Matches(subject map[string]any) (bool, error) {
	out, _, err := p.prg.Eval(subject)
	if err != nil {
		return false, apperror.NewEvaluation("rule evaluation failed").WithCause(err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, apperror.NewEvaluation("rule did not evaluate to a boolean")
	}
	return matched, nil
}

// Compile validates the payload, regroups its conditions by parentId, and
// compiles the folded expression.
func (e *Evaluator) Compile(p filter.WirePayload) (*Program, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	expr, err := buildExpr(p)
	if err != nil {
		return nil, err
	}
	ast, iss := e.env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, apperror.NewEvaluation("rule compilation failed").WithCause(iss.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, apperror.NewEvaluation("rule compilation failed").WithCause(err)
	}
	return &Program{prg: prg, expr: expr}, nil
}

// buildExpr folds the payload into one CEL expression. Group membership is
// decided by parentId equality alone: conditions are bucketed by parentId
// regardless of which group array they arrived in. Mixed connectors have no
// precedence; both levels fold left-to-right, the first operand seeding the
// fold with its own connector ignored.
func buildExpr(p filter.WirePayload) (string, error) {
	groupCount := len(p.FilterGroups)
	buckets := make([][]filter.WireCondition, groupCount)
	for _, g := range p.FilterGroups {
		for _, c := range g.Conditions {
			if c.ParentID >= groupCount {
				return "", apperror.NewValidation("parentId refers to a missing group").
					WithDetail("parentId", c.ParentID).
					WithDetail("groups", groupCount)
			}
			buckets[c.ParentID] = append(buckets[c.ParentID], c)
		}
	}

	var expr string
	for i, bucket := range buckets {
		if len(bucket) == 0 {
			return "", apperror.NewEvaluation("group has no conditions after parentId regrouping").
				WithDetail("group", i)
		}
		groupExpr, err := buildGroupExpr(bucket)
		if err != nil {
			return "", err
		}
		if i == 0 {
			expr = groupExpr
			continue
		}
		expr = fmt.Sprintf("(%s %s %s)", expr, connectorSymbol(p.FilterGroups[i].LogicalOperator), groupExpr)
	}
	return expr, nil
}

func buildGroupExpr(conds []filter.WireCondition) (string, error) {
	var expr string
	for i, c := range conds {
		term, err := buildTerm(c)
		if err != nil {
			return "", err
		}
		if i == 0 {
			expr = term
			continue
		}
		expr = fmt.Sprintf("(%s %s %s)", expr, connectorSymbol(c.LogicalOperator), term)
	}
	return expr, nil
}

func connectorSymbol(code int) string {
	if filter.ConnectorFromCode(code) == filter.Or {
		return "||"
	}
	return "&&"
}

func buildTerm(c filter.WireCondition) (string, error) {
	attr, _ := filter.AttributeByID(c.Column)
	op, _ := filter.OperatorByCode(c.Operator)

	if attr.Kind == filter.KindNumeric {
		lit, err := numericLiteral(c.Value)
		if err != nil {
			return "", err
		}
		sym, ok := numericSymbols[op]
		if !ok {
			return "", apperror.NewEvaluation("operator not supported for numeric column").
				WithDetail("column", c.Column).
				WithDetail("operator", c.Operator)
		}
		return fmt.Sprintf("%s %s %s", c.Column, sym, lit), nil
	}

	lit := strconv.Quote(c.Value)
	switch op {
	case filter.OpEqual:
		return fmt.Sprintf("%s == %s", c.Column, lit), nil
	case filter.OpNotEqual:
		return fmt.Sprintf("%s != %s", c.Column, lit), nil
	case filter.OpContains:
		return fmt.Sprintf("%s.contains(%s)", c.Column, lit), nil
	case filter.OpNotContains:
		return fmt.Sprintf("!%s.contains(%s)", c.Column, lit), nil
	case filter.OpStartsWith:
		return fmt.Sprintf("%s.startsWith(%s)", c.Column, lit), nil
	case filter.OpEndsWith:
		return fmt.Sprintf("%s.endsWith(%s)", c.Column, lit), nil
	}
	return "", apperror.NewEvaluation("operator not supported for categorical column").
		WithDetail("column", c.Column).
		WithDetail("operator", c.Operator)
}

var numericSymbols = map[filter.Operator]string{
	filter.OpEqual:              "==",
	filter.OpNotEqual:           "!=",
	filter.OpLessThan:           "<",
	filter.OpGreaterThan:        ">",
	filter.OpLessThanOrEqual:    "<=",
	filter.OpGreaterThanOrEqual: ">=",
}

// numericLiteral renders the value as a CEL double literal. Declared
// variables are doubles, and CEL does not coerce int literals, so "25"
// becomes "25.0".
func numericLiteral(raw string) (string, error) {
	d, err := filter.ParseNumericValue(raw)
	if err != nil {
		return "", apperror.NewValidation("value must be numeric").
			WithDetail("value", raw)
	}
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s, nil
}
