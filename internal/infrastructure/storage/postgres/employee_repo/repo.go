// Package employee_repo implements employee.Repository on PostgreSQL.
package employee_repo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"audiens/internal/core/apperror"
	"audiens/internal/domain/employee"
	"audiens/internal/domain/filter"
	"audiens/internal/infrastructure/storage/postgres"
)

const table = "employees"

// attributeColumns maps wire attribute ids to table columns. Only
// categorical attributes participate in distinct-value queries.
var attributeColumns = map[string]string{
	filter.AttrFunctionalArea:  "functional_area",
	filter.AttrDepartment:      "department",
	filter.AttrProject:         "project",
	filter.AttrDivision:        "division",
	filter.AttrSubDivision:     "sub_division",
	filter.AttrPosition:        "position",
	filter.AttrPositionGroup:   "position_group",
	filter.AttrManagerialLevel: "managerial_level",
	filter.AttrResidentalArea:  "residential_area",
	filter.AttrGender:          "gender",
	filter.AttrRole:            "role",
}

// Repo implements employee.Repository.
type Repo struct {
	pool *postgres.Pool
}

// New creates an employee repository.
func New(pool *postgres.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ employee.Repository = (*Repo)(nil)

// List returns all employees.
func (r *Repo) List(ctx context.Context) ([]employee.Employee, error) {
	sql, args, err := sq.Select(
		"id", "full_name", "functional_area", "department", "project",
		"division", "sub_division", "position", "position_group",
		"managerial_level", "residential_area", "gender", "role",
		"age", "tenure_years",
	).
		From(table).
		OrderBy("full_name").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []employee.Employee
	if err := pgxscan.Select(ctx, r.pool, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return out, nil
}

// DistinctValues returns the distinct non-empty values of one categorical
// attribute, ordered alphabetically.
func (r *Repo) DistinctValues(ctx context.Context, attributeID string) ([]string, error) {
	column, ok := attributeColumns[attributeID]
	if !ok {
		return nil, apperror.NewValidation("attribute has no reference values").
			WithDetail("attribute", attributeID)
	}

	sql, args, err := sq.Select("DISTINCT " + column).
		From(table).
		Where(sq.NotEq{column: ""}).
		OrderBy(column).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var values []string
	if err := pgxscan.Select(ctx, r.pool, &values, sql, args...); err != nil {
		return nil, fmt.Errorf("distinct values for %s: %w", attributeID, err)
	}
	return values, nil
}
