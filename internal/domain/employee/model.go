// Package employee provides the employee record the evaluator targets and
// the repository the reference-value endpoints draw from.
package employee

import (
	"context"

	"audiens/internal/core/id"
	"audiens/internal/domain/filter"
)

// Employee carries the thirteen targetable attributes.
type Employee struct {
	ID              id.ID   `db:"id" json:"id"`
	FullName        string  `db:"full_name" json:"fullName"`
	FunctionalArea  string  `db:"functional_area" json:"functionalArea"`
	Department      string  `db:"department" json:"department"`
	Project         string  `db:"project" json:"project"`
	Division        string  `db:"division" json:"division"`
	SubDivision     string  `db:"sub_division" json:"subDivision"`
	Position        string  `db:"position" json:"position"`
	PositionGroup   string  `db:"position_group" json:"positionGroup"`
	ManagerialLevel string  `db:"managerial_level" json:"managerialLevel"`
	ResidentialArea string  `db:"residential_area" json:"residentialArea"`
	Gender          string  `db:"gender" json:"gender"`
	Role            string  `db:"role" json:"role"`
	Age             int     `db:"age" json:"age"`
	TenureYears     float64 `db:"tenure_years" json:"tenureYears"`
}

// AttributeValues maps the employee onto the wire column vocabulary, in the
// shape the evaluator's CEL programs expect: numeric attributes as float64,
// categorical as string.
func (e *Employee) AttributeValues() map[string]any {
	return map[string]any{
		filter.AttrFunctionalArea:  e.FunctionalArea,
		filter.AttrDepartment:      e.Department,
		filter.AttrProject:         e.Project,
		filter.AttrDivision:        e.Division,
		filter.AttrSubDivision:     e.SubDivision,
		filter.AttrPosition:        e.Position,
		filter.AttrPositionGroup:   e.PositionGroup,
		filter.AttrManagerialLevel: e.ManagerialLevel,
		filter.AttrResidentalArea:  e.ResidentialArea,
		filter.AttrGender:          e.Gender,
		filter.AttrRole:            e.Role,
		filter.AttrAge:             float64(e.Age),
		filter.AttrTenure:          e.TenureYears,
	}
}

// Repository defines employee persistence.
type Repository interface {
	// List returns all employees.
	List(ctx context.Context) ([]Employee, error)

	// DistinctValues returns the distinct non-empty values of one
	// categorical attribute, ordered alphabetically.
	DistinctValues(ctx context.Context, attributeID string) ([]string, error)
}
