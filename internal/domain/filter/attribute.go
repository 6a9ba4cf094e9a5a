// Package filter provides the target-group filter expression model:
// the attribute catalog, operator resolution, the editable expression
// (groups of conditions joined by AND/OR connectors), reordering, and
// serialization to the backend wire format.
package filter

// Kind classifies an attribute's value domain.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
)

// Attribute is one targetable employee property.
type Attribute struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
}

// Attribute ids form a closed vocabulary; they are wire constants and must
// match the backend's column names exactly ("residentalarea" included).
const (
	AttrFunctionalArea  = "functionalarea"
	AttrDepartment      = "department"
	AttrProject         = "project"
	AttrDivision        = "division"
	AttrSubDivision     = "subdivision"
	AttrPosition        = "position"
	AttrPositionGroup   = "positiongroup"
	AttrManagerialLevel = "manageriallevel"
	AttrResidentalArea  = "residentalarea"
	AttrGender          = "gender"
	AttrRole            = "role"
	AttrAge             = "age"
	AttrTenure          = "tenure"
)

// Catalog is the fixed, compiled-in attribute list. Order matters: the first
// entry is the default attribute for new conditions.
var Catalog = []Attribute{
	{ID: AttrFunctionalArea, Kind: KindCategorical},
	{ID: AttrDepartment, Kind: KindCategorical},
	{ID: AttrProject, Kind: KindCategorical},
	{ID: AttrDivision, Kind: KindCategorical},
	{ID: AttrSubDivision, Kind: KindCategorical},
	{ID: AttrPosition, Kind: KindCategorical},
	{ID: AttrPositionGroup, Kind: KindCategorical},
	{ID: AttrManagerialLevel, Kind: KindCategorical},
	{ID: AttrResidentalArea, Kind: KindCategorical},
	{ID: AttrGender, Kind: KindCategorical},
	{ID: AttrRole, Kind: KindCategorical},
	{ID: AttrAge, Kind: KindNumeric},
	{ID: AttrTenure, Kind: KindNumeric},
}

// AttributeByID looks up a catalog attribute by id.
func AttributeByID(attrID string) (Attribute, bool) {
	for _, a := range Catalog {
		if a.ID == attrID {
			return a, true
		}
	}
	return Attribute{}, false
}

// DefaultAttribute returns the attribute preselected for new conditions.
func DefaultAttribute() Attribute {
	return Catalog[0]
}

// CategoricalAttributes returns the catalog entries that may be backed by a
// reference-value list.
func CategoricalAttributes() []Attribute {
	out := make([]Attribute, 0, len(Catalog))
	for _, a := range Catalog {
		if a.Kind == KindCategorical {
			out = append(out, a)
		}
	}
	return out
}
