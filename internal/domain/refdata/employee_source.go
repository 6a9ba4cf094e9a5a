package refdata

import (
	"context"

	"audiens/internal/domain/employee"
)

// EmployeeSource serves reference values from the local employee store's
// distinct attribute values. Used when no upstream catalog endpoints are
// configured.
type EmployeeSource struct {
	repo employee.Repository
}

// NewEmployeeSource creates a source backed by the employee repository.
func NewEmployeeSource(repo employee.Repository) *EmployeeSource {
	return &EmployeeSource{repo: repo}
}

// FetchValues implements Source.
func (s *EmployeeSource) FetchValues(ctx context.Context, attributeID string) ([]Value, error) {
	names, err := s.repo.DistinctValues(ctx, attributeID)
	if err != nil {
		return nil, err
	}
	values := make([]Value, 0, len(names))
	for _, name := range names {
		values = append(values, Value{ID: name, Name: name})
	}
	return values, nil
}

var _ Source = (*EmployeeSource)(nil)
