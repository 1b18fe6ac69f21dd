package resource

import (
	"context"

	"github.com/spec-kit/staff-console/internal/domain"
	"github.com/spec-kit/staff-console/internal/manager"
	"github.com/spec-kit/staff-console/internal/remote"
)

const shiftsPath = "/api/shifts"

// Shifts adapts the shifts screen.
type Shifts struct {
	api *remote.Client
}

// NewShifts builds the adapter.
func NewShifts(api *remote.Client) *Shifts {
	return &Shifts{api: api}
}

// ShiftFields needs only a name.
func ShiftFields() []manager.FieldSpec {
	return []manager.FieldSpec{
		{Name: "name", Required: true},
		{Name: "is_active"},
	}
}

func (s *Shifts) List(ctx context.Context, page, perPage int, query string, filters map[string]string) (manager.Page[domain.Shift], error) {
	return listPage[domain.Shift](ctx, s.api, shiftsPath, page, perPage, query, filters)
}

func (s *Shifts) Create(ctx context.Context, form map[string]any) (domain.Shift, error) {
	return remote.Create[domain.Shift](ctx, s.api, shiftsPath, form)
}

func (s *Shifts) Update(ctx context.Context, key string, form map[string]any) (domain.Shift, error) {
	return remote.Update[domain.Shift](ctx, s.api, shiftsPath+"/"+key, form)
}

func (s *Shifts) SetActive(ctx context.Context, key string, active bool) error {
	return s.api.SetActive(ctx, shiftsPath+"/"+key+"/active", active)
}

func (s *Shifts) Delete(ctx context.Context, key string) error {
	return s.api.Delete(ctx, shiftsPath+"/"+key)
}
