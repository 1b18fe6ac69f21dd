package resource

import (
	"context"

	"github.com/spec-kit/staff-console/internal/domain"
	"github.com/spec-kit/staff-console/internal/manager"
	"github.com/spec-kit/staff-console/internal/remote"
)

const stationsPath = "/api/admin/stations"

// Stations adapts the stations screen.
type Stations struct {
	api *remote.Client
}

// NewStations builds the adapter.
func NewStations(api *remote.Client) *Stations {
	return &Stations{api: api}
}

// StationFields requires a display name and a short code.
func StationFields() []manager.FieldSpec {
	return []manager.FieldSpec{
		{Name: "name", Required: true},
		{Name: "code", Required: true},
		{Name: "is_active"},
	}
}

func (s *Stations) List(ctx context.Context, page, perPage int, query string, filters map[string]string) (manager.Page[domain.Station], error) {
	return listPage[domain.Station](ctx, s.api, stationsPath, page, perPage, query, filters)
}

func (s *Stations) Create(ctx context.Context, form map[string]any) (domain.Station, error) {
	return remote.Create[domain.Station](ctx, s.api, stationsPath, form)
}

func (s *Stations) Update(ctx context.Context, key string, form map[string]any) (domain.Station, error) {
	return remote.Update[domain.Station](ctx, s.api, stationsPath+"/"+key, form)
}

func (s *Stations) SetActive(ctx context.Context, key string, active bool) error {
	return s.api.SetActive(ctx, stationsPath+"/"+key+"/active", active)
}

func (s *Stations) Delete(ctx context.Context, key string) error {
	return s.api.Delete(ctx, stationsPath+"/"+key)
}
