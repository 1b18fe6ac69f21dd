package resource

import (
	"context"

	"github.com/spec-kit/staff-console/internal/domain"
	"github.com/spec-kit/staff-console/internal/manager"
	"github.com/spec-kit/staff-console/internal/remote"
)

const departmentsPath = "/api/departments"

// Departments adapts the departments screen.
type Departments struct {
	api *remote.Client
}

// NewDepartments builds the adapter.
func NewDepartments(api *remote.Client) *Departments {
	return &Departments{api: api}
}

// DepartmentFields requires a name and a sampling percentage in [0,100].
func DepartmentFields() []manager.FieldSpec {
	return []manager.FieldSpec{
		{Name: "name", Required: true},
		{Name: "percent", Required: true, Numeric: true, Min: 0, Max: 100},
		{Name: "is_active"},
	}
}

func (d *Departments) List(ctx context.Context, page, perPage int, query string, filters map[string]string) (manager.Page[domain.Department], error) {
	return listPage[domain.Department](ctx, d.api, departmentsPath, page, perPage, query, filters)
}

func (d *Departments) Create(ctx context.Context, form map[string]any) (domain.Department, error) {
	return remote.Create[domain.Department](ctx, d.api, departmentsPath, form)
}

func (d *Departments) Update(ctx context.Context, key string, form map[string]any) (domain.Department, error) {
	return remote.Update[domain.Department](ctx, d.api, departmentsPath+"/"+key, form)
}

func (d *Departments) SetActive(ctx context.Context, key string, active bool) error {
	return d.api.SetActive(ctx, departmentsPath+"/"+key+"/active", active)
}

func (d *Departments) Delete(ctx context.Context, key string) error {
	return d.api.Delete(ctx, departmentsPath+"/"+key)
}
