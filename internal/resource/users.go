package resource

import (
	"context"

	"github.com/spec-kit/staff-console/internal/domain"
	"github.com/spec-kit/staff-console/internal/manager"
	"github.com/spec-kit/staff-console/internal/remote"
)

const usersPath = "/api/admin/users"

// Users adapts the managed staff accounts screen.
type Users struct {
	api *remote.Client
}

// NewUsers builds the adapter.
func NewUsers(api *remote.Client) *Users {
	return &Users{api: api}
}

// UserFields is the editor field set for a managed user. A new account
// needs credentials and contact identity; the rest is optional profile.
func UserFields() []manager.FieldSpec {
	return []manager.FieldSpec{
		{Name: "username", Required: true},
		{Name: "password", Required: true},
		{Name: "name", Required: true},
		{Name: "email", Required: true},
		{Name: "phone"},
		{Name: "designation"},
		{Name: "department"},
		{Name: "station"},
		{Name: "role"},
	}
}

func (u *Users) List(ctx context.Context, page, perPage int, query string, filters map[string]string) (manager.Page[domain.ManagedUser], error) {
	return listPage[domain.ManagedUser](ctx, u.api, usersPath, page, perPage, query, filters)
}

func (u *Users) Create(ctx context.Context, form map[string]any) (domain.ManagedUser, error) {
	return remote.Create[domain.ManagedUser](ctx, u.api, usersPath, form)
}

func (u *Users) Update(ctx context.Context, key string, form map[string]any) (domain.ManagedUser, error) {
	return remote.Update[domain.ManagedUser](ctx, u.api, usersPath+"/"+key, form)
}

func (u *Users) SetActive(ctx context.Context, key string, active bool) error {
	return u.api.SetActive(ctx, usersPath+"/"+key+"/active", active)
}

func (u *Users) Delete(ctx context.Context, key string) error {
	return u.api.Delete(ctx, usersPath+"/"+key)
}
