package resource

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/staff-console/internal/domain"
	"github.com/spec-kit/staff-console/internal/manager"
	"github.com/spec-kit/staff-console/internal/remote"
	apperrors "github.com/spec-kit/staff-console/pkg/util/errorutil"
)

const (
	adminsCombinedPath = "/api/admins/combined"
	adminsPath         = "/api/admins"
	superadminsPath    = "/api/superadmins"
)

// Admins adapts the combined admin/superadmin screen the superadmin
// dashboard manages. Rows come from two upstream collections, so the item
// key carries the role ("admin:3", "superadmin:1") and mutations are routed
// to the matching endpoint.
type Admins struct {
	api *remote.Client
}

// NewAdmins builds the adapter.
func NewAdmins(api *remote.Client) *Admins {
	return &Admins{api: api}
}

// AdminFields requires credentials; the role decides which collection the
// account is created in and defaults to admin.
func AdminFields() []manager.FieldSpec {
	return []manager.FieldSpec{
		{Name: "username", Required: true},
		{Name: "password", Required: true},
		{Name: "name"},
		{Name: "email"},
		{Name: "department"},
		{Name: "station"},
		{Name: "role"},
	}
}

func (a *Admins) List(ctx context.Context, page, perPage int, query string, filters map[string]string) (manager.Page[domain.AdminAccount], error) {
	return listPage[domain.AdminAccount](ctx, a.api, adminsCombinedPath, page, perPage, query, filters)
}

func (a *Admins) Create(ctx context.Context, form map[string]any) (domain.AdminAccount, error) {
	path := adminsPath
	if roleOf(form) == domain.RoleSuperadmin {
		path = superadminsPath
	}
	return remote.Create[domain.AdminAccount](ctx, a.api, path, form)
}

func (a *Admins) Update(ctx context.Context, key string, form map[string]any) (domain.AdminAccount, error) {
	base, id, err := splitKey(key)
	if err != nil {
		return domain.AdminAccount{}, err
	}
	return remote.Update[domain.AdminAccount](ctx, a.api, base+"/"+id, form)
}

func (a *Admins) SetActive(ctx context.Context, key string, active bool) error {
	base, id, err := splitKey(key)
	if err != nil {
		return err
	}
	return a.api.SetActive(ctx, base+"/"+id+"/active", active)
}

func (a *Admins) Delete(ctx context.Context, key string) error {
	base, id, err := splitKey(key)
	if err != nil {
		return err
	}
	return a.api.Delete(ctx, base+"/"+id)
}

// splitKey resolves a combined-listing key to its endpoint base and raw id.
func splitKey(key string) (base, id string, err error) {
	role, id, found := strings.Cut(key, ":")
	if !found || id == "" {
		return "", "", apperrors.NewValidationError(fmt.Sprintf("malformed admin key %q", key), nil)
	}
	switch domain.Role(role) {
	case domain.RoleAdmin:
		return adminsPath, id, nil
	case domain.RoleSuperadmin:
		return superadminsPath, id, nil
	default:
		return "", "", apperrors.NewValidationError(fmt.Sprintf("malformed admin key %q", key), nil)
	}
}

func roleOf(form map[string]any) domain.Role {
	raw, _ := form["role"].(string)
	role, err := domain.ParseRole(raw)
	if err != nil {
		return domain.RoleAdmin
	}
	return role
}
