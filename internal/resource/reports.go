package resource

import (
	"context"

	"github.com/spec-kit/staff-console/internal/domain"
	"github.com/spec-kit/staff-console/internal/manager"
	"github.com/spec-kit/staff-console/internal/remote"
	apperrors "github.com/spec-kit/staff-console/pkg/util/errorutil"
)

const (
	userReportsPath  = "/api/reports/user"
	adminReportsPath = "/api/reports/admin"
)

// Reports adapts the report listings. They page and filter like every other
// resource but are read-only: generation and download belong to the remote
// API, and rows are never edited or deleted from the console.
type Reports struct {
	api  *remote.Client
	path string
}

// NewUserReports lists the signed-in user's own reports.
func NewUserReports(api *remote.Client) *Reports {
	return &Reports{api: api, path: userReportsPath}
}

// NewAdminReports lists reports across departments and stations.
func NewAdminReports(api *remote.Client) *Reports {
	return &Reports{api: api, path: adminReportsPath}
}

func (r *Reports) List(ctx context.Context, page, perPage int, query string, filters map[string]string) (manager.Page[domain.Report], error) {
	return listPage[domain.Report](ctx, r.api, r.path, page, perPage, query, filters)
}

func (r *Reports) Create(ctx context.Context, form map[string]any) (domain.Report, error) {
	return domain.Report{}, apperrors.NewValidationError("reports are read-only", nil)
}

func (r *Reports) Update(ctx context.Context, key string, form map[string]any) (domain.Report, error) {
	return domain.Report{}, apperrors.NewValidationError("reports are read-only", nil)
}

func (r *Reports) SetActive(ctx context.Context, key string, active bool) error {
	return apperrors.NewValidationError("reports are read-only", nil)
}

func (r *Reports) Delete(ctx context.Context, key string) error {
	return apperrors.NewValidationError("reports are read-only", nil)
}
