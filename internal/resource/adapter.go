// Package resource adapts each administered entity type to the generic
// manager engine: endpoint paths, editor field sets and key encoding are
// the only things that vary per resource.
package resource

import (
	"context"

	"github.com/spec-kit/staff-console/internal/manager"
	"github.com/spec-kit/staff-console/internal/remote"
)

// listPage fetches one page through the remote client and reshapes the
// envelope for the engine.
func listPage[T manager.Item[T]](ctx context.Context, api *remote.Client, path string, page, perPage int, query string, filters map[string]string) (manager.Page[T], error) {
	env, err := remote.List[T](ctx, api, path, remote.ListParams{
		Page:    page,
		PerPage: perPage,
		Query:   query,
		Filters: filters,
	})
	if err != nil {
		return manager.Page[T]{}, err
	}
	return manager.Page[T]{
		Items:   env.Items,
		Total:   env.Total,
		Page:    env.Page,
		PerPage: env.PerPage,
	}, nil
}
