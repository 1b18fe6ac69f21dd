package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-console/internal/auth"
	"github.com/spec-kit/staff-console/internal/console"
	"github.com/spec-kit/staff-console/internal/domain"
	"github.com/spec-kit/staff-console/internal/manager"
	apperrors "github.com/spec-kit/staff-console/pkg/util/errorutil"
)

// reportFilterKeys are the type filters a report listing accepts.
var reportFilterKeys = []string{"date_from", "date_to", "shift", "department", "station", "test_type"}

// ReportsHandler exposes the read-only report listings.
type ReportsHandler struct {
	registry *console.Registry
	pick     func(*console.Managers) *manager.Manager[domain.Report]
}

// NewReportsHandler constructs handler.
func NewReportsHandler(registry *console.Registry, pick func(*console.Managers) *manager.Manager[domain.Report]) *ReportsHandler {
	return &ReportsHandler{registry: registry, pick: pick}
}

// List handles GET with the report-specific filter set.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not logged in")
	}
	mgr := h.pick(h.registry.For(principal.SessionID, principal.Session))

	for _, key := range reportFilterKeys {
		mgr.SetFilter(key, c.Query(key))
	}

	if err := mgr.Load(c.UserContext(), c.QueryInt("page", 1), c.Query("q")); err != nil {
		return err
	}
	return c.JSON(pageResponse(mgr.State()))
}
