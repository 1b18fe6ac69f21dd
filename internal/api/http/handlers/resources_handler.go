package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-console/internal/auth"
	"github.com/spec-kit/staff-console/internal/console"
	"github.com/spec-kit/staff-console/internal/manager"
	apperrors "github.com/spec-kit/staff-console/pkg/util/errorutil"
)

// ResourceHandler exposes one managed resource screen over HTTP. The five
// CRUD screens are instantiations of this one handler over their manager.
type ResourceHandler[T manager.Item[T]] struct {
	registry *console.Registry
	pick     func(*console.Managers) *manager.Manager[T]
}

// NewResourceHandler constructs handler.
func NewResourceHandler[T manager.Item[T]](registry *console.Registry, pick func(*console.Managers) *manager.Manager[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{registry: registry, pick: pick}
}

func (h *ResourceHandler[T]) manager(c *fiber.Ctx) (*manager.Manager[T], error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("not logged in")
	}
	return h.pick(h.registry.For(principal.SessionID, principal.Session)), nil
}

// List handles GET. Default requests load the page synchronously; a
// keystroke event (live=1) goes through the debounced search instead, so a
// typing burst settles into a single remote request.
func (h *ResourceHandler[T]) List(c *fiber.Ctx) error {
	mgr, err := h.manager(c)
	if err != nil {
		return err
	}

	query := c.Query("q")
	if only := c.Query("only_active"); only != "" {
		mgr.SetFilter("only_active", only)
	} else {
		mgr.SetFilter("only_active", "")
	}

	if c.QueryBool("live") {
		// the debounced load outlives this request, so it cannot run on
		// the request context
		mgr.Search(context.Background(), query)
		return c.JSON(pageResponse(mgr.State()))
	}

	page := c.QueryInt("page", 1)
	if err := mgr.Load(c.UserContext(), page, query); err != nil {
		return err
	}
	return c.JSON(pageResponse(mgr.State()))
}

// Create handles POST: open the create editor, fill it from the body and
// submit. A rejected submit leaves the editor open with the form intact.
func (h *ResourceHandler[T]) Create(c *fiber.Ctx) error {
	mgr, err := h.manager(c)
	if err != nil {
		return err
	}

	form := map[string]any{}
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	editor := mgr.OpenCreate()
	editor.SetForm(form)
	if err := editor.Submit(c.UserContext()); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(pageResponse(mgr.State()))
}

// Update handles PATCH /:key for an item on the current page.
func (h *ResourceHandler[T]) Update(c *fiber.Ctx) error {
	mgr, err := h.manager(c)
	if err != nil {
		return err
	}

	form := map[string]any{}
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	editor, err := mgr.OpenEdit(c.Params("key"))
	if err != nil {
		return err
	}
	editor.SetForm(form)
	if err := editor.Submit(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(pageResponse(mgr.State()))
}

// CancelModal handles POST /modal/cancel; a cancelled editor triggers no
// reload.
func (h *ResourceHandler[T]) CancelModal(c *fiber.Ctx) error {
	mgr, err := h.manager(c)
	if err != nil {
		return err
	}
	if editor, open := mgr.Modal(); open {
		editor.Cancel(c.UserContext())
	}
	return c.SendStatus(http.StatusNoContent)
}

// Toggle handles PATCH /:key/active, the optimistic activity flip.
func (h *ResourceHandler[T]) Toggle(c *fiber.Ctx) error {
	mgr, err := h.manager(c)
	if err != nil {
		return err
	}
	if err := mgr.ToggleActive(c.UserContext(), c.Params("key")); err != nil {
		return err
	}
	return c.JSON(pageResponse(mgr.State()))
}

// Delete handles DELETE /:key?confirm=1. Deletion is irreversible, so the
// confirmation flag is mandatory.
func (h *ResourceHandler[T]) Delete(c *fiber.Ctx) error {
	mgr, err := h.manager(c)
	if err != nil {
		return err
	}
	if err := mgr.Remove(c.UserContext(), c.Params("key"), c.QueryBool("confirm")); err != nil {
		return err
	}
	return c.JSON(pageResponse(mgr.State()))
}

// pageResponse shapes a state snapshot for transport.
func pageResponse[T manager.Item[T]](state manager.State[T]) fiber.Map {
	return fiber.Map{"data": fiber.Map{
		"items":    state.Items,
		"total":    state.Total,
		"page":     state.Page,
		"per_page": state.PerPage,
		"pages":    state.Pages(),
		"query":    state.Query,
		"phase":    state.Phase,
	}}
}
