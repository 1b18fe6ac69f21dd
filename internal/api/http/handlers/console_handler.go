package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-console/internal/api/dto"
	"github.com/spec-kit/staff-console/internal/auth"
	"github.com/spec-kit/staff-console/internal/events"
	"github.com/spec-kit/staff-console/internal/remote"
	apperrors "github.com/spec-kit/staff-console/pkg/util/errorutil"
)

// ConsoleHandler covers the small cross-cutting endpoints: pending failure
// notices, editor dropdown catalogs and password changes.
type ConsoleHandler struct {
	api    *remote.Client
	buffer *events.Buffer
}

// NewConsoleHandler constructs handler.
func NewConsoleHandler(api *remote.Client, buffer *events.Buffer) *ConsoleHandler {
	return &ConsoleHandler{api: api, buffer: buffer}
}

// Notices handles GET /api/notices, draining this session's pending
// failure notices so nothing wrong stays unreported.
func (h *ConsoleHandler) Notices(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not logged in")
	}
	notices := h.buffer.Drain(principal.SessionID)
	if notices == nil {
		notices = []events.Notice{}
	}
	return c.JSON(fiber.Map{"data": notices})
}

// Dropdowns handles GET /api/dropdowns, the catalog values editors offer.
func (h *ConsoleHandler) Dropdowns(c *fiber.Ctx) error {
	catalogs, err := h.api.Dropdowns(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": catalogs})
}

// ChangePassword handles POST /api/password/change for the signed-in
// account.
func (h *ConsoleHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not logged in")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("current_password and new_password required", nil)
	}

	if err := h.api.ChangePassword(c.UserContext(), principal.Session.Username, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}
