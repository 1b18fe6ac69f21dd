package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-console/internal/api/dto"
	"github.com/spec-kit/staff-console/internal/auth"
	"github.com/spec-kit/staff-console/internal/console"
	"github.com/spec-kit/staff-console/internal/events"
	"github.com/spec-kit/staff-console/internal/remote"
	"github.com/spec-kit/staff-console/internal/session"
	"github.com/spec-kit/staff-console/internal/storage"
	apperrors "github.com/spec-kit/staff-console/pkg/util/errorutil"
)

// AuthHandler owns the session lifecycle: login against the remote API,
// session inspection and refresh, and logout.
type AuthHandler struct {
	api      *remote.Client
	tokens   *auth.TokenManager
	storage  storage.Storage
	registry *console.Registry
	buffer   *events.Buffer
	cookie   string
	logger   *zap.Logger
}

// NewAuthHandler constructs handler.
func NewAuthHandler(api *remote.Client, tokens *auth.TokenManager, st storage.Storage, registry *console.Registry, buffer *events.Buffer, cookieName string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		api:      api,
		tokens:   tokens,
		storage:  st,
		registry: registry,
		buffer:   buffer,
		cookie:   cookieName,
		logger:   logger,
	}
}

// Login handles POST /api/auth/login. A successful remote login replaces
// any prior session for this context wholesale.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	identity, err := h.api.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	sessionID := uuid.NewString()
	store := session.NewStore(h.storage, auth.StorageKey(sessionID), h.logger)
	store.Login(identity)
	if _, ok := store.Current(); !ok {
		return apperrors.NewInternalError(nil)
	}

	token, expiresAt, err := h.tokens.GenerateToken(sessionID)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: "Lax",
	})
	h.logger.Info("login", zap.String("username", identity.Username), zap.String("role", identity.Role.String()))

	return c.JSON(fiber.Map{"data": fiber.Map{
		"session": dto.SessionFromDomain(identity),
		"auth":    fiber.Map{"token": token, "expires_at": expiresAt},
	}})
}

// Logout handles POST /api/auth/logout. Idempotent: a second call finds no
// session and still succeeds.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if ok {
		principal.Store.Logout()
		h.registry.Drop(principal.SessionID)
		h.buffer.Forget(principal.SessionID)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.SendStatus(http.StatusNoContent)
}

// Session handles GET /api/session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not logged in")
	}
	return c.JSON(fiber.Map{"data": dto.SessionFromDomain(principal.Session)})
}

// UpdateSession handles PATCH /api/session, an out-of-band profile refresh
// merged shallowly into the stored session.
func (h *AuthHandler) UpdateSession(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not logged in")
	}
	var req dto.SessionPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	principal.Store.Update(req.ToPatch())
	sess, ok := principal.Store.Current()
	if !ok {
		return apperrors.NewUnauthorized("session expired")
	}
	return c.JSON(fiber.Map{"data": dto.SessionFromDomain(sess)})
}
