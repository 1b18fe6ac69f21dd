package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-console/internal/domain"
	"github.com/spec-kit/staff-console/internal/session"
	"github.com/spec-kit/staff-console/internal/storage"
	apperrors "github.com/spec-kit/staff-console/pkg/util/errorutil"
)

const (
	principalKey  = "auth_principal"
	sessionIDKey  = "auth_session_id"
	sessionPrefix = "session:"
)

// Principal is the authenticated caller attached to the request.
type Principal struct {
	SessionID string
	Session   domain.Session
	Store     *session.Store
}

// Middleware resolves the session token into a Principal backed by the
// durable session store.
type Middleware struct {
	tokens  *TokenManager
	storage storage.Storage
	cookie  string
	logger  *zap.Logger
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, st storage.Storage, cookieName string, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, storage: st, cookie: cookieName, logger: logger}
}

// StorageKey maps a session id to its durable storage key.
func StorageKey(sessionID string) string {
	return sessionPrefix + sessionID
}

// Handle enforces authentication for protected routes. The token may arrive
// as a cookie or a bearer header; either way the session store is the
// source of truth and an empty store denies entry.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	tokenStr := m.tokenFromRequest(c)
	if tokenStr == "" {
		return apperrors.NewUnauthorized("not logged in")
	}

	sessionID, err := m.tokens.ParseToken(tokenStr)
	if err != nil {
		return apperrors.NewUnauthorized("invalid session token")
	}

	store := session.NewStore(m.storage, StorageKey(sessionID), m.logger)
	sess, ok := store.Current()
	if !ok {
		return apperrors.NewUnauthorized("session expired")
	}

	c.Locals(principalKey, &Principal{SessionID: sessionID, Session: sess, Store: store})
	c.Locals(sessionIDKey, sessionID)
	return c.Next()
}

func (m *Middleware) tokenFromRequest(c *fiber.Ctx) string {
	if cookie := c.Cookies(m.cookie); cookie != "" {
		return cookie
	}
	header := c.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// RequireRoles gates a route group on an explicitly enumerated role set.
// The check delegates to CanEnter, so an empty set means "any authenticated
// session" and there is never an implicit hierarchy.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("not logged in")
		}
		if !CanEnter(allowed, &principal.Session) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
