package auth

import "github.com/spec-kit/staff-console/internal/domain"

// CanEnter decides whether a view requiring the given role set may render
// for the session. It is pure: no session always denies, an empty required
// set admits any authenticated session, and otherwise membership is exact.
// There is no role hierarchy; a view that accepts admins and superadmins
// must list both.
func CanEnter(required []domain.Role, sess *domain.Session) bool {
	if sess == nil || !sess.Role.Valid() {
		return false
	}
	if len(required) == 0 {
		return true
	}
	for _, role := range required {
		if role == sess.Role {
			return true
		}
	}
	return false
}
