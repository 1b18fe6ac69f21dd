package dto

import "github.com/spec-kit/staff-console/internal/domain"

// LoginRequest payload for console sign-in.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse mirrors the active session back to the dashboard.
type SessionResponse struct {
	Username   string      `json:"username"`
	Role       domain.Role `json:"role"`
	Name       string      `json:"name"`
	Department string      `json:"department,omitempty"`
	Station    string      `json:"station,omitempty"`
}

// SessionFromDomain converts the stored session for transport.
func SessionFromDomain(sess domain.Session) SessionResponse {
	return SessionResponse{
		Username:   sess.Username,
		Role:       sess.Role,
		Name:       sess.Name,
		Department: sess.Department,
		Station:    sess.Station,
	}
}

// SessionPatchRequest carries a partial profile refresh.
type SessionPatchRequest struct {
	Name       *string `json:"name,omitempty"`
	Department *string `json:"department,omitempty"`
	Station    *string `json:"station,omitempty"`
}

// ToPatch converts the request to a domain patch. Username and role are
// never patchable over the wire; they only change through a fresh login.
func (r SessionPatchRequest) ToPatch() domain.SessionPatch {
	return domain.SessionPatch{
		Name:       r.Name,
		Department: r.Department,
		Station:    r.Station,
	}
}

// ChangePasswordRequest payload for authenticated password changes.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
