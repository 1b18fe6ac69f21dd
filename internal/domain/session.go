package domain

// Session is the console-held record of the authenticated identity. At most
// one Session exists per browser context; absence means logged out.
type Session struct {
	Username   string `json:"username"`
	Role       Role   `json:"role"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	Station    string `json:"station,omitempty"`
}

// SessionPatch carries a partial profile refresh. Nil fields are left
// untouched by the merge.
type SessionPatch struct {
	Username   *string `json:"username,omitempty"`
	Role       *Role   `json:"role,omitempty"`
	Name       *string `json:"name,omitempty"`
	Department *string `json:"department,omitempty"`
	Station    *string `json:"station,omitempty"`
}

// Apply shallow-merges the patch into a copy of the session.
func (s Session) Apply(patch SessionPatch) Session {
	next := s
	if patch.Username != nil {
		next.Username = *patch.Username
	}
	if patch.Role != nil {
		next.Role = *patch.Role
	}
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Department != nil {
		next.Department = *patch.Department
	}
	if patch.Station != nil {
		next.Station = *patch.Station
	}
	return next
}
