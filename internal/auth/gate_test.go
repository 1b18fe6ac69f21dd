package auth

import (
	"testing"

	"github.com/spec-kit/staff-console/internal/domain"
)

func TestCanEnter(t *testing.T) {
	admin := &domain.Session{Username: "jdoe", Role: domain.RoleAdmin}
	user := &domain.Session{Username: "asmith", Role: domain.RoleUser}
	super := &domain.Session{Username: "root", Role: domain.RoleSuperadmin}

	cases := []struct {
		name     string
		required []domain.Role
		sess     *domain.Session
		want     bool
	}{
		{"nil session denied", []domain.Role{domain.RoleUser}, nil, false},
		{"nil session denied even for empty set", nil, nil, false},
		{"empty set admits any authenticated", nil, user, true},
		{"exact match admits", []domain.Role{domain.RoleAdmin}, admin, true},
		{"membership in larger set admits", []domain.Role{domain.RoleAdmin, domain.RoleSuperadmin}, admin, true},
		{"non-member denied", []domain.Role{domain.RoleSuperadmin}, admin, false},
		{"no hierarchy: superadmin not implied by admin set", []domain.Role{domain.RoleAdmin}, super, false},
		{"no hierarchy: admin not implied by user set", []domain.Role{domain.RoleUser}, admin, false},
		{"user denied from admin view", []domain.Role{domain.RoleAdmin, domain.RoleSuperadmin}, user, false},
		{"invalid role denied", []domain.Role{domain.RoleAdmin}, &domain.Session{Username: "x", Role: "owner"}, false},
		{"empty role denied by empty set", nil, &domain.Session{Username: "x"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanEnter(tc.required, tc.sess); got != tc.want {
				t.Fatalf("CanEnter(%v, %+v) = %v, want %v", tc.required, tc.sess, got, tc.want)
			}
		})
	}
}
