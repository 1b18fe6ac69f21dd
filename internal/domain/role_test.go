package domain

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		raw     string
		want    Role
		wantErr bool
	}{
		{"user", RoleUser, false},
		{"admin", RoleAdmin, false},
		{"superadmin", RoleSuperadmin, false},
		{"Admin", RoleAdmin, false},
		{"SUPERADMIN", RoleSuperadmin, false},
		{"super-admin", RoleSuperadmin, false},
		{"super_admin", RoleSuperadmin, false},
		{"  user  ", RoleUser, false},
		{"", "", true},
		{"owner", "", true},
		{"administrator", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseRole(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseRole(%q) accepted an unknown role as %q", tc.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRole(%q): %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("ParseRole(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleAdmin, RoleSuperadmin} {
		if !role.Valid() {
			t.Errorf("%q should be valid", role)
		}
	}
	for _, role := range []Role{"", "owner", "Admin"} {
		if role.Valid() {
			t.Errorf("%q should not be valid", role)
		}
	}
}

func TestSessionApply(t *testing.T) {
	base := Session{Username: "jdoe", Role: RoleAdmin, Name: "J. Doe", Department: "Hematology", Station: "Front Desk"}

	name := "Jane Doe"
	station := ""
	patched := base.Apply(SessionPatch{Name: &name, Station: &station})

	if patched.Name != "Jane Doe" {
		t.Fatalf("name not patched: %+v", patched)
	}
	if patched.Station != "" {
		t.Fatal("explicit empty string must overwrite the field")
	}
	if patched.Username != "jdoe" || patched.Role != RoleAdmin || patched.Department != "Hematology" {
		t.Fatalf("unpatched fields changed: %+v", patched)
	}
	if base.Name != "J. Doe" {
		t.Fatal("Apply mutated the receiver")
	}
}
