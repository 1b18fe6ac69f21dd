package resource

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-console/internal/config"
	"github.com/spec-kit/staff-console/internal/remote"
)

func TestSplitKey(t *testing.T) {
	cases := []struct {
		key      string
		wantBase string
		wantID   string
		wantErr  bool
	}{
		{"admin:3", "/api/admins", "3", false},
		{"superadmin:1", "/api/superadmins", "1", false},
		{"3", "", "", true},
		{"admin:", "", "", true},
		{"user:3", "", "", true},
		{"", "", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			base, id, err := splitKey(tc.key)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("splitKey(%q) accepted a malformed key", tc.key)
				}
				return
			}
			if err != nil {
				t.Fatalf("splitKey(%q): %v", tc.key, err)
			}
			if base != tc.wantBase || id != tc.wantID {
				t.Fatalf("splitKey(%q) = %q, %q", tc.key, base, id)
			}
		})
	}
}

func TestAdminsCreateRoutesByRole(t *testing.T) {
	cases := []struct {
		name     string
		form     map[string]any
		wantPath string
	}{
		{"explicit superadmin", map[string]any{"username": "root", "password": "x", "role": "superadmin"}, "/api/superadmins"},
		{"explicit admin", map[string]any{"username": "jdoe", "password": "x", "role": "admin"}, "/api/admins"},
		{"missing role defaults to admin", map[string]any{"username": "jdoe", "password": "x"}, "/api/admins"},
		{"unknown role defaults to admin", map[string]any{"username": "jdoe", "password": "x", "role": "owner"}, "/api/admins"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				_ = json.NewEncoder(w).Encode(map[string]any{"id": 1, "username": "jdoe"})
			}))
			t.Cleanup(srv.Close)

			adapter := NewAdmins(remote.New(config.RemoteConfig{BaseURL: srv.URL}, zap.NewNop()))
			if _, err := adapter.Create(context.Background(), tc.form); err != nil {
				t.Fatalf("Create: %v", err)
			}
			if gotPath != tc.wantPath {
				t.Fatalf("path = %q, want %q", gotPath, tc.wantPath)
			}
		})
	}
}

func TestAdminsMutationsUseRoutedEndpoints(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	adapter := NewAdmins(remote.New(config.RemoteConfig{BaseURL: srv.URL}, zap.NewNop()))

	ctx := context.Background()
	if err := adapter.SetActive(ctx, "superadmin:4", false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/api/superadmins/4/active" {
		t.Fatalf("SetActive hit %s %s", gotMethod, gotPath)
	}

	if err := adapter.Delete(ctx, "admin:9"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/admins/9" {
		t.Fatalf("Delete hit %s %s", gotMethod, gotPath)
	}

	if err := adapter.Delete(ctx, "banana"); err == nil {
		t.Fatal("malformed key must be rejected before any request")
	}
}
