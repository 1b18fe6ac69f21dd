package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-console/internal/api/http/handlers"
	"github.com/spec-kit/staff-console/internal/auth"
	"github.com/spec-kit/staff-console/internal/config"
	"github.com/spec-kit/staff-console/internal/console"
	"github.com/spec-kit/staff-console/internal/domain"
	"github.com/spec-kit/staff-console/internal/events"
	"github.com/spec-kit/staff-console/internal/manager"
	"github.com/spec-kit/staff-console/internal/observability"
	"github.com/spec-kit/staff-console/internal/remote"
	"github.com/spec-kit/staff-console/internal/storage"
)

const testCookie = "console_session"

// upstream fakes the staff-management API the gateway fronts. Logins
// resolve the role from a fixed user table; listings return small canned
// envelopes.
func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	roles := map[string]string{"jdoe": "admin", "asmith": "user", "root": "superadmin"}

	mux := http.NewServeMux()
	// Go 1.21 ServeMux has no method-prefixed patterns; enforce the method
	// inside each handler instead.
	handle := func(method, path string, fn http.HandlerFunc) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != method {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			fn(w, r)
		})
	}
	handle(http.MethodPost, "/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		role, ok := roles[creds["username"]]
		if !ok || creds["password"] != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "bad credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"username": creds["username"], "role": role, "name": "Test " + creds["username"],
		})
	})
	listing := func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"id": 1, "username": "row-one", "is_active": true},
				{"id": 2, "username": "row-two", "is_active": false},
			},
			"total": 2, "page": 1, "per_page": 8,
		})
	}
	handle(http.MethodGet, "/api/admin/users", listing)
	handle(http.MethodGet, "/api/admins/combined", listing)
	handle(http.MethodGet, "/api/reports/user", listing)
	handle(http.MethodGet, "/api/reports/admin", listing)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := zap.NewNop()
	api := remote.New(config.RemoteConfig{BaseURL: upstream(t).URL, TimeoutSeconds: 5}, logger)

	st := storage.NewMemory()
	dispatcher := events.NewInMemoryDispatcher()
	buffer := events.NewBuffer(dispatcher)
	registry := console.NewRegistry(api, dispatcher, config.ConsoleConfig{PerPage: 8, DebounceMillis: 10}, logger)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	middleware := auth.NewMiddleware(tokens, st, testCookie, logger)

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler("staff-console", "test", st),
		Auth:    handlers.NewAuthHandler(api, tokens, st, registry, buffer, testCookie, logger),
		Console: handlers.NewConsoleHandler(api, buffer),
		Users: handlers.NewResourceHandler(registry,
			func(m *console.Managers) *manager.Manager[domain.ManagedUser] { return m.Users }),
		Admins: handlers.NewResourceHandler(registry,
			func(m *console.Managers) *manager.Manager[domain.AdminAccount] { return m.Admins }),
		Departments: handlers.NewResourceHandler(registry,
			func(m *console.Managers) *manager.Manager[domain.Department] { return m.Departments }),
		Shifts: handlers.NewResourceHandler(registry,
			func(m *console.Managers) *manager.Manager[domain.Shift] { return m.Shifts }),
		Stations: handlers.NewResourceHandler(registry,
			func(m *console.Managers) *manager.Manager[domain.Station] { return m.Stations }),
		UserReports: handlers.NewReportsHandler(registry,
			func(m *console.Managers) *manager.Manager[domain.Report] { return m.UserReports }),
		AdminReports: handlers.NewReportsHandler(registry,
			func(m *console.Managers) *manager.Manager[domain.Report] { return m.AdminReports }),
		AuthMiddleware: middleware,
	})
	return app
}

// login signs in through the full stack and returns the session cookie.
func login(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": "s3cret"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	for _, raw := range resp.Header.Values("Set-Cookie") {
		if strings.HasPrefix(raw, testCookie+"=") {
			return strings.SplitN(strings.SplitN(raw, ";", 2)[0], "=", 2)[1]
		}
	}
	t.Fatal("login did not set the session cookie")
	return ""
}

func get(t *testing.T, app *fiber.App, path, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: cookie})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func TestProtectedRoutesRequireLogin(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/session", "/api/admin/users", "/api/notices"} {
		if resp := get(t, app, path, ""); resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("GET %s without token = %d, want 401", path, resp.StatusCode)
		}
	}
}

func TestAdminCanListUsersButNotAdmins(t *testing.T) {
	app := newTestApp(t)
	cookie := login(t, app, "jdoe")

	resp := get(t, app, "/api/admin/users", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("users listing = %d", resp.StatusCode)
	}
	var body struct {
		Data struct {
			Items []map[string]any `json:"items"`
			Total int              `json:"total"`
			Phase string           `json:"phase"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data.Items) != 2 || body.Data.Total != 2 || body.Data.Phase != "loaded" {
		t.Fatalf("listing body = %+v", body.Data)
	}

	// no hierarchy: the superadmin-only screen stays closed to admins
	if resp := get(t, app, "/api/admins", cookie); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("admins listing for admin = %d, want 403", resp.StatusCode)
	}
}

func TestUserSeesOwnReportsOnly(t *testing.T) {
	app := newTestApp(t)
	cookie := login(t, app, "asmith")

	if resp := get(t, app, "/api/reports/user", cookie); resp.StatusCode != http.StatusOK {
		t.Fatalf("own reports = %d", resp.StatusCode)
	}
	for _, path := range []string{"/api/reports/admin", "/api/admin/users", "/api/departments"} {
		if resp := get(t, app, path, cookie); resp.StatusCode != http.StatusForbidden {
			t.Errorf("GET %s as user = %d, want 403", path, resp.StatusCode)
		}
	}
}

func TestSuperadminReachesAdminScreens(t *testing.T) {
	app := newTestApp(t)
	cookie := login(t, app, "root")

	for _, path := range []string{"/api/admins", "/api/admin/users", "/api/reports/admin"} {
		if resp := get(t, app, path, cookie); resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s as superadmin = %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	app := newTestApp(t)
	cookie := login(t, app, "jdoe")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: cookie})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("logout = %d", resp.StatusCode)
	}

	// the token still parses, but the durable session is gone
	if resp := get(t, app, "/api/session", cookie); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("session after logout = %d, want 401", resp.StatusCode)
	}
}

func TestBadCredentialsSurfaceUpstreamMessage(t *testing.T) {
	app := newTestApp(t)

	body, _ := json.Marshal(map[string]string{"username": "jdoe", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("login with bad password = %d", resp.StatusCode)
	}

	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Error.Message != "bad credentials" {
		t.Fatalf("message = %q, want upstream text verbatim", payload.Error.Message)
	}
}

func TestHealthEndpointsAreOpen(t *testing.T) {
	app := newTestApp(t)
	if resp := get(t, app, "/health/live", ""); resp.StatusCode != http.StatusOK {
		t.Fatalf("live = %d", resp.StatusCode)
	}
	if resp := get(t, app, "/health/ready", ""); resp.StatusCode != http.StatusOK {
		t.Fatalf("ready = %d", resp.StatusCode)
	}
}
