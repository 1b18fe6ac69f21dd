// Package console owns the per-session wiring of resource managers. Page
// state lives for as long as the session does, mirroring a mounted
// dashboard page, and is dropped on logout.
package console

import (
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-console/internal/config"
	"github.com/spec-kit/staff-console/internal/domain"
	"github.com/spec-kit/staff-console/internal/events"
	"github.com/spec-kit/staff-console/internal/manager"
	"github.com/spec-kit/staff-console/internal/remote"
	"github.com/spec-kit/staff-console/internal/resource"
)

// Managers bundles one session's resource managers, created lazily on
// first use of the owning registry entry.
type Managers struct {
	Users        *manager.Manager[domain.ManagedUser]
	Admins       *manager.Manager[domain.AdminAccount]
	Departments  *manager.Manager[domain.Department]
	Shifts       *manager.Manager[domain.Shift]
	Stations     *manager.Manager[domain.Station]
	UserReports  *manager.Manager[domain.Report]
	AdminReports *manager.Manager[domain.Report]
}

// Registry hands out the Managers bundle for a session.
type Registry struct {
	api        *remote.Client
	dispatcher events.Dispatcher
	cfg        config.ConsoleConfig
	logger     *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Managers
}

// NewRegistry builds an empty registry.
func NewRegistry(api *remote.Client, dispatcher events.Dispatcher, cfg config.ConsoleConfig, logger *zap.Logger) *Registry {
	return &Registry{
		api:        api,
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     logger,
		sessions:   make(map[string]*Managers),
	}
}

// For returns the session's managers, building them on first use. The user
// report listing is pre-filtered to the session's own username.
func (r *Registry) For(sessionID string, sess domain.Session) *Managers {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[sessionID]; ok {
		return existing
	}

	opts := func(kind string, filters map[string]string) manager.Options {
		return manager.Options{
			Kind:       kind,
			SessionID:  sessionID,
			PerPage:    r.cfg.PerPage,
			Debounce:   r.cfg.Debounce(),
			Filters:    filters,
			Dispatcher: r.dispatcher,
			Logger:     r.logger,
		}
	}

	m := &Managers{
		Users: manager.New[domain.ManagedUser](
			resource.NewUsers(r.api), resource.UserFields(), opts("users", nil)),
		Admins: manager.New[domain.AdminAccount](
			resource.NewAdmins(r.api), resource.AdminFields(), opts("admins", nil)),
		Departments: manager.New[domain.Department](
			resource.NewDepartments(r.api), resource.DepartmentFields(), opts("departments", nil)),
		Shifts: manager.New[domain.Shift](
			resource.NewShifts(r.api), resource.ShiftFields(), opts("shifts", nil)),
		Stations: manager.New[domain.Station](
			resource.NewStations(r.api), resource.StationFields(), opts("stations", nil)),
		UserReports: manager.New[domain.Report](
			resource.NewUserReports(r.api), nil,
			opts("user_reports", map[string]string{"username": sess.Username})),
		AdminReports: manager.New[domain.Report](
			resource.NewAdminReports(r.api), nil, opts("admin_reports", nil)),
	}
	r.sessions[sessionID] = m
	return m
}

// Drop discards a session's managers, used on logout.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
}
