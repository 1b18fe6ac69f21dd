package handlers

import "github.com/spec-kit/staff-console/internal/domain"

// Named instantiations of the generic resource handler, one per screen.
type (
	UsersResourceHandler       = ResourceHandler[domain.ManagedUser]
	AdminsResourceHandler      = ResourceHandler[domain.AdminAccount]
	DepartmentsResourceHandler = ResourceHandler[domain.Department]
	ShiftsResourceHandler      = ResourceHandler[domain.Shift]
	StationsResourceHandler    = ResourceHandler[domain.Station]
)
