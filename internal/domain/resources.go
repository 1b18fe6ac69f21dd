package domain

import (
	"fmt"
	"strconv"
	"time"
)

// ManagedUser is a staff account administered from the admin dashboard.
type ManagedUser struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Username    string    `json:"username"`
	Designation string    `json:"designation,omitempty"`
	Department  string    `json:"department,omitempty"`
	Station     string    `json:"station,omitempty"`
	Role        Role      `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u ManagedUser) Key() string  { return strconv.FormatInt(u.ID, 10) }
func (u ManagedUser) Active() bool { return u.IsActive }
func (u ManagedUser) WithActive(active bool) ManagedUser {
	u.IsActive = active
	return u
}

// AdminAccount is an administrator or superadmin row from the combined
// listing the superadmin dashboard manages. Because admins and superadmins
// live in separate collections upstream, the key embeds the role so ids
// from the two collections cannot collide.
type AdminAccount struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	Department string    `json:"department,omitempty"`
	Station    string    `json:"station,omitempty"`
	Role       Role      `json:"role"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func (a AdminAccount) Key() string  { return fmt.Sprintf("%s:%d", a.Role, a.ID) }
func (a AdminAccount) Active() bool { return a.IsActive }
func (a AdminAccount) WithActive(active bool) AdminAccount {
	a.IsActive = active
	return a
}

// Department groups staff and carries the sampling percentage used by the
// server-side random selection.
type Department struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Percent   int       `json:"percent"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (d Department) Key() string  { return strconv.FormatInt(d.ID, 10) }
func (d Department) Active() bool { return d.IsActive }
func (d Department) WithActive(active bool) Department {
	d.IsActive = active
	return d
}

// Shift is a named work shift.
type Shift struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (s Shift) Key() string  { return strconv.FormatInt(s.ID, 10) }
func (s Shift) Active() bool { return s.IsActive }
func (s Shift) WithActive(active bool) Shift {
	s.IsActive = active
	return s
}

// Station is a physical test station.
type Station struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (s Station) Key() string  { return strconv.FormatInt(s.ID, 10) }
func (s Station) Active() bool { return s.IsActive }
func (s Station) WithActive(active bool) Station {
	s.IsActive = active
	return s
}

// Report is a generated test report row. Reports are listed read-only; the
// generation and download endpoints stay with the remote API.
type Report struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Department string    `json:"department,omitempty"`
	Station    string    `json:"station,omitempty"`
	Shift      string    `json:"shift,omitempty"`
	TestType   string    `json:"test_type,omitempty"`
	FileName   string    `json:"file_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r Report) Key() string                   { return strconv.FormatInt(r.ID, 10) }
func (r Report) Active() bool                  { return true }
func (r Report) WithActive(active bool) Report { return r }

// Dropdowns are the catalog values the editors offer for select fields.
type Dropdowns struct {
	Departments []string `json:"departments"`
	Stations    []string `json:"stations"`
	Shifts      []string `json:"shifts"`
}
