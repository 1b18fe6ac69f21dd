package manager

import (
	"context"
	"fmt"
	"strconv"

	apperrors "github.com/spec-kit/staff-console/pkg/util/errorutil"
)

// FieldSpec describes one editor field. Numeric fields are range-checked
// client-side as a usability guard; the server check remains authoritative.
type FieldSpec struct {
	Name     string
	Required bool
	Numeric  bool
	Min      float64
	Max      float64
}

// ModalMode distinguishes the two editor flavors.
type ModalMode string

const (
	ModalCreate ModalMode = "create"
	ModalEdit   ModalMode = "edit"
)

// Editor is the add/edit modal for one item. It collects a bounded field
// set, validates it minimally and submits through the manager's client. A
// failed submit leaves the editor open with its form intact.
type Editor[T Item[T]] struct {
	mgr     *Manager[T]
	mode    ModalMode
	itemKey string
	Form    map[string]any
	LastErr string
}

// OpenCreate opens a create modal. Any previously open modal is replaced.
func (m *Manager[T]) OpenCreate() *Editor[T] {
	e := &Editor[T]{mgr: m, mode: ModalCreate, Form: map[string]any{}}
	m.mu.Lock()
	m.modal = e
	m.mu.Unlock()
	return e
}

// OpenEdit opens an edit modal for an item currently on the page.
func (m *Manager[T]) OpenEdit(key string) (*Editor[T], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexOf(key) < 0 {
		return nil, apperrors.NewNotFound(m.kind+" item", map[string]any{"key": key})
	}
	e := &Editor[T]{mgr: m, mode: ModalEdit, itemKey: key, Form: map[string]any{}}
	m.modal = e
	return e, nil
}

// Modal returns the open editor, if any.
func (m *Manager[T]) Modal() (*Editor[T], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modal, m.modal != nil
}

// CloseModal ends the modal lifecycle. A saved create returns the list to
// the unfiltered first page; a saved edit reloads the current page with the
// current query; a cancel reloads nothing.
func (m *Manager[T]) CloseModal(ctx context.Context, didSave bool) error {
	m.mu.Lock()
	modal := m.modal
	m.modal = nil
	page, query := m.state.Page, m.state.Query
	if didSave && modal != nil && modal.mode == ModalCreate {
		m.state.Query = ""
	}
	m.mu.Unlock()

	if !didSave || modal == nil {
		return nil
	}
	if modal.mode == ModalCreate {
		return m.Load(ctx, 1, "")
	}
	return m.Load(ctx, page, query)
}

// Mode reports whether this is a create or edit modal.
func (e *Editor[T]) Mode() ModalMode {
	return e.mode
}

// Set records one form value.
func (e *Editor[T]) Set(field string, value any) {
	e.Form[field] = value
}

// SetForm replaces the form wholesale.
func (e *Editor[T]) SetForm(form map[string]any) {
	if form == nil {
		form = map[string]any{}
	}
	e.Form = form
}

// Validate checks required fields and numeric ranges against the manager's
// field specification. Missing fields are reported together so the user
// fixes the form in one pass; edits only range-check what the form touches.
func (e *Editor[T]) Validate() error {
	var missing []string
	for _, field := range e.mgr.fields {
		value, present := e.Form[field.Name]
		if !present || isEmpty(value) {
			if field.Required && e.mode == ModalCreate {
				missing = append(missing, field.Name)
			}
			continue
		}
		if field.Numeric {
			num, err := toFloat(value)
			if err != nil {
				return apperrors.NewValidationError(
					fmt.Sprintf("%s must be a number", field.Name), nil)
			}
			if num < field.Min || num > field.Max {
				return apperrors.NewValidationError(
					fmt.Sprintf("%s must be between %g and %g", field.Name, field.Min, field.Max), nil)
			}
		}
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("required fields missing",
			map[string]any{"missing": missing})
	}
	return nil
}

// Submit validates and sends the form. On success the editor signals the
// manager via CloseModal(true); on failure it stays open, keeps the form
// and records the error for display.
func (e *Editor[T]) Submit(ctx context.Context) error {
	if err := e.Validate(); err != nil {
		e.LastErr = err.Error()
		return err
	}

	var err error
	if e.mode == ModalCreate {
		_, err = e.mgr.client.Create(ctx, e.Form)
	} else {
		_, err = e.mgr.client.Update(ctx, e.itemKey, e.Form)
	}
	if err != nil {
		e.LastErr = err.Error()
		return err
	}

	e.LastErr = ""
	return e.mgr.CloseModal(ctx, true)
}

// Cancel closes the editor without reloading.
func (e *Editor[T]) Cancel(ctx context.Context) {
	_ = e.mgr.CloseModal(ctx, false)
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	}
	return false
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("not a number: %v", value)
	}
}
