package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"

	"restaurant-admin/access"
	"restaurant-admin/models"

	"gorm.io/gorm"
)

// DefaultPageSize applies when a view sets none.
const DefaultPageSize = 20

// View configures the admin pages of one entity.
type View struct {
	Name     string
	Endpoint string
	New      func() models.Entity

	ColumnList      []string // list and export columns; empty shows every field
	FormExcluded    []string // fields never accepted from a form
	EditableColumns []string // fields accepted by inline (PATCH) edits

	CanCreate bool
	CanEdit   bool
	CanDelete bool
	CanExport bool
	PageSize  int

	Permission access.Policy
	// Scope optionally narrows list and export queries for the caller.
	Scope func(access.Caller) func(*gorm.DB) *gorm.DB
	// OnModelChange runs after the form is applied and before the row is
	// saved. form holds the filtered submitted values.
	OnModelChange func(c access.Caller, form map[string]any, e models.Entity, created bool) error
}

// alwaysExcluded are never writable through a form.
var alwaysExcluded = []string{"created_at", "updated_at"}

func (v *View) pageSize() int {
	if v.PageSize > 0 {
		return v.PageSize
	}
	return DefaultPageSize
}

// PageSizeFor clamps a requested page size to the view's limit.
func (v *View) PageSizeFor(requested int) int {
	if requested <= 0 || requested > v.pageSize() {
		return v.pageSize()
	}
	return requested
}

// NewList returns a pointer to an empty slice of the view's entity pointers.
func (v *View) NewList() any {
	t := reflect.TypeOf(v.New())
	return reflect.New(reflect.SliceOf(t)).Interface()
}

// Entities unpacks a list filled through NewList.
func (v *View) Entities(list any) []models.Entity {
	rv := reflect.ValueOf(list).Elem()
	out := make([]models.Entity, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface().(models.Entity)
	}
	return out
}

// FilterForm drops the fields a form may not set. Inline edits keep only the
// editable columns.
func (v *View) FilterForm(e models.Entity, form map[string]any, inline bool) map[string]any {
	out := make(map[string]any, len(form))
	for k, val := range form {
		switch {
		case k == e.PrimaryKey(),
			slices.Contains(alwaysExcluded, k),
			slices.Contains(v.FormExcluded, k):
			continue
		case inline && !slices.Contains(v.EditableColumns, k):
			continue
		}
		out[k] = val
	}
	return out
}

// Apply copies form values onto e by their JSON names. Fields absent from
// the form keep their current value.
func (v *View) Apply(e models.Entity, form map[string]any) error {
	raw, err := json.Marshal(form)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, e); err != nil {
		return &models.ValidationError{Fields: []*models.FieldError{{
			Field: fieldOf(err), Err: models.ErrValidation, Message: "invalid value",
		}}}
	}
	return nil
}

func fieldOf(err error) string {
	if te, ok := err.(*json.UnmarshalTypeError); ok && te.Field != "" {
		return te.Field
	}
	return "form"
}

// Row renders e as a JSON object keyed by field name.
func Row(e models.Entity) (map[string]any, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var row map[string]any
	if err := dec.Decode(&row); err != nil {
		return nil, err
	}
	return row, nil
}

// Columns returns the list columns, falling back to every field of a sample
// row in a stable order.
func (v *View) Columns() []string {
	if len(v.ColumnList) > 0 {
		return v.ColumnList
	}
	row, err := Row(v.New())
	if err != nil {
		return nil
	}
	cols := make([]string, 0, len(row))
	for k := range row {
		cols = append(cols, k)
	}
	slices.Sort(cols)
	return cols
}

// Record renders e's list columns as CSV cells.
func (v *View) Record(e models.Entity, cols []string) ([]string, error) {
	row, err := Row(e)
	if err != nil {
		return nil, err
	}
	rec := make([]string, len(cols))
	for i, c := range cols {
		rec[i] = cell(row[c])
	}
	return rec, nil
}

func cell(val any) string {
	switch x := val.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number, bool:
		return fmt.Sprint(x)
	}
	raw, _ := json.Marshal(val)
	return string(raw)
}
