package store

import (
	"fmt"

	"restaurant-admin/models"

	"gorm.io/gorm"
)

// checkUnique fails with a field-level ErrUniquenessViolation when another row
// already holds one of e's unique values. With prev set, unchanged columns
// are skipped.
func checkUnique(tx *gorm.DB, e models.Entity, prev models.Entity) error {
	var before map[string]string
	if prev != nil {
		before = make(map[string]string)
		for _, f := range prev.UniqueFields() {
			before[f.Column] = f.Value
		}
	}

	for _, f := range e.UniqueFields() {
		if old, ok := before[f.Column]; ok && old == f.Value {
			continue
		}
		q := tx.Table(e.TableName()).Where(f.Column+" = ?", f.Value)
		if id := e.EntityID(); id != 0 {
			q = q.Where(e.PrimaryKey()+" <> ?", id)
		}
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return &models.FieldError{
				Field:   f.Column,
				Err:     models.ErrUniquenessViolation,
				Message: fmt.Sprintf("%s %q already exists", f.Column, f.Value),
			}
		}
	}
	return nil
}

// checkReferences fails with a field-level ErrReference when a foreign key
// of e does not resolve. With prev set, unchanged keys are skipped.
func checkReferences(tx *gorm.DB, e models.Entity, prev models.Entity) error {
	var before map[string]uint
	if prev != nil {
		before = make(map[string]uint)
		for _, r := range prev.References() {
			before[r.Column] = r.ID
		}
	}

	for _, r := range e.References() {
		if old, ok := before[r.Column]; ok && old == r.ID {
			continue
		}
		var n int64
		if r.ID != 0 {
			if err := tx.Table(r.Table).Where(r.Key+" = ?", r.ID).Count(&n).Error; err != nil {
				return err
			}
		}
		if n == 0 {
			return &models.FieldError{
				Field:   r.Column,
				Err:     models.ErrReference,
				Message: fmt.Sprintf("%s %d does not exist", r.Table, r.ID),
			}
		}
	}
	return nil
}
