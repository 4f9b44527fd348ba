// Package store persists the admin entities and enforces their integrity
// rules: unique columns, resolvable foreign keys and cascading deletes.
package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"restaurant-admin/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store wraps the database handle shared by every request.
type Store struct {
	db       *gorm.DB
	validate *entityValidator
}

func New(db *gorm.DB) *Store {
	return &Store{db: db, validate: newEntityValidator()}
}

// DB exposes the underlying handle for collaborators that manage their own
// tables (sessions, migrations).
func (s *Store) DB() *gorm.DB { return s.db }

// ListOptions controls pagination and filtering of List.
type ListOptions struct {
	Page     int // zero-based
	PageSize int // 0 returns every row
	Scope    func(*gorm.DB) *gorm.DB
}

// Create normalizes and validates e, checks its unique columns and foreign
// keys, and inserts it. Nothing is written when any check fails.
func (s *Store) Create(ctx context.Context, e models.Entity) error {
	e.Normalize()
	if err := s.validate.Struct(e); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkUnique(tx, e, nil); err != nil {
			return err
		}
		if err := checkReferences(tx, e, nil); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(e).Error
	})
	return translate(e, err)
}

// Get loads the row with the given id into e.
func (s *Store) Get(ctx context.Context, e models.Entity, id uint) error {
	err := s.db.WithContext(ctx).Where(e.PrimaryKey()+" = ?", id).First(e).Error
	return translate(e, err)
}

// Update persists e, which must carry the id of an existing row. Uniqueness
// and reference checks run only for columns whose value changed.
func (s *Store) Update(ctx context.Context, e models.Entity) error {
	if e.EntityID() == 0 {
		return fmt.Errorf("%s: %w", e.TableName(), models.ErrNotFound)
	}
	e.Normalize()
	if err := s.validate.Struct(e); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prev := blank(e)
		if err := tx.Where(e.PrimaryKey()+" = ?", e.EntityID()).First(prev).Error; err != nil {
			return err
		}
		if err := checkUnique(tx, e, prev); err != nil {
			return err
		}
		if err := checkReferences(tx, e, prev); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(e).Error
	})
	return translate(e, err)
}

// Delete removes the row with the given id and everything that depends on
// it. e receives the deleted row.
func (s *Store) Delete(ctx context.Context, e models.Entity, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(e.PrimaryKey()+" = ?", id).First(e).Error; err != nil {
			return err
		}
		return cascadeDelete(tx, e)
	})
	return translate(e, err)
}

// List fills dest, a pointer to a slice of e's type, and returns the total
// number of rows matching the scope.
func (s *Store) List(ctx context.Context, e models.Entity, dest any, opts ListOptions) (int64, error) {
	base := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(blank(e))
		if opts.Scope != nil {
			q = opts.Scope(q)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return 0, err
	}
	q := base().Order(e.PrimaryKey())
	if opts.PageSize > 0 {
		q = q.Offset(opts.Page * opts.PageSize).Limit(opts.PageSize)
	}
	if err := q.Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// UserByUsername finds the user for a login attempt.
func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(&user, err)
	}
	return &user, nil
}

// blank returns a new zero value of e's concrete type.
func blank(e models.Entity) models.Entity {
	return reflect.New(reflect.TypeOf(e).Elem()).Interface().(models.Entity)
}

func translate(e models.Entity, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", e.TableName(), models.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", e.TableName(), models.ErrUniquenessViolation)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w", e.TableName(), models.ErrReference)
	}
	return err
}
