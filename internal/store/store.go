// Package store is the only code that talks to the hosted database for catalog
// and order data. It exposes the handful of table operations the repositories
// need and nothing schema-specific.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

// Filter is an equality predicate on one column.
type Filter struct {
	Column string
	Value  any
}

// Sort orders results by one column.
type Sort struct {
	Column string
	Desc   bool
}

type Query struct {
	Filters []Filter
	OrderBy []Sort
}

// Relation is a set of child rows replaced together with their parent.
// Rows must be a slice with the foreign key already set; an empty slice just
// clears the relation.
type Relation struct {
	Table      string
	ForeignKey string
	ParentID   any
	Rows       any
}

// Store is the collaborator contract for table access. Writes are
// unconditional: the last writer wins.
type Store interface {
	SelectAll(ctx context.Context, table string, q Query, dest any) error
	Insert(ctx context.Context, table string, row any) error
	UpdateByID(ctx context.Context, table string, id any, row any) error
	DeleteByID(ctx context.Context, table string, id any) error
	DeleteWhere(ctx context.Context, table string, f Filter) error
	UpsertWithRelations(ctx context.Context, table string, parent any, relations ...Relation) error
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) SelectAll(ctx context.Context, table string, q Query, dest any) error {
	tx := s.db.WithContext(ctx).Table(table)
	for _, f := range q.Filters {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
	}
	for _, o := range q.OrderBy {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	if err := tx.Find(dest).Error; err != nil {
		return fmt.Errorf("select %s: %w", table, err)
	}
	return nil
}

// Insert writes row and scans the stored row back into it.
func (s *gormStore) Insert(ctx context.Context, table string, row any) error {
	err := s.db.WithContext(ctx).Table(table).
		Clauses(clause.Returning{}).
		Create(row).Error
	if err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// UpdateByID overwrites every column except id and created_at and scans the
// stored row back into row.
func (s *gormStore) UpdateByID(ctx context.Context, table string, id any, row any) error {
	res := s.db.WithContext(ctx).Table(table).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at").
		Updates(row)
	if res.Error != nil {
		return fmt.Errorf("update %s: %w", table, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) DeleteByID(ctx context.Context, table string, id any) error {
	res := s.db.WithContext(ctx).Exec("DELETE FROM "+quote(table)+" WHERE id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete %s: %w", table, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) DeleteWhere(ctx context.Context, table string, f Filter) error {
	err := s.db.WithContext(ctx).
		Exec("DELETE FROM "+quote(table)+" WHERE "+quote(f.Column)+" = ?", f.Value).Error
	if err != nil {
		return fmt.Errorf("delete %s by %s: %w", table, f.Column, err)
	}
	return nil
}

// UpsertWithRelations inserts or fully overwrites parent, then replaces each
// relation's rows, all in one transaction.
func (s *gormStore) UpsertWithRelations(ctx context.Context, table string, parent any, relations ...Relation) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Table(table).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}, clause.Returning{}).
			Create(parent).Error
		if err != nil {
			return fmt.Errorf("upsert %s: %w", table, err)
		}

		for _, rel := range relations {
			if err := tx.Exec("DELETE FROM "+quote(rel.Table)+" WHERE "+quote(rel.ForeignKey)+" = ?", rel.ParentID).Error; err != nil {
				return fmt.Errorf("clear %s: %w", rel.Table, err)
			}
			if isEmpty(rel.Rows) {
				continue
			}
			if err := tx.Table(rel.Table).Create(rel.Rows).Error; err != nil {
				return fmt.Errorf("insert %s: %w", rel.Table, err)
			}
		}
		return nil
	})
}

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func quote(ident string) string {
	return `"` + ident + `"`
}
