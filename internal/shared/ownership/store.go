// Package ownership は所有者IDで必ず絞り込まれるGORMストアを提供します。
// このパッケージを経由するクエリはすべて所有者の述語を含み、他ユーザーの行は見えず変更もできません。
package ownership

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Owned is implemented by models that carry an owner id.
type Owned interface {
	SetOwner(ownerID uint)
}

// Scope returns a gorm scope restricting a query to rows of owner.
// The column name is quoted by gorm and the owner id is bound as a parameter.
func Scope(column string, owner uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: clause.Column{Name: column}, Value: owner})
	}
}

// Store is an owner-scoped repository base for model M.
type Store[M any, PM interface {
	*M
	Owned
}] struct {
	db          *gorm.DB
	ownerColumn string
}

// NewStore creates a Store whose owner predicate is built on ownerColumn.
func NewStore[M any, PM interface {
	*M
	Owned
}](db *gorm.DB, ownerColumn string) *Store[M, PM] {
	return &Store[M, PM]{db: db, ownerColumn: ownerColumn}
}

// scoped returns a fresh session for M already restricted to owner.
func (s *Store[M, PM]) scoped(ctx context.Context, owner uint) *gorm.DB {
	return s.db.WithContext(ctx).Model(new(M)).Scopes(Scope(s.ownerColumn, owner))
}

// Create stamps m with owner and inserts it.
func (s *Store[M, PM]) Create(ctx context.Context, owner uint, m PM) error {
	if owner == 0 {
		return errors.New("ownership: empty owner id")
	}
	m.SetOwner(owner)
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("ownership: create: %w", err)
	}
	return nil
}

// First returns the row id of owner. found=false when it does not exist or belongs to someone else.
func (s *Store[M, PM]) First(ctx context.Context, owner, id uint) (m PM, found bool, err error) {
	row := new(M)
	err = s.scoped(ctx, owner).Where("id = ?", id).Take(row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ownership: first: %w", err)
	}
	return row, true, nil
}

// Exists reports whether owner has a row with id.
func (s *Store[M, PM]) Exists(ctx context.Context, owner, id uint) (bool, error) {
	var n int64
	if err := s.scoped(ctx, owner).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("ownership: exists: %w", err)
	}
	return n > 0, nil
}

// Find lists owner's rows ordered by id, narrowed further by extra scopes.
func (s *Store[M, PM]) Find(ctx context.Context, owner uint, scopes ...func(*gorm.DB) *gorm.DB) ([]M, error) {
	var rows []M
	if err := s.scoped(ctx, owner).Scopes(scopes...).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("ownership: find: %w", err)
	}
	return rows, nil
}

// Updates applies values to owner's row id and returns the number of affected rows.
// The owner column itself can never be reassigned through this method.
func (s *Store[M, PM]) Updates(ctx context.Context, owner, id uint, values map[string]any) (int64, error) {
	if _, ok := values[s.ownerColumn]; ok {
		return 0, fmt.Errorf("ownership: refusing to update %s", s.ownerColumn)
	}
	if len(values) == 0 {
		return 0, nil
	}
	res := s.scoped(ctx, owner).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return 0, fmt.Errorf("ownership: update: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes owner's row id and returns the number of affected rows.
func (s *Store[M, PM]) Delete(ctx context.Context, owner, id uint) (int64, error) {
	res := s.db.WithContext(ctx).Scopes(Scope(s.ownerColumn, owner)).Where("id = ?", id).Delete(new(M))
	if res.Error != nil {
		return 0, fmt.Errorf("ownership: delete: %w", res.Error)
	}
	return res.RowsAffected, nil
}
