package repository

import (
	"context"
	"fmt"

	"github.com/finboard-io/engine/pkg/database"
	appErr "github.com/finboard-io/engine/pkg/errors"
	"gorm.io/gorm"
)

// BaseRepository defines common CRUD operations over one table.
//
// Every method soft-fails: a missing backend handle yields
// CodeUnavailable, zero matches yield CodeNotFound, and any other
// backend failure is wrapped as CodeInternal. No raw gorm error crosses
// this boundary, so handlers can match on codes alone.
type BaseRepository[T any] interface {
	Create(ctx context.Context, obj *T) error
	GetByID(ctx context.Context, id any, dest *T) error
	GetBy(ctx context.Context, field string, value any, dest *T) error
	List(ctx context.Context) ([]T, error)
	ListBy(ctx context.Context, field string, value any) ([]T, error)
	UpdateFields(ctx context.Context, id any, fields map[string]any, dest *T) error
	Delete(ctx context.Context, id any) error
}

type baseRepository[T any] struct {
	db *database.DB
}

func NewBaseRepository[T any](db *database.DB) BaseRepository[T] {
	return &baseRepository[T]{db: db}
}

// guard returns the live gorm handle or an unavailable error. All access
// funnels through it so that a process started without a backend behaves
// as "operation did not happen" rather than crashing.
func (r *baseRepository[T]) guard() (*gorm.DB, error) {
	if !r.db.Connected() {
		return nil, appErr.New(appErr.CodeUnavailable, "database backend not available")
	}
	return r.db.Gorm(), nil
}

func (r *baseRepository[T]) Create(ctx context.Context, obj *T) error {
	g, err := r.guard()
	if err != nil {
		return err
	}
	if err := g.WithContext(ctx).Create(obj).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "create entity failed")
	}
	return nil
}

func (r *baseRepository[T]) GetByID(ctx context.Context, id any, dest *T) error {
	return r.GetBy(ctx, "id", id, dest)
}

func (r *baseRepository[T]) GetBy(ctx context.Context, field string, value any, dest *T) error {
	g, err := r.guard()
	if err != nil {
		return err
	}
	if err := g.WithContext(ctx).First(dest, fmt.Sprintf("%s = ?", field), value).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return appErr.New(appErr.CodeNotFound, "entity not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get entity failed")
	}
	return nil
}

func (r *baseRepository[T]) List(ctx context.Context) ([]T, error) {
	g, err := r.guard()
	if err != nil {
		return nil, err
	}
	var out []T
	if err := g.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list entities failed")
	}
	return out, nil
}

func (r *baseRepository[T]) ListBy(ctx context.Context, field string, value any) ([]T, error) {
	g, err := r.guard()
	if err != nil {
		return nil, err
	}
	var out []T
	if err := g.WithContext(ctx).Where(fmt.Sprintf("%s = ?", field), value).Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list entities failed")
	}
	return out, nil
}

// UpdateFields applies a partial update: only the supplied fields change.
// Callers short-circuit empty patches before reaching here.
func (r *baseRepository[T]) UpdateFields(ctx context.Context, id any, fields map[string]any, dest *T) error {
	g, err := r.guard()
	if err != nil {
		return err
	}
	var t T
	res := g.WithContext(ctx).Model(&t).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "update entity failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, fmt.Sprintf("entity %v not found", id))
	}
	if err := g.WithContext(ctx).First(dest, "id = ?", id).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "reload entity failed")
	}
	return nil
}

// Delete succeeds only when the backend reports at least one affected
// row. The policy is uniform across all resources.
func (r *baseRepository[T]) Delete(ctx context.Context, id any) error {
	g, err := r.guard()
	if err != nil {
		return err
	}
	var t T
	res := g.WithContext(ctx).Delete(&t, "id = ?", id)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "delete entity failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, fmt.Sprintf("entity %v not found", id))
	}
	return nil
}
