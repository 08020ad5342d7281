package repositories

import (
	"context"

	"gorm.io/gorm"
)

// masterRepository is the single GORM implementation behind Branch,
// Category and Department. The soft-delete filter and the
// unique-name-among-live check live here once instead of three times.
type masterRepository[T any] struct {
	db *gorm.DB
}

// NewMasterRepository creates a repository for one master entity type
func NewMasterRepository[T any](db *gorm.DB) MasterRepository[T] {
	return &masterRepository[T]{db: db}
}

// Create inserts a new row
func (r *masterRepository[T]) Create(ctx context.Context, entity *T) error {
	return conn(ctx, r.db).Create(entity).Error
}

// GetByID gets a live row by ID
func (r *masterRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := conn(ctx, r.db).First(&entity, id).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// List lists all live rows
func (r *masterRepository[T]) List(ctx context.Context) ([]*T, error) {
	var entities []*T
	err := conn(ctx, r.db).Order("name ASC").Find(&entities).Error
	return entities, err
}

// Update applies a partial update to a live row
func (r *masterRepository[T]) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	return conn(ctx, r.db).Model(new(T)).Where("id = ?", id).Updates(updates).Error
}

// SoftDelete stamps deleted_at; GORM rewrites Delete into an update
func (r *masterRepository[T]) SoftDelete(ctx context.Context, id uint) error {
	return conn(ctx, r.db).Delete(new(T), id).Error
}

// ExistsByName checks whether a live row other than excludeID already
// uses name. Soft-deleted rows do not count, so names are reusable.
func (r *masterRepository[T]) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	q := conn(ctx, r.db).Model(new(T)).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}
