package repositories

import (
	"context"
	"errors"
	"time"

	"assettrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// assignmentRepository implements AssignmentRepository interface
type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Product").
		Preload("Product.Category").
		Preload("Product.Branch").
		Preload("Employee").
		Preload("AssignedBy")
}

// Create creates a new assignment
func (r *assignmentRepository) Create(ctx context.Context, assignment *models.ProductAssignment) error {
	return conn(ctx, r.db).Create(assignment).Error
}

// GetByID gets an assignment by ID
func (r *assignmentRepository) GetByID(ctx context.Context, id uint) (*models.ProductAssignment, error) {
	var assignment models.ProductAssignment
	err := conn(ctx, r.db).First(&assignment, id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// GetByIDWithRelations gets an assignment by ID with product, employee and assigner
func (r *assignmentRepository) GetByIDWithRelations(ctx context.Context, id uint) (*models.ProductAssignment, error) {
	var assignment models.ProductAssignment
	err := withRelations(conn(ctx, r.db)).First(&assignment, id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindActiveByProduct finds the active assignment of a product, if any.
// Returns (nil, nil) when the product is unassigned.
func (r *assignmentRepository) FindActiveByProduct(ctx context.Context, productID uint) (*models.ProductAssignment, error) {
	var assignment models.ProductAssignment
	err := conn(ctx, r.db).
		Where("product_id = ? AND returned_at IS NULL", productID).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

// Update updates an assignment
func (r *assignmentRepository) Update(ctx context.Context, assignment *models.ProductAssignment) error {
	return conn(ctx, r.db).Save(assignment).Error
}

// ListActive lists active assignments, newest first, with pagination
func (r *assignmentRepository) ListActive(ctx context.Context, offset, limit int) ([]*models.ProductAssignment, int64, error) {
	q := conn(ctx, r.db).Model(&models.ProductAssignment{}).
		Where("returned_at IS NULL")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assignments []*models.ProductAssignment
	err := withRelations(q).
		Order("assigned_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&assignments).Error
	return assignments, total, err
}

// ListHistory lists returned assignments, newest first, optionally
// bounded by an assigned_at date range
func (r *assignmentRepository) ListHistory(ctx context.Context, from, to *time.Time, offset, limit int) ([]*models.ProductAssignment, int64, error) {
	q := conn(ctx, r.db).Model(&models.ProductAssignment{}).
		Where("returned_at IS NOT NULL")

	if from != nil {
		q = q.Where("assigned_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("assigned_at <= ?", *to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assignments []*models.ProductAssignment
	err := withRelations(q).
		Order("assigned_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&assignments).Error
	return assignments, total, err
}

// ListByEmployee lists every assignment of an employee, newest first
func (r *assignmentRepository) ListByEmployee(ctx context.Context, employeeID uint) ([]*models.ProductAssignment, error) {
	var assignments []*models.ProductAssignment
	err := withRelations(conn(ctx, r.db)).
		Where("employee_id = ?", employeeID).
		Order("assigned_at DESC").
		Find(&assignments).Error
	return assignments, err
}

// ListByProduct lists every assignment of a product, newest first
func (r *assignmentRepository) ListByProduct(ctx context.Context, productID uint) ([]*models.ProductAssignment, error) {
	var assignments []*models.ProductAssignment
	err := withRelations(conn(ctx, r.db)).
		Where("product_id = ?", productID).
		Order("assigned_at DESC").
		Find(&assignments).Error
	return assignments, err
}

// ListOverdue lists active assignments whose expected return date has passed
func (r *assignmentRepository) ListOverdue(ctx context.Context, now time.Time) ([]*models.ProductAssignment, error) {
	var assignments []*models.ProductAssignment
	err := withRelations(conn(ctx, r.db)).
		Where("returned_at IS NULL AND expected_return_at IS NOT NULL AND expected_return_at < ?", now).
		Order("expected_return_at ASC").
		Find(&assignments).Error
	return assignments, err
}

// CountByEmployee counts all assignment rows referencing an employee
func (r *assignmentRepository) CountByEmployee(ctx context.Context, employeeID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.ProductAssignment{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count, err
}

// CountByProduct counts all assignment rows referencing a product
func (r *assignmentRepository) CountByProduct(ctx context.Context, productID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.ProductAssignment{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}
