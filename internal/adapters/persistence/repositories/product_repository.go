package repositories

import (
	"context"

	"assettrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productRepository implements ProductRepository interface
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create creates a new product
func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return conn(ctx, r.db).Create(product).Error
}

// GetByID gets a live product by ID with its reference entities
func (r *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := conn(ctx, r.db).
		Preload("Category").
		Preload("Branch").
		Preload("Department").
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByIDForUpdate gets a live product by ID holding a row lock.
// Callers must be inside a transaction; the lock serializes concurrent
// assignment attempts on the same product.
func (r *productRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByIDWithHistory gets a live product with its full assignment history
func (r *productRepository) GetByIDWithHistory(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := conn(ctx, r.db).
		Preload("Category").
		Preload("Branch").
		Preload("Department").
		Preload("Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("assigned_at DESC")
		}).
		Preload("Assignments.Employee").
		Preload("Assignments.AssignedBy").
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List lists live products with filters and pagination. Each product
// carries its active assignment (if any) for list annotation.
func (r *productRepository) List(ctx context.Context, filter *ProductFilter, offset, limit int) ([]*models.Product, int64, error) {
	q := conn(ctx, r.db).Model(&models.Product{})

	if filter != nil {
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			q = q.Where("name LIKE ? OR model LIKE ?", pattern, pattern)
		}
		if filter.CategoryID != nil {
			q = q.Where("category_id = ?", *filter.CategoryID)
		}
		if filter.BranchID != nil {
			q = q.Where("branch_id = ?", *filter.BranchID)
		}
		if filter.DepartmentID != nil {
			q = q.Where("department_id = ?", *filter.DepartmentID)
		}
		if filter.ComplianceStatus != nil {
			q = q.Where("compliance_status = ?", *filter.ComplianceStatus)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []*models.Product
	err := q.
		Preload("Category").
		Preload("Branch").
		Preload("Department").
		Preload("Assignments", "returned_at IS NULL").
		Preload("Assignments.Employee").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error

	return products, total, err
}

// ListAssigned lists live products that currently have an active assignment
func (r *productRepository) ListAssigned(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	err := conn(ctx, r.db).
		Preload("Category").
		Preload("Assignments", "returned_at IS NULL").
		Preload("Assignments.Employee").
		Where("id IN (?)", conn(ctx, r.db).
			Model(&models.ProductAssignment{}).
			Select("product_id").
			Where("returned_at IS NULL")).
		Find(&products).Error
	return products, err
}

// Update updates a product
func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return conn(ctx, r.db).Save(product).Error
}

// SoftDelete soft deletes a product
func (r *productRepository) SoftDelete(ctx context.Context, id uint) error {
	return conn(ctx, r.db).Delete(&models.Product{}, id).Error
}

// CountLiveByCategory counts live products in a category
func (r *productRepository) CountLiveByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// CountLiveByBranch counts live products in a branch
func (r *productRepository) CountLiveByBranch(ctx context.Context, branchID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Product{}).
		Where("branch_id = ?", branchID).
		Count(&count).Error
	return count, err
}

// CountLiveByDepartment counts live products in a department
func (r *productRepository) CountLiveByDepartment(ctx context.Context, departmentID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Product{}).
		Where("department_id = ?", departmentID).
		Count(&count).Error
	return count, err
}
