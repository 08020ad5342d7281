package repositories

import (
	"context"

	"assettrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// employeeRepository implements EmployeeRepository interface
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create creates a new employee
func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	return conn(ctx, r.db).Create(employee).Error
}

// GetByID gets a live employee by ID with branch
func (r *employeeRepository) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := conn(ctx, r.db).Preload("Branch").First(&employee, id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// List lists live employees, optionally filtered by search text and branch
func (r *employeeRepository) List(ctx context.Context, search string, branchID *uint) ([]*models.Employee, error) {
	q := conn(ctx, r.db).Preload("Branch")

	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("name LIKE ? OR emp_id LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}
	if branchID != nil {
		q = q.Where("branch_id = ?", *branchID)
	}

	var employees []*models.Employee
	err := q.Order("name ASC").Find(&employees).Error
	return employees, err
}

// Update updates an employee
func (r *employeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	return conn(ctx, r.db).Save(employee).Error
}

// SoftDelete soft deletes an employee
func (r *employeeRepository) SoftDelete(ctx context.Context, id uint) error {
	return conn(ctx, r.db).Delete(&models.Employee{}, id).Error
}

// ExistsByEmpID checks if a live employee other than excludeID uses empID
func (r *employeeRepository) ExistsByEmpID(ctx context.Context, empID string, excludeID uint) (bool, error) {
	var count int64
	q := conn(ctx, r.db).Model(&models.Employee{}).Where("emp_id = ?", empID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// CountLiveByBranch counts live employees assigned to a branch
func (r *employeeRepository) CountLiveByBranch(ctx context.Context, branchID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Employee{}).
		Where("branch_id = ?", branchID).
		Count(&count).Error
	return count, err
}
