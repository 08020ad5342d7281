package repositories

import (
	"context"
	"time"

	"assettrack/internal/adapters/persistence/models"
)

// MasterRepository is the shared data-access surface of the master
// entities (Branch, Category, Department). Uniqueness checks are scoped
// to live rows; deletes are soft.
type MasterRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id uint) (*T, error)
	List(ctx context.Context) ([]*T, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, id uint) error
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SoftDelete(ctx context.Context, id uint) error
	ExistsByUsername(ctx context.Context, username string, excludeID uint) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// EmployeeRepository defines employee repository interface
type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	List(ctx context.Context, search string, branchID *uint) ([]*models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	SoftDelete(ctx context.Context, id uint) error
	ExistsByEmpID(ctx context.Context, empID string, excludeID uint) (bool, error)
	CountLiveByBranch(ctx context.Context, branchID uint) (int64, error)
}

// ProductFilter narrows product list queries
type ProductFilter struct {
	Search           string
	CategoryID       *uint
	BranchID         *uint
	DepartmentID     *uint
	ComplianceStatus *bool
}

// ProductRepository defines product repository interface
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Product, error)
	GetByIDWithHistory(ctx context.Context, id uint) (*models.Product, error)
	List(ctx context.Context, filter *ProductFilter, offset, limit int) ([]*models.Product, int64, error)
	ListAssigned(ctx context.Context) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	SoftDelete(ctx context.Context, id uint) error
	CountLiveByCategory(ctx context.Context, categoryID uint) (int64, error)
	CountLiveByBranch(ctx context.Context, branchID uint) (int64, error)
	CountLiveByDepartment(ctx context.Context, departmentID uint) (int64, error)
}

// AssignmentRepository defines product assignment repository interface.
// Assignment rows are append-and-update only; there is no delete.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.ProductAssignment) error
	GetByID(ctx context.Context, id uint) (*models.ProductAssignment, error)
	GetByIDWithRelations(ctx context.Context, id uint) (*models.ProductAssignment, error)
	FindActiveByProduct(ctx context.Context, productID uint) (*models.ProductAssignment, error)
	Update(ctx context.Context, assignment *models.ProductAssignment) error
	ListActive(ctx context.Context, offset, limit int) ([]*models.ProductAssignment, int64, error)
	ListHistory(ctx context.Context, from, to *time.Time, offset, limit int) ([]*models.ProductAssignment, int64, error)
	ListByEmployee(ctx context.Context, employeeID uint) ([]*models.ProductAssignment, error)
	ListByProduct(ctx context.Context, productID uint) ([]*models.ProductAssignment, error)
	ListOverdue(ctx context.Context, now time.Time) ([]*models.ProductAssignment, error)
	CountByEmployee(ctx context.Context, employeeID uint) (int64, error)
	CountByProduct(ctx context.Context, productID uint) (int64, error)
}
