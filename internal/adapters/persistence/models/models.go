package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"index;size:50;not null" json:"username"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	Role         string         `gorm:"size:20;default:'USER'" json:"role"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Master Tables
// ============================================================

// Branch represents branches table
type Branch struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null;index" json:"name"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Branch) TableName() string {
	return "branches"
}

// Department represents departments table
type Department struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null;index" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Department) TableName() string {
	return "departments"
}

// Category represents product categories table
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null;index" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// ============================================================
// Main Tables
// ============================================================

// Employee represents employees table
type Employee struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	EmpID      string         `gorm:"size:50;not null;index" json:"emp_id"`
	Name       string         `gorm:"size:100;not null" json:"name"`
	Email      string         `gorm:"size:100" json:"email"`
	Department string         `gorm:"size:100" json:"department"`
	Position   string         `gorm:"size:100" json:"position"`
	BranchID   *uint          `gorm:"index" json:"branch_id"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (Employee) TableName() string {
	return "employees"
}

// Product represents products table
type Product struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Name             string         `gorm:"size:100;not null" json:"name"`
	Model            string         `gorm:"size:100;not null" json:"model"`
	CategoryID       uint           `gorm:"not null;index" json:"category_id"`
	BranchID         uint           `gorm:"not null;index" json:"branch_id"`
	DepartmentID     *uint          `gorm:"index" json:"department_id"`
	WarrantyDate     *time.Time     `json:"warranty_date"`
	ComplianceStatus bool           `gorm:"default:false" json:"compliance_status"`
	Notes            string         `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Category    *Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Branch      *Branch             `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Department  *Department         `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Assignments []ProductAssignment `gorm:"foreignKey:ProductID" json:"assignments,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// ProductListItem DTO for list views, annotated with assignment state
type ProductListItem struct {
	*Product
	IsAssigned        bool               `json:"is_assigned"`
	CurrentAssignment *ProductAssignment `json:"current_assignment"`
}

// ============================================================
// Assignment Table
// ============================================================

// Assignment statuses
const (
	AssignmentStatusAssigned = "ASSIGNED"
	AssignmentStatusReturned = "RETURNED"
)

// AutoReturnNote is written when an active assignment is closed by a transfer
const AutoReturnNote = "Automatically returned for re-assignment"

// ProductAssignment represents product_assignments table.
// Rows are never deleted; a closed assignment keeps its history.
type ProductAssignment struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	ProductID        uint       `gorm:"not null;index" json:"product_id"`
	EmployeeID       uint       `gorm:"not null;index" json:"employee_id"`
	AssignedByID     uint       `gorm:"not null" json:"assigned_by_id"`
	Status           string     `gorm:"size:20;not null;default:'ASSIGNED';index" json:"status"`
	AssignedAt       time.Time  `gorm:"not null;autoCreateTime" json:"assigned_at"`
	ExpectedReturnAt *time.Time `json:"expected_return_at"`
	ReturnedAt       *time.Time `gorm:"index" json:"returned_at"`
	Condition        *string    `gorm:"size:255" json:"condition"`
	Notes            string     `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Product    *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	AssignedBy *User     `gorm:"foreignKey:AssignedByID" json:"assigned_by,omitempty"`
}

func (ProductAssignment) TableName() string {
	return "product_assignments"
}

// IsActive reports whether the assignment is the live product↔employee binding
func (a *ProductAssignment) IsActive() bool {
	return a.Status == AssignmentStatusAssigned && a.ReturnedAt == nil
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		// Master tables
		&Branch{},
		&Department{},
		&Category{},
		// Main tables
		&Employee{},
		&Product{},
		&ProductAssignment{},
	)
}
